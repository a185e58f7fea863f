package card

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/online-store/database"
	"github.com/jmoiron/sqlx"
)

type Postgres struct {
	DB *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) List(ctx context.Context) ([]Card, error) {
	return fetchAll(ctx, p.DB)
}

// Replace truncates and refills the table in one transaction. TRUNCATE holds
// an ACCESS EXCLUSIVE lock until commit, so concurrent replaces queue up and
// readers never see a half-written set.
func (p *Postgres) Replace(ctx context.Context, cards []Card) ([]Card, error) {
	var out []Card

	err := database.Transaction(ctx, p.DB, func(tx sqlx.ExtContext) error {
		if _, err := tx.ExecContext(ctx, `TRUNCATE cards RESTART IDENTITY`); err != nil {
			return fmt.Errorf("truncating cards: %w", err)
		}

		if len(cards) > 0 {
			const q = `
			INSERT INTO cards (name, price, description, availability, image_src, date)
			VALUES (:name, :price, :description, :availability, :image_src, :date)`

			if _, err := sqlx.NamedExecContext(ctx, tx, q, cards); err != nil {
				return fmt.Errorf("inserting %d cards: %w", len(cards), err)
			}
		}

		var err error
		out, err = fetchAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func fetchAll(ctx context.Context, db sqlx.QueryerContext) ([]Card, error) {
	const q = `
	SELECT card_id, name, price, description, availability, image_src, date
	FROM cards
	ORDER BY card_id ASC`

	cards := make([]Card, 0)
	if err := sqlx.SelectContext(ctx, db, &cards, q); err != nil {
		return nil, fmt.Errorf("selecting cards: %w", err)
	}
	return cards, nil
}
