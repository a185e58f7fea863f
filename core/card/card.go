// Package card owns the product catalog. The catalog is read whole and
// replaced whole; ids are handed out again on every replace.
package card

import "context"

type Card struct {
	ID           int    `json:"id" db:"card_id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Price        string `json:"price" db:"price" validate:"required"`
	Description  string `json:"description,omitempty" db:"description"`
	Availability string `json:"availability,omitempty" db:"availability"`
	ImageSrc     string `json:"imageSrc,omitempty" db:"image_src" validate:"omitempty,url"`
	Date         string `json:"date,omitempty" db:"date"`
}

// Store is the backing set of cards.
type Store interface {
	// List returns every card by ascending id.
	List(ctx context.Context) ([]Card, error)
	// Replace swaps the whole set for cards, in order, or changes nothing.
	Replace(ctx context.Context, cards []Card) ([]Card, error)
}
