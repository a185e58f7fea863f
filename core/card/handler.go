package card

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
	"github.com/irsalhamdi/online-store/core/claims"
	"github.com/irsalhamdi/online-store/validate"
	"github.com/sirupsen/logrus"
)

type saved struct {
	Status string `json:"status"`
}

func HandleList(store Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cards, err := store.List(ctx)
		if err != nil {
			return weberr.NewError(err, "failed to fetch cards", http.StatusInternalServerError)
		}

		return web.Respond(ctx, w, cards, http.StatusOK)
	}
}

func HandleReplace(store Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cards []Card
		if err := web.Decode(w, r, &cards); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		if cards == nil {
			return weberr.BadRequest(errors.New("payload must be a JSON array of cards"))
		}

		if err := validate.CheckEach(cards); err != nil {
			return weberr.UserError(fmt.Errorf("card%w", err), http.StatusBadRequest)
		}

		// Ids are assigned by the store.
		for i := range cards {
			cards[i].ID = 0
		}

		out, err := store.Replace(ctx, cards)
		if err != nil {
			return weberr.NewError(err, "failed to save cards", http.StatusInternalServerError)
		}

		clm, _ := claims.Get(ctx)
		log.WithFields(logrus.Fields{
			"cards": len(out),
			"role":  clm.Role,
		}).Info("catalog replaced")

		return web.Respond(ctx, w, saved{Status: "ok"}, http.StatusOK)
	}
}
