package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
	"github.com/irsalhamdi/online-store/validate"
)

type QuantityUp struct {
	Quantity int `json:"quantity" validate:"gte=1,lte=9999"`
}

func HandleShow(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, Render(ctx, s), http.StatusOK)
	}
}

func HandleCreateItem(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var it Item
		if err := web.Decode(w, r, &it); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(it); err != nil {
			return weberr.UserError(err, http.StatusBadRequest)
		}

		items, err := Add(s.Load(ctx), it)
		if err != nil {
			return weberr.UserError(err, http.StatusBadRequest)
		}

		if err := s.Save(ctx, items); err != nil {
			return err
		}

		return web.Respond(ctx, w, Render(ctx, s), http.StatusOK)
	}
}

func HandleUpdateItem(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		index, err := web.ParamInt(r, "index")
		if err != nil {
			return weberr.BadRequest(err)
		}

		var up QuantityUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.UserError(err, http.StatusBadRequest)
		}

		items, err := SetQuantity(s.Load(ctx), index, up.Quantity)
		if err != nil {
			return itemError(err)
		}

		if err := s.Save(ctx, items); err != nil {
			return err
		}

		return web.Respond(ctx, w, Render(ctx, s), http.StatusOK)
	}
}

func HandleDeleteItem(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		index, err := web.ParamInt(r, "index")
		if err != nil {
			return weberr.BadRequest(err)
		}

		items, err := Remove(s.Load(ctx), index)
		if err != nil {
			return itemError(err)
		}

		if err := s.Save(ctx, items); err != nil {
			return err
		}

		return web.Respond(ctx, w, Render(ctx, s), http.StatusOK)
	}
}

// ClearConfirmation is the shopper's answer to "empty the cart?".
type ClearConfirmation struct {
	Confirm bool `json:"confirm"`
}

type cleared struct {
	Status string `json:"status"`
	Cart   View   `json:"cart"`
}

// HandleDelete empties the cart once the shopper confirms. Without a
// confirmation the cart is left as it is.
func HandleDelete(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if len(s.Load(ctx)) == 0 {
			return weberr.Unprocessable(ErrEmpty)
		}

		var c ClearConfirmation
		if err := web.Decode(w, r, &c); err != nil && !errors.Is(err, io.EOF) {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if !c.Confirm {
			return web.Respond(ctx, w, cleared{Status: "declined", Cart: Render(ctx, s)}, http.StatusOK)
		}

		if err := s.Clear(ctx); err != nil {
			return err
		}

		return web.Respond(ctx, w, cleared{Status: "cleared", Cart: Render(ctx, s)}, http.StatusOK)
	}
}

func itemError(err error) error {
	if errors.Is(err, ErrNoItem) {
		return weberr.NotFound(err)
	}
	return weberr.UserError(err, http.StatusBadRequest)
}
