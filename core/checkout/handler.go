package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/irsalhamdi/online-store/api/web"
	"github.com/irsalhamdi/online-store/api/weberr"
	"github.com/irsalhamdi/online-store/core/cart"
)

// Confirmation is the shopper's answer to "place an order for <total>?".
// When Total is set it must match the current cart total.
type Confirmation struct {
	Confirm bool   `json:"confirm"`
	Total   string `json:"total"`
}

type response struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Total     string    `json:"total"`
	Cart      cart.View `json:"cart"`
}

func HandleCheckout(f *Flow) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var c Confirmation
		if err := web.Decode(w, r, &c); err != nil && !errors.Is(err, io.EOF) {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		res, err := f.Checkout(ctx, func(total string) bool {
			return c.Confirm && (c.Total == "" || c.Total == total)
		})

		var se *SubmitError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return weberr.Unprocessable(err)
		case errors.As(err, &se):
			return weberr.BadGateway(err, MsgFailed)
		case err != nil:
			return err
		}

		return web.Respond(ctx, w, response{
			Status:    res.Status,
			Message:   res.Message,
			Reference: res.Order.Reference,
			Total:     res.Total,
			Cart:      res.Cart,
		}, http.StatusOK)
	}
}
