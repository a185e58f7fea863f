// Package checkout turns the stored cart into a submitted order.
//
// The flow is linear: validate, confirm, submit once, then clear. The cart is
// cleared only after the intake endpoint accepted the order; a failed
// submission leaves it in place so the shopper can try again.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/online-store/core/cart"
	"github.com/irsalhamdi/online-store/validate"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	MsgSubmitted = "Order placed! We will contact you shortly."
	MsgFailed    = "Something went wrong while sending your order. Please try again."
)

type Status string

const (
	Submitted Status = "submitted"
	Declined  Status = "declined"
)

type OrderLine struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Image     string
}

// Order is built at checkout time and never stored.
type Order struct {
	Reference string
	Total     decimal.Decimal
	PlacedAt  time.Time
	ItemCount int
	Items     []OrderLine
}

// Submitter delivers an order to the intake endpoint. It is called at most
// once per checkout.
type Submitter interface {
	Submit(ctx context.Context, ord Order) error
}

// ConfirmFunc is shown the rendered total and reports whether the shopper
// agreed to pay it.
type ConfirmFunc func(total string) bool

// SubmitError is a failed submission. The cart was left untouched.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string { return fmt.Sprintf("submitting order: %v", e.Err) }

func (e *SubmitError) Unwrap() error { return e.Err }

type Result struct {
	Status  Status
	Order   Order
	Total   string
	Message string
	Cart    cart.View
}

type Flow struct {
	Store     *cart.Store
	Submitter Submitter
	Log       logrus.FieldLogger
	Now       func() time.Time
}

func (f *Flow) Checkout(ctx context.Context, confirm ConfirmFunc) (Result, error) {
	items := f.Store.Load(ctx)
	if len(items) == 0 {
		return Result{}, ErrEmptyCart
	}

	view := cart.NewView(items)
	if !confirm(view.Total) {
		return Result{Status: Declined, Total: view.Total, Cart: view}, nil
	}

	ord := f.newOrder(items)
	log := f.Log.WithFields(logrus.Fields{
		"order":      ord.Reference,
		"item_count": ord.ItemCount,
		"total":      view.Total,
	})

	if err := f.Submitter.Submit(ctx, ord); err != nil {
		log.WithError(err).Warn("order submission failed")
		return Result{}, &SubmitError{Err: err}
	}
	log.Info("order submitted")

	if err := f.Store.Clear(ctx); err != nil {
		return Result{}, fmt.Errorf("order %s was submitted but the cart was kept: %w", ord.Reference, err)
	}

	return Result{
		Status:  Submitted,
		Order:   ord,
		Total:   view.Total,
		Message: MsgSubmitted,
		Cart:    cart.Render(ctx, f.Store),
	}, nil
}

func (f *Flow) newOrder(items []cart.Item) Order {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	ord := Order{
		Reference: validate.GenerateID(),
		Total:     cart.Total(items),
		PlacedAt:  now().UTC(),
		ItemCount: len(items),
		Items:     make([]OrderLine, 0, len(items)),
	}
	for _, it := range items {
		ord.Items = append(ord.Items, OrderLine{
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
			Image:     it.Image,
		})
	}
	return ord
}
