package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/online-store/core/cart"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type stubSubmitter struct {
	err    error
	orders []Order
}

func (s *stubSubmitter) Submit(_ context.Context, ord Order) error {
	s.orders = append(s.orders, ord)
	return s.err
}

func yes(string) bool { return true }

func newFlow(t *testing.T, sub Submitter, items ...cart.Item) *Flow {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := cart.NewStore(cart.NewMemoryStorage(), log)
	if len(items) > 0 {
		if err := store.Save(context.Background(), items); err != nil {
			t.Fatal(err)
		}
	}

	return &Flow{
		Store:     store,
		Submitter: sub,
		Log:       log,
		Now:       func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) },
	}
}

var lamp = cart.Item{Name: "Lamp", Price: decimal.NewFromInt(100), Quantity: 2}

func TestCheckoutEmptyCart(t *testing.T) {
	sub := &stubSubmitter{}
	f := newFlow(t, sub)

	asked := false
	_, err := f.Checkout(context.Background(), func(string) bool { asked = true; return true })
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if asked {
		t.Fatal("an empty cart must not ask for confirmation")
	}
	if len(sub.orders) != 0 {
		t.Fatalf("expected no submission, got %d", len(sub.orders))
	}
}

func TestCheckoutDeclined(t *testing.T) {
	sub := &stubSubmitter{}
	f := newFlow(t, sub, lamp)

	var shown string
	res, err := f.Checkout(context.Background(), func(total string) bool { shown = total; return false })
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Declined {
		t.Fatalf("expected declined, got %s", res.Status)
	}
	if shown != "200.00" {
		t.Fatalf("expected the prompt to show 200.00, got %q", shown)
	}
	if len(sub.orders) != 0 {
		t.Fatalf("expected no submission, got %d", len(sub.orders))
	}
	if got := f.Store.Load(context.Background()); len(got) != 1 {
		t.Fatalf("expected the cart to be kept, got %+v", got)
	}
}

func TestCheckoutSubmitted(t *testing.T) {
	mug := cart.Item{Name: "Mug", Price: decimal.RequireFromString("4.5"), Quantity: 1, Image: "https://img.example/mug.png"}

	sub := &stubSubmitter{}
	f := newFlow(t, sub, lamp, mug)

	res, err := f.Checkout(context.Background(), yes)
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != Submitted || res.Message != MsgSubmitted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(sub.orders) != 1 {
		t.Fatalf("expected exactly one submission, got %d", len(sub.orders))
	}

	ord := sub.orders[0]
	if ord.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", ord.ItemCount)
	}

	exp := []OrderLine{
		{Name: "Lamp", UnitPrice: decimal.NewFromInt(100), Quantity: 2, LineTotal: decimal.NewFromInt(200)},
		{Name: "Mug", UnitPrice: decimal.RequireFromString("4.5"), Quantity: 1, LineTotal: decimal.RequireFromString("4.5"), Image: "https://img.example/mug.png"},
	}
	if diff := cmp.Diff(exp, ord.Items); diff != "" {
		t.Fatalf("unexpected order lines (-want +got):\n%s", diff)
	}
	if !ord.Total.Equal(decimal.RequireFromString("204.5")) {
		t.Fatalf("expected total 204.5, got %s", ord.Total)
	}

	if got := f.Store.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected the cart to be cleared, got %+v", got)
	}
	if res.Cart.Count != 0 || res.Cart.Total != "0.00" {
		t.Fatalf("expected an empty rendered cart, got %+v", res.Cart)
	}
}

func TestCheckoutSubmitFailureKeepsCart(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("connection refused")}
	f := newFlow(t, sub, lamp)

	res, err := f.Checkout(context.Background(), yes)

	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected a SubmitError, got %v", err)
	}
	if res.Message == MsgSubmitted {
		t.Fatal("a failed submission must not report success")
	}

	got := f.Store.Load(context.Background())
	if diff := cmp.Diff([]cart.Item{lamp}, got); diff != "" {
		t.Fatalf("expected the cart to be kept (-want +got):\n%s", diff)
	}

	// A manual retry resubmits from the kept cart.
	sub.err = nil
	if _, err := f.Checkout(context.Background(), yes); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(sub.orders) != 2 {
		t.Fatalf("expected two submissions across both attempts, got %d", len(sub.orders))
	}
}
