// Package cart keeps the shopper's line items in a single storage slot and
// renders them with their total.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line.
const MaxQuantity = 9999

var (
	ErrNoItem          = errors.New("no such item in cart")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 9999")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrEmpty           = errors.New("cart is already empty")
	ErrNoName          = errors.New("item name is required")
)

type Item struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"lte=9999"`
	Image    string          `json:"image,omitempty" validate:"omitempty,url"`
}

// LineTotal is price times quantity, rounded to cents.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
}

func (it Item) check() error {
	if it.Name == "" {
		return ErrNoName
	}
	if it.Quantity < 1 || it.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if it.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Total sums every line exactly and rounds once at the end.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

// Add appends it, or bumps the quantity of the line with the same name.
// A zero quantity counts as one. A merge past MaxQuantity is rejected.
func Add(items []Item, it Item) ([]Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Quantity == 0 {
		it.Quantity = 1
	}
	if err := it.check(); err != nil {
		return items, err
	}

	for i := range items {
		if items[i].Name == it.Name {
			if it.Quantity > MaxQuantity-items[i].Quantity {
				return items, ErrInvalidQuantity
			}
			items[i].Quantity += it.Quantity
			return items, nil
		}
	}
	return append(items, it), nil
}

func SetQuantity(items []Item, index, quantity int) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("item[%d]: %w", index, ErrNoItem)
	}
	if quantity < 1 || quantity > MaxQuantity {
		return items, ErrInvalidQuantity
	}

	items[index].Quantity = quantity
	return items, nil
}

func Remove(items []Item, index int) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("item[%d]: %w", index, ErrNoItem)
	}

	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...), nil
}
