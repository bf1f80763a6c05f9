package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// ErrMoneyIsNegative indicates an attempt to construct a negative amount.
// Prices, subtotals, and order totals are never negative in this domain.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a fixed-point currency value object. Amounts are stored as an
// integer number of cents, so money arithmetic is exact and free of the
// rounding drift that floating-point representations introduce.
//
// Unlike most value objects in this package, the zero value of Money is
// valid: it represents an amount of 0.00, which is the legitimate total of a
// freshly created order with no line items.
//
// Money is immutable; arithmetic methods return new values.
//
// Example usage:
//
//	price, _ := kernel.NewMoneyFromCents(1200) // 12.00
//	subtotal := price.Multiply(3)              // 36.00
//	total := subtotal.Add(price)               // 48.00
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from an integer number of cents.
// Returns ErrMoneyIsNegative for negative amounts.
//
// Example:
//
//	price, err := kernel.NewMoneyFromCents(1250)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(price) // "12.50"
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Multiply returns the amount multiplied by an integer factor.
// Used to derive a line item subtotal from quantity and captured unit price.
func (m Money) Multiply(factor int) Money {
	return Money{cents: m.cents * int64(factor)}
}

// IsZero reports whether the amount is exactly 0.00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for exact equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "19.50".
// Implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
