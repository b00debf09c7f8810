package kernel

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer minor units
// (e.g., cents). Integer arithmetic keeps order totals exact; floating point is
// deliberately not used for prices anywhere in the domain.
//
// The zero value of Money is a valid amount of zero. Negative amounts are not
// representable: every constructor rejects them.
//
// Example usage:
//
//	price, err := kernel.NewMoney(14990)
//	if err != nil {
//	    // handle error
//	}
//	total := price.Multiply(3) // 44970
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Returns an error if the amount is negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return Money{}
}

// RestoreMoney rebuilds a Money value from a trusted store without
// revalidating the amount.
func RestoreMoney(amount int64) Money {
	return Money{amount: amount}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two Money values, floored at zero.
// Discounts never drive a total negative.
func (m Money) Sub(other Money) Money {
	if other.amount >= m.amount {
		return Money{}
	}
	return Money{amount: m.amount - other.amount}
}

// Multiply returns the Money value scaled by a non-negative quantity.
func (m Money) Multiply(qty int) Money {
	if qty <= 0 {
		return Money{}
	}
	return Money{amount: m.amount * int64(qty)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted in minor units.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
