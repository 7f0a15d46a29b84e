package model

import (
	"encoding/json"
	"math"
)

// Money is a non-negative monetary amount rounded to two decimal places.
// The zero value is zero money.
type Money struct {
	value float64
}

// NewMoney builds a Money from a raw amount, rounding to two decimals.
// Negative amounts are rejected with ErrNegativeAmount.
func NewMoney(value float64) (Money, error) {
	if value < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{value: round2(value)}, nil
}

// MustMoney is a convenience for amounts known to be non-negative, such as
// values read back from the database. It panics on a negative amount.
func MustMoney(value float64) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Value returns the rounded amount.
func (m Money) Value() float64 {
	return m.value
}

// Add returns the sum of two amounts. Non-negative operands cannot produce
// a negative result, so Add never fails.
func (m Money) Add(other Money) Money {
	return Money{value: round2(m.value + other.value)}
}

// Subtract returns m minus other, failing with ErrNegativeAmount if the
// result would drop below zero.
func (m Money) Subtract(other Money) (Money, error) {
	return NewMoney(m.value - other.value)
}

// Multiply scales the amount by an integer factor.
func (m Money) Multiply(factor int) (Money, error) {
	return NewMoney(m.value * float64(factor))
}

// Equals compares by rounded value.
func (m Money) Equals(other Money) bool {
	return m.value == other.value
}

// GreaterThan compares by rounded value.
func (m Money) GreaterThan(other Money) bool {
	return m.value > other.value
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.value == 0
}

// MarshalJSON encodes the amount as a plain number.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes a plain number, re-validating and re-rounding.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewMoney(v)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
