package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCode   = errors.New("unknown coupon code")
	ErrExpired       = errors.New("coupon expired")
	ErrMinimumNotMet = errors.New("minimum order amount not met")
)

type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// Coupon is a named discount rule. Value is a percentage for TypePercentage
// and euro cents for TypeFixed.
type Coupon struct {
	Code           string    `json:"code"`
	Type           Type      `json:"type"`
	Value          int64     `json:"value"`
	MinAmountCents int64     `json:"minAmountCents"`
	ValidFrom      time.Time `json:"validFrom"`
	ValidTo        time.Time `json:"validTo"`
}

// Validate checks the validity window before the minimum-spend gate: an
// expired code is reported as expired even when the minimum is also unmet.
func (c Coupon) Validate(subtotalCents int64, now time.Time) error {
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return ErrExpired
	}
	if subtotalCents < c.MinAmountCents {
		return ErrMinimumNotMet
	}
	return nil
}
