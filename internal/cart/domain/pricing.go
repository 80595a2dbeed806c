package domain

import (
	coupon "github.com/boolshop/storefront/internal/coupon/domain"
)

// PricingConfig carries the shipping thresholds so they are wiring, not
// magic numbers inside the arithmetic.
type PricingConfig struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThresholdCents: 7500,
		FlatShippingFeeCents:       599,
	}
}

// Breakdown is the derived pricing of a cart snapshot.
type Breakdown struct {
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

func (c Cart) Subtotal() int64 {
	var total int64
	for _, li := range c.Items {
		total += li.UnitPrice * int64(li.Quantity)
	}
	return total
}

func ShippingCost(subtotalCents int64, cfg PricingConfig) int64 {
	if subtotalCents >= cfg.FreeShippingThresholdCents {
		return 0
	}
	return cfg.FlatShippingFeeCents
}

// AmountToFreeShipping returns how much more the cart needs to spend for
// free shipping, or 0 when the threshold is already met.
func AmountToFreeShipping(subtotalCents int64, cfg PricingConfig) int64 {
	if missing := cfg.FreeShippingThresholdCents - subtotalCents; missing > 0 {
		return missing
	}
	return 0
}

// DiscountAmount never exceeds the subtotal: a fixed-amount coupon larger
// than the cart clamps instead of driving the total negative.
func DiscountAmount(subtotalCents int64, cpn *coupon.Coupon) int64 {
	if cpn == nil {
		return 0
	}
	switch cpn.Type {
	case coupon.TypePercentage:
		return subtotalCents * cpn.Value / 100
	case coupon.TypeFixed:
		if cpn.Value > subtotalCents {
			return subtotalCents
		}
		return cpn.Value
	default:
		return 0
	}
}

func Total(c Cart, cfg PricingConfig) int64 {
	return ComputeTotals(c, cfg).TotalCents
}

// ComputeTotals derives the full pricing breakdown for the cart and its
// active coupon. The grand total is floored at zero.
func ComputeTotals(c Cart, cfg PricingConfig) Breakdown {
	subtotal := c.Subtotal()
	discount := DiscountAmount(subtotal, c.Coupon)
	shipping := ShippingCost(subtotal, cfg)
	total := subtotal - discount + shipping
	if total < 0 {
		total = 0
	}
	return Breakdown{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		ShippingCents: shipping,
		TotalCents:    total,
	}
}
