package application

import (
	"context"

	"github.com/boolshop/storefront/internal/coupon/domain"
)

// Directory looks up known coupons by code. Lookups are case-insensitive.
type Directory interface {
	ByCode(ctx context.Context, code string) (domain.Coupon, error)
}
