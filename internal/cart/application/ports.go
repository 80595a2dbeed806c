package application

import (
	"context"
	"time"

	catalog "github.com/boolshop/storefront/internal/catalog/domain"
	"github.com/boolshop/storefront/internal/cart/domain"
	coupon "github.com/boolshop/storefront/internal/coupon/domain"
)

// Store persists cart snapshots per shopping session. Loading an unknown
// session yields an empty cart, not an error.
type Store interface {
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type ProductFinder interface {
	ByID(ctx context.Context, id int64) (catalog.Product, error)
}

type CouponValidator interface {
	Validate(ctx context.Context, code string, subtotalCents int64, now time.Time) (coupon.Coupon, error)
}
