package application

import (
	"context"

	cartdom "github.com/boolshop/storefront/internal/cart/domain"
	"github.com/boolshop/storefront/internal/checkout/domain"
)

type OrderRepository interface {
	// SaveWithOutbox persists the order and stages the event payload in the
	// same transaction.
	SaveWithOutbox(ctx context.Context, o domain.Order, eventType string, payload []byte, traceparent string) error
	Get(ctx context.Context, id string) (domain.Order, error)
}

// Inventory exposes the catalog's live stock to checkout. MaxStock captured
// in the cart is stale; submission re-checks against these levels.
// ReleaseStock compensates a reservation whose order never persisted.
type Inventory interface {
	StockLevels(ctx context.Context, ids []int64) (map[int64]int, error)
	ReserveStock(ctx context.Context, quantities map[int64]int) error
	ReleaseStock(ctx context.Context, quantities map[int64]int) error
}

type CartStore interface {
	Load(ctx context.Context, sessionID string) (cartdom.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}
