package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	cartdom "github.com/boolshop/storefront/internal/cart/domain"
	"github.com/boolshop/storefront/internal/checkout/domain"
)

const eventOrderPlaced = "OrderPlaced"

type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	inventory Inventory
	carts     CartStore
	pricing   cartdom.PricingConfig
}

func NewService(log *slog.Logger, repo OrderRepository, inventory Inventory, carts CartStore, pricing cartdom.PricingConfig) *Service {
	return &Service{log: log, repo: repo, inventory: inventory, carts: carts, pricing: pricing}
}

// PlaceOrder validates the customer form, re-checks every cart line against
// current stock (collecting all conflicts), reserves stock, and persists
// the order together with its OrderPlaced outbox event. The session cart
// and its coupon are cleared only after the order committed.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, customer domain.Customer, traceparent string) (domain.Order, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if c.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err := customer.Validate(); err != nil {
		return domain.Order{}, err
	}

	ids := make([]int64, 0, len(c.Items))
	quantities := make(map[int64]int, len(c.Items))
	for _, li := range c.Items {
		ids = append(ids, li.ProductID)
		quantities[li.ProductID] = li.Quantity
	}

	levels, err := s.inventory.StockLevels(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}
	if violations := domain.CheckStock(c.Items, levels); len(violations) > 0 {
		return domain.Order{}, &domain.StockConflictError{Violations: violations}
	}

	breakdown := cartdom.ComputeTotals(c, s.pricing)
	order := domain.NewOrder(uuid.NewString(), customer, c, breakdown)

	event := domain.OrderPlaced{
		OrderID:       order.ID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.FullName(),
		TotalCents:    order.TotalCents,
		Items:         order.Items,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.inventory.ReserveStock(ctx, quantities); err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.SaveWithOutbox(ctx, order, eventOrderPlaced, payload, traceparent); err != nil {
		// The reservation committed on its own; give the stock back or it
		// stays decremented with no order behind it.
		if rerr := s.inventory.ReleaseStock(ctx, quantities); rerr != nil {
			s.log.Error("stock release failed after save error",
				"order_id", order.ID, "err", rerr)
		}
		return domain.Order{}, err
	}

	// The order is committed at this point. A stale session cart is worth a
	// warning, not a failed response the client would retry.
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.log.Warn("cart cleanup failed after order commit",
			"order_id", order.ID, "session_id", sessionID, "err", err)
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}
