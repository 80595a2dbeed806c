package application

import (
	"context"
	"log/slog"

	"github.com/boolshop/storefront/internal/checkout/domain"
	"github.com/boolshop/storefront/pkg/money"
)

// Service reacts to placed orders. Mail delivery is simulated with
// structured logs until a real provider is wired in.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

func (s *Service) SendOrderConfirmation(ctx context.Context, ev domain.OrderPlaced) error {
	s.log.Info("sending confirmation email to customer",
		"order_id", ev.OrderID,
		"email", ev.CustomerEmail,
		"total", money.Format(money.Cents(ev.TotalCents)),
	)
	s.log.Info("sending order notification to store",
		"order_id", ev.OrderID,
		"items", len(ev.Items),
	)
	return nil
}
