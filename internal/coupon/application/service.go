package application

import (
	"context"
	"time"

	"github.com/boolshop/storefront/internal/coupon/domain"
)

type Service struct {
	directory Directory
}

func NewService(directory Directory) *Service {
	return &Service{directory: directory}
}

// Validate resolves a code and checks it against the subtotal at the given
// instant. Returns the accepted coupon for the caller to store on the cart.
func (s *Service) Validate(ctx context.Context, code string, subtotalCents int64, now time.Time) (domain.Coupon, error) {
	c, err := s.directory.ByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	if err := c.Validate(subtotalCents, now); err != nil {
		return domain.Coupon{}, err
	}
	return c, nil
}
