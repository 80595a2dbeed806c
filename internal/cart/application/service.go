package application

import (
	"context"
	"time"

	"github.com/boolshop/storefront/internal/cart/domain"
)

// Service serializes cart mutations per session through the store: the
// domain ledger is pure, so every operation is load, transform, save.
type Service struct {
	store    Store
	products ProductFinder
	coupons  CouponValidator
	pricing  domain.PricingConfig
}

func NewService(store Store, products ProductFinder, coupons CouponValidator, pricing domain.PricingConfig) *Service {
	return &Service{store: store, products: products, coupons: coupons, pricing: pricing}
}

// View is what the cart endpoints return: the snapshot plus derived totals.
type View struct {
	Cart           domain.Cart
	Totals         domain.Breakdown
	ToFreeShipping int64
}

func (s *Service) view(c domain.Cart) View {
	return View{
		Cart:           c,
		Totals:         domain.ComputeTotals(c, s.pricing),
		ToFreeShipping: domain.AmountToFreeShipping(c.Subtotal(), s.pricing),
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

func (s *Service) Add(ctx context.Context, sessionID string, productID int64, quantity int) (View, error) {
	p, err := s.products.ByID(ctx, productID)
	if err != nil {
		return View{}, err
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	c, err = domain.Add(c, p, quantity)
	if err != nil {
		return View{}, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	c, err = domain.UpdateQuantity(c, productID, quantity)
	if err != nil {
		return View{}, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) (View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	c = domain.Remove(c, productID)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// ApplyCoupon validates the code against the current subtotal and stores it
// as the cart's single active coupon. Applying over an active coupon is
// rejected here, not in the ledger.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string, now time.Time) (View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if c.Coupon != nil {
		return View{}, domain.ErrCouponActive
	}
	cpn, err := s.coupons.Validate(ctx, code, c.Subtotal(), now)
	if err != nil {
		return View{}, err
	}
	c = domain.WithCoupon(c, &cpn)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) (View, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	c = domain.WithCoupon(c, nil)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return View{}, err
	}
	return s.view(c), nil
}
