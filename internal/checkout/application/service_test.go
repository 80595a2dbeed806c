package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	cartdom "github.com/boolshop/storefront/internal/cart/domain"
	"github.com/boolshop/storefront/internal/checkout/domain"
	coupon "github.com/boolshop/storefront/internal/coupon/domain"
)

type mockOrderRepo struct {
	orders     map[string]domain.Order
	eventTypes []string
	payloads   [][]byte
	saveErr    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]domain.Order)}
}

func (m *mockOrderRepo) SaveWithOutbox(ctx context.Context, o domain.Order, eventType string, payload []byte, traceparent string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[o.ID] = o
	m.eventTypes = append(m.eventTypes, eventType)
	m.payloads = append(m.payloads, payload)
	return nil
}

func (m *mockOrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return o, nil
}

type mockInventory struct {
	levels   map[int64]int
	reserved map[int64]int
	released map[int64]int
}

func (m *mockInventory) StockLevels(ctx context.Context, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	for _, id := range ids {
		out[id] = m.levels[id]
	}
	return out, nil
}

func (m *mockInventory) ReserveStock(ctx context.Context, quantities map[int64]int) error {
	m.reserved = quantities
	return nil
}

func (m *mockInventory) ReleaseStock(ctx context.Context, quantities map[int64]int) error {
	m.released = quantities
	return nil
}

type mockCartStore struct {
	carts     map[string]cartdom.Cart
	deleteErr error
}

func (m *mockCartStore) Load(ctx context.Context, sessionID string) (cartdom.Cart, error) {
	return m.carts[sessionID], nil
}

func (m *mockCartStore) Delete(ctx context.Context, sessionID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, sessionID)
	return nil
}

func validCustomer() domain.Customer {
	return domain.Customer{
		FirstName: "Giulia", LastName: "Rossi", Email: "giulia@example.com",
		Phone: "3331234567", Address: "Via Garibaldi 1", City: "Milano",
		PostalCode: "20121", PaymentMethod: domain.PaymentCard,
		CardNumber: "4111111111111111", ExpiryDate: "12/27", CVV: "123",
		TermsAccepted: true,
	}
}

func checkoutCart() cartdom.Cart {
	return cartdom.Cart{Items: []cartdom.LineItem{
		{ProductID: 1, Name: "Stampa Venezia", UnitPrice: 2000, Quantity: 2, MaxStock: 10},
		{ProductID: 2, Name: "Poster Aurora", UnitPrice: 1899, Quantity: 1, MaxStock: 4},
	}}
}

func newCheckout(c cartdom.Cart, levels map[int64]int) (*Service, *mockOrderRepo, *mockInventory, *mockCartStore) {
	repo := newMockOrderRepo()
	inv := &mockInventory{levels: levels}
	carts := &mockCartStore{carts: map[string]cartdom.Cart{"s": c}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(log, repo, inv, carts, cartdom.DefaultPricingConfig())
	return svc, repo, inv, carts
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, repo, inv, carts := newCheckout(checkoutCart(), map[int64]int{1: 10, 2: 4})

	order, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.ID == "" {
		t.Error("expected generated order ID")
	}
	// 2×20,00 + 18,99 = 58,99 € subtotal, below threshold so shipping applies.
	if order.SubtotalCents != 5899 || order.ShippingCents != 599 || order.TotalCents != 6498 {
		t.Errorf("unexpected totals: %+v", order)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}

	if len(repo.eventTypes) != 1 || repo.eventTypes[0] != "OrderPlaced" {
		t.Errorf("expected one OrderPlaced event, got %v", repo.eventTypes)
	}
	var ev domain.OrderPlaced
	if err := json.Unmarshal(repo.payloads[0], &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.OrderID != order.ID || ev.CustomerEmail != "giulia@example.com" {
		t.Errorf("unexpected event: %+v", ev)
	}

	if inv.reserved[1] != 2 || inv.reserved[2] != 1 {
		t.Errorf("unexpected reservation: %+v", inv.reserved)
	}
	if _, ok := carts.carts["s"]; ok {
		t.Error("cart should be cleared after submission")
	}
}

func TestPlaceOrder_CouponOnOrder(t *testing.T) {
	c := checkoutCart()
	c = cartdom.WithCoupon(c, &coupon.Coupon{
		Code: "BENVENUTO10", Type: coupon.TypePercentage, Value: 10, MinAmountCents: 3000,
		ValidFrom: time.Now().Add(-time.Hour), ValidTo: time.Now().Add(time.Hour),
	})
	svc, _, _, _ := newCheckout(c, map[int64]int{1: 10, 2: 4})

	order, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.CouponCode != "BENVENUTO10" {
		t.Errorf("expected coupon code on order, got %q", order.CouponCode)
	}
	if order.DiscountCents != 589 { // 10% of 58,99 €, floored to the cent
		t.Errorf("discount = %d, want 589", order.DiscountCents)
	}
}

func TestPlaceOrder_CollectsAllStockConflicts(t *testing.T) {
	// Both lines exceed current stock.
	svc, repo, _, carts := newCheckout(checkoutCart(), map[int64]int{1: 1, 2: 0})

	_, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), "")
	var conflict *domain.StockConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected StockConflictError, got %v", err)
	}
	if len(conflict.Violations) != 2 {
		t.Errorf("expected both violations reported, got %+v", conflict.Violations)
	}
	if len(repo.orders) != 0 {
		t.Error("no order should be saved on stock conflict")
	}
	if _, ok := carts.carts["s"]; !ok {
		t.Error("cart must survive a failed submission")
	}
}

func TestPlaceOrder_FailedSaveReleasesStock(t *testing.T) {
	svc, repo, inv, carts := newCheckout(checkoutCart(), map[int64]int{1: 10, 2: 4})
	repo.saveErr = errors.New("pg down")

	_, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), "")
	if err == nil {
		t.Fatal("expected save error to surface")
	}
	if inv.reserved[1] != 2 || inv.reserved[2] != 1 {
		t.Fatalf("unexpected reservation: %+v", inv.reserved)
	}
	if inv.released[1] != 2 || inv.released[2] != 1 {
		t.Errorf("reservation not released after failed save: %+v", inv.released)
	}
	if _, ok := carts.carts["s"]; !ok {
		t.Error("cart must survive a failed submission")
	}
}

func TestPlaceOrder_CartCleanupFailureStillReturnsOrder(t *testing.T) {
	svc, repo, inv, carts := newCheckout(checkoutCart(), map[int64]int{1: 10, 2: 4})
	carts.deleteErr = errors.New("redis down")

	order, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), "")
	if err != nil {
		t.Fatalf("order committed, cleanup failure must not surface: %v", err)
	}
	if order.ID == "" {
		t.Error("expected the committed order back")
	}
	if _, ok := repo.orders[order.ID]; !ok {
		t.Error("order should be persisted")
	}
	if inv.released != nil {
		t.Errorf("stock must stay reserved for a committed order: %+v", inv.released)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, _, _, _ := newCheckout(cartdom.Cart{}, nil)
	if _, err := svc.PlaceOrder(context.Background(), "s", validCustomer(), ""); !errors.Is(err, domain.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrder_InvalidCustomer(t *testing.T) {
	svc, repo, _, _ := newCheckout(checkoutCart(), map[int64]int{1: 10, 2: 4})

	bad := validCustomer()
	bad.Email = ""
	_, err := svc.PlaceOrder(context.Background(), "s", bad, "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Error("no order should be saved for invalid customer")
	}
}
