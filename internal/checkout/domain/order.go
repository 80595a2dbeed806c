package domain

import (
	"errors"
	"time"

	cart "github.com/boolshop/storefront/internal/cart/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
)

type Order struct {
	ID            string
	Customer      Customer
	Items         []OrderItem
	CouponCode    string
	SubtotalCents int64
	DiscountCents int64
	ShippingCents int64
	TotalCents    int64
	Status        OrderStatus
	CreatedAt     time.Time
}

type OrderItem struct {
	ProductID  int64
	Name       string
	Quantity   int
	PriceCents int64
}

// NewOrder freezes a cart snapshot and its pricing breakdown into an order.
func NewOrder(id string, customer Customer, c cart.Cart, b cart.Breakdown) Order {
	items := make([]OrderItem, 0, len(c.Items))
	for _, li := range c.Items {
		items = append(items, OrderItem{
			ProductID:  li.ProductID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			PriceCents: li.UnitPrice,
		})
	}
	couponCode := ""
	if c.Coupon != nil {
		couponCode = c.Coupon.Code
	}
	return Order{
		ID:            id,
		Customer:      customer,
		Items:         items,
		CouponCode:    couponCode,
		SubtotalCents: b.SubtotalCents,
		DiscountCents: b.DiscountCents,
		ShippingCents: b.ShippingCents,
		TotalCents:    b.TotalCents,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// OrderPlaced is published once the order row and its outbox entry commit.
type OrderPlaced struct {
	OrderID       string      `json:"orderId"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerName  string      `json:"customerName"`
	TotalCents    int64       `json:"totalCents"`
	Items         []OrderItem `json:"items"`
}
