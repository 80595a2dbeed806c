// Package domain implements the cart ledger: immutable snapshots of line
// items plus the pricing rules applied to them. Mutators return new carts
// and never touch their input, so callers can keep prior snapshots around.
package domain

import (
	"errors"

	catalog "github.com/boolshop/storefront/internal/catalog/domain"
	coupon "github.com/boolshop/storefront/internal/coupon/domain"
)

var (
	ErrOutOfStock   = errors.New("product out of stock")
	ErrNotFound     = errors.New("product not in cart")
	ErrQuantity     = errors.New("quantity must be positive")
	ErrCouponActive = errors.New("a coupon is already applied")
)

// LineItem captures the product's name, price, image, and stock ceiling at
// add time; later catalog changes do not alter what the cart displays.
type LineItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unitPriceCents"`
	Quantity  int    `json:"quantity"`
	MaxStock  int    `json:"maxStock"`
}

// ExceedsStock reports whether the quantity has grown past the stock ceiling
// captured at add time. The ledger never clamps; display layers warn.
func (li LineItem) ExceedsStock() bool {
	return li.Quantity > li.MaxStock
}

// Cart is an ordered sequence of line items keyed by product ID, plus at
// most one active coupon.
type Cart struct {
	Items  []LineItem     `json:"items"`
	Coupon *coupon.Coupon `json:"coupon,omitempty"`
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Add appends a line for the product or, if one exists, increments its
// quantity. The caller should not offer the action for out-of-stock
// products, but the ledger re-validates.
func Add(c Cart, p catalog.Product, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrQuantity
	}
	if p.InStock == 0 {
		return c, ErrOutOfStock
	}

	items := cloneItems(c.Items)
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity += quantity
			return Cart{Items: items, Coupon: c.Coupon}, nil
		}
	}

	items = append(items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		UnitPrice: p.PriceCents,
		Quantity:  quantity,
		MaxStock:  p.InStock,
	})
	return Cart{Items: items, Coupon: c.Coupon}, nil
}

// UpdateQuantity replaces a line's quantity; zero removes the line.
func UpdateQuantity(c Cart, productID int64, quantity int) (Cart, error) {
	if quantity < 0 {
		return c, ErrQuantity
	}
	if quantity == 0 {
		return Remove(c, productID), nil
	}

	items := cloneItems(c.Items)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return Cart{Items: items, Coupon: c.Coupon}, nil
		}
	}
	return c, ErrNotFound
}

// Remove drops the line for the product; removing an absent product is a
// no-op.
func Remove(c Cart, productID int64) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, li := range c.Items {
		if li.ProductID != productID {
			items = append(items, li)
		}
	}
	return Cart{Items: items, Coupon: c.Coupon}
}

// Clear returns an empty cart with no active coupon.
func Clear(c Cart) Cart {
	return Cart{}
}

// WithCoupon returns the cart with the coupon set as its single active one.
func WithCoupon(c Cart, cpn *coupon.Coupon) Cart {
	return Cart{Items: cloneItems(c.Items), Coupon: cpn}
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
