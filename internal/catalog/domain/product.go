package domain

import (
	"math"
	"regexp"
	"strings"
)

// Product is loaded once from the catalog source and never mutated by the
// query engine. Prices are euro cents.
type Product struct {
	ID                 int64  `json:"id"`
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	PriceCents         int64  `json:"priceCents"`
	OriginalPriceCents int64  `json:"originalPriceCents,omitempty"`
	InStock            int    `json:"inStock"`
	IsNew              bool   `json:"isNew"`
	OnSale             bool   `json:"onSale"`
	IsFeatured         bool   `json:"isFeatured"`
	Image              string `json:"image"`
}

const lowStockThreshold = 5

// LowStock reports whether the product should show a "only N left" notice.
func (p Product) LowStock() bool {
	return p.InStock > 0 && p.InStock < lowStockThreshold
}

// DiscountPercent returns the rounded sale percentage against the original
// price, or 0 when the product is not discounted.
func (p Product) DiscountPercent() int {
	if p.OriginalPriceCents <= 0 || p.OriginalPriceCents <= p.PriceCents {
		return 0
	}
	ratio := float64(p.OriginalPriceCents-p.PriceCents) / float64(p.OriginalPriceCents)
	return int(math.Round(ratio * 100))
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
	slugTrim     = regexp.MustCompile(`^-+|-+$`)
)

// Slugify builds a URL slug from a product name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}
