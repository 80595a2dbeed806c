package domain

import (
	"fmt"
	"strings"

	cart "github.com/boolshop/storefront/internal/cart/domain"
)

// StockViolation records one cart line the current catalog can no longer
// satisfy.
type StockViolation struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// StockConflictError carries every violating line so the caller can show
// the complete list, not just the first conflict.
type StockConflictError struct {
	Violations []StockViolation
}

func (e *StockConflictError) Error() string {
	names := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		names = append(names, v.Name)
	}
	return fmt.Sprintf("insufficient stock for: %s", strings.Join(names, ", "))
}

// CheckStock compares every cart line against current stock levels and
// collects all violations. Products missing from levels count as stock 0.
func CheckStock(items []cart.LineItem, levels map[int64]int) []StockViolation {
	var violations []StockViolation
	for _, li := range items {
		available := levels[li.ProductID]
		if li.Quantity > available {
			violations = append(violations, StockViolation{
				ProductID: li.ProductID,
				Name:      li.Name,
				Requested: li.Quantity,
				Available: available,
			})
		}
	}
	return violations
}
