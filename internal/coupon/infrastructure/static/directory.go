// Package static holds the coupon directory embedded in the binary.
package static

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boolshop/storefront/internal/coupon/domain"
)

//go:embed coupons.json
var couponsJSON []byte

type Directory struct {
	byCode map[string]domain.Coupon
}

func NewDirectory() (*Directory, error) {
	var coupons []domain.Coupon
	if err := json.Unmarshal(couponsJSON, &coupons); err != nil {
		return nil, fmt.Errorf("decode embedded coupons: %w", err)
	}

	d := &Directory{byCode: make(map[string]domain.Coupon, len(coupons))}
	for _, c := range coupons {
		d.byCode[strings.ToUpper(c.Code)] = c
	}
	return d, nil
}

func (d *Directory) ByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.Coupon{}, domain.ErrInvalidCode
	}
	return c, nil
}
