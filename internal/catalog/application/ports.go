package application

import (
	"context"
	"errors"

	"github.com/boolshop/storefront/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ByID(ctx context.Context, id int64) (domain.Product, error)
	BySlug(ctx context.Context, slug string) (domain.Product, error)
}
