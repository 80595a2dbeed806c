package application

import (
	"context"

	"github.com/boolshop/storefront/internal/catalog/domain"
)

type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

// Browse runs the catalog query engine over the full product list.
func (s *Service) Browse(ctx context.Context, params domain.Params) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Query(products, params), nil
}

func (s *Service) BySlug(ctx context.Context, slug string) (domain.Product, error) {
	return s.repo.BySlug(ctx, slug)
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.Browse(ctx, domain.Params{Filter: domain.FilterFeatured, Sort: domain.SortNewest})
}

func (s *Service) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return s.Browse(ctx, domain.Params{Filter: domain.FilterNew, Sort: domain.SortNewest})
}

func (s *Service) OnSale(ctx context.Context) ([]domain.Product, error) {
	return s.Browse(ctx, domain.Params{Filter: domain.FilterSale, Sort: domain.SortNewest})
}
