package static

import (
	"context"
	"errors"
	"testing"

	"github.com/boolshop/storefront/internal/catalog/application"
)

func TestRepositoryLoadsEmbeddedCatalog(t *testing.T) {
	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	p, err := repo.BySlug(context.Background(), "stampa-venezia-al-tramonto")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if p.ID != 1 || !p.OnSale {
		t.Errorf("unexpected product: %+v", p)
	}

	if _, err := repo.BySlug(context.Background(), "non-esiste"); !errors.Is(err, application.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReserveStock(t *testing.T) {
	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	ctx := context.Background()

	before, _ := repo.StockLevels(ctx, []int64{2})
	if err := repo.ReserveStock(ctx, map[int64]int{2: 3}); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	after, _ := repo.StockLevels(ctx, []int64{2})
	if after[2] != before[2]-3 {
		t.Errorf("expected stock %d, got %d", before[2]-3, after[2])
	}
}

func TestReleaseStockRestoresLevels(t *testing.T) {
	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	ctx := context.Background()

	before, _ := repo.StockLevels(ctx, []int64{2})
	if err := repo.ReserveStock(ctx, map[int64]int{2: 2}); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	if err := repo.ReleaseStock(ctx, map[int64]int{2: 2}); err != nil {
		t.Fatalf("ReleaseStock: %v", err)
	}
	after, _ := repo.StockLevels(ctx, []int64{2})
	if after[2] != before[2] {
		t.Errorf("stock not restored: %d -> %d", before[2], after[2])
	}

	// Unknown IDs are skipped, not an error.
	if err := repo.ReleaseStock(ctx, map[int64]int{999: 1}); err != nil {
		t.Errorf("ReleaseStock unknown id: %v", err)
	}
}

func TestReserveStockInsufficientLeavesCatalogUntouched(t *testing.T) {
	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	ctx := context.Background()

	before, _ := repo.StockLevels(ctx, []int64{2, 6})
	// Product 6 is out of stock in the dataset.
	if err := repo.ReserveStock(ctx, map[int64]int{2: 1, 6: 1}); err == nil {
		t.Fatal("expected reservation to fail")
	}
	after, _ := repo.StockLevels(ctx, []int64{2, 6})
	if after[2] != before[2] {
		t.Errorf("partial reservation applied: %d -> %d", before[2], after[2])
	}
}
