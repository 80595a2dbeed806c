package static

import (
	"context"
	"errors"
	"testing"

	"github.com/boolshop/storefront/internal/coupon/domain"
)

func TestDirectoryLookupIsCaseInsensitive(t *testing.T) {
	dir, err := NewDirectory()
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}

	for _, code := range []string{"BENVENUTO10", "benvenuto10", " Benvenuto10 "} {
		c, err := dir.ByCode(context.Background(), code)
		if err != nil {
			t.Errorf("ByCode(%q): %v", code, err)
			continue
		}
		if c.Type != domain.TypePercentage || c.Value != 10 {
			t.Errorf("ByCode(%q) returned %+v", code, c)
		}
	}
}

func TestDirectoryUnknownCode(t *testing.T) {
	dir, err := NewDirectory()
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	if _, err := dir.ByCode(context.Background(), "NONESISTE"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}
