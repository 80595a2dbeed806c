package domain

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Stampa Venezia", "stampa-venezia"},
		{"  Poster  Aurora  ", "poster-aurora"},
		{"Tela d'Autore!", "tela-dautore"},
		{"Cornice_Classica - Oro", "cornice-classica-oro"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDiscountPercent(t *testing.T) {
	p := Product{PriceCents: 2000, OriginalPriceCents: 2500}
	if got := p.DiscountPercent(); got != 20 {
		t.Errorf("expected 20%%, got %d", got)
	}

	full := Product{PriceCents: 2000}
	if got := full.DiscountPercent(); got != 0 {
		t.Errorf("expected 0 for non-sale product, got %d", got)
	}
}

func TestLowStock(t *testing.T) {
	if !(Product{InStock: 3}).LowStock() {
		t.Error("3 in stock should be low")
	}
	if (Product{InStock: 0}).LowStock() {
		t.Error("out of stock is not low stock")
	}
	if (Product{InStock: 12}).LowStock() {
		t.Error("12 in stock is not low")
	}
}
