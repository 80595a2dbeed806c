package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Filter string

const (
	FilterNone     Filter = ""
	FilterNew      Filter = "new"
	FilterSale     Filter = "sale"
	FilterFeatured Filter = "featured"
)

func ParseFilter(s string) Filter {
	switch s {
	case "new", "sale", "featured":
		return Filter(s)
	default:
		return FilterNone
	}
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortName      Sort = "name"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
)

func ParseSort(s string) Sort {
	switch s {
	case "name", "price-asc", "price-desc":
		return Sort(s)
	default:
		return SortNewest
	}
}

type Params struct {
	Term   string
	Filter Filter
	Sort   Sort
}

// Query returns the filtered, ordered view of products described by params.
// It never mutates its input and is safe to call on every keystroke.
//
// "newest" orders by ID descending: IDs are assigned monotonically, so they
// stand in for a creation timestamp the catalog does not carry. Every sort
// falls back to ID ascending so equal keys still yield one total order.
func Query(products []Product, params Params) []Product {
	out := make([]Product, 0, len(products))
	term := strings.ToLower(strings.TrimSpace(params.Term))
	for _, p := range products {
		if !matchesFilter(p, params.Filter) {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		out = append(out, p)
	}

	less := lessFunc(params.Sort)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matchesFilter(p Product, f Filter) bool {
	switch f {
	case FilterNew:
		return p.IsNew
	case FilterSale:
		return p.OnSale
	case FilterFeatured:
		return p.IsFeatured
	default:
		return true
	}
}

func matchesTerm(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func lessFunc(s Sort) func(a, b Product) bool {
	switch s {
	case SortName:
		c := collate.New(language.Italian)
		return func(a, b Product) bool {
			if cmp := c.CompareString(a.Name, b.Name); cmp != 0 {
				return cmp < 0
			}
			return a.ID < b.ID
		}
	case SortPriceAsc:
		return func(a, b Product) bool {
			if a.PriceCents != b.PriceCents {
				return a.PriceCents < b.PriceCents
			}
			return a.ID < b.ID
		}
	case SortPriceDesc:
		return func(a, b Product) bool {
			if a.PriceCents != b.PriceCents {
				return a.PriceCents > b.PriceCents
			}
			return a.ID < b.ID
		}
	default: // newest
		return func(a, b Product) bool {
			return a.ID > b.ID
		}
	}
}
