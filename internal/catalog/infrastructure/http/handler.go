package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/boolshop/storefront/internal/catalog/application"
	"github.com/boolshop/storefront/internal/catalog/domain"
	"github.com/boolshop/storefront/pkg/money"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/search", h.search)
	r.Get("/products/featured", h.featured)
	r.Get("/products/new", h.newArrivals)
	r.Get("/products/on-sale", h.onSale)
	r.Get("/products/{slug}", h.bySlug)
}

type productDTO struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	PriceCents      int64  `json:"priceCents"`
	Price           string `json:"price"`
	OriginalPrice   string `json:"originalPrice,omitempty"`
	DiscountPercent int    `json:"discountPercent,omitempty"`
	InStock         int    `json:"inStock"`
	LowStock        bool   `json:"lowStock"`
	IsNew           bool   `json:"isNew"`
	OnSale          bool   `json:"onSale"`
	IsFeatured      bool   `json:"isFeatured"`
	Image           string `json:"image"`
}

func toDTO(p domain.Product) productDTO {
	dto := productDTO{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Category:        p.Category,
		PriceCents:      p.PriceCents,
		Price:           money.Format(money.Cents(p.PriceCents)),
		DiscountPercent: p.DiscountPercent(),
		InStock:         p.InStock,
		LowStock:        p.LowStock(),
		IsNew:           p.IsNew,
		OnSale:          p.OnSale,
		IsFeatured:      p.IsFeatured,
		Image:           p.Image,
	}
	if p.OriginalPriceCents > 0 {
		dto.OriginalPrice = money.Format(money.Cents(p.OriginalPriceCents))
	}
	return dto
}

func (h *Handler) respondList(w http.ResponseWriter, products []domain.Product, err error) {
	if err != nil {
		h.log.Error("catalog query failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	dtos := make([]productDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toDTO(p))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	params := domain.Params{
		Filter: domain.ParseFilter(r.URL.Query().Get("filter")),
		Sort:   domain.ParseSort(r.URL.Query().Get("sort")),
	}
	products, err := h.service.Browse(ctx, params)
	h.respondList(w, products, err)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SearchProducts")
	defer span.End()

	params := domain.Params{
		Term:   r.URL.Query().Get("q"),
		Filter: domain.ParseFilter(r.URL.Query().Get("filter")),
		Sort:   domain.ParseSort(r.URL.Query().Get("sort")),
	}
	products, err := h.service.Browse(ctx, params)
	h.respondList(w, products, err)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "FeaturedProducts")
	defer span.End()

	products, err := h.service.Featured(ctx)
	h.respondList(w, products, err)
}

func (h *Handler) newArrivals(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "NewProducts")
	defer span.End()

	products, err := h.service.NewArrivals(ctx)
	h.respondList(w, products, err)
}

func (h *Handler) onSale(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "OnSaleProducts")
	defer span.End()

	products, err := h.service.OnSale(ctx)
	h.respondList(w, products, err)
}

func (h *Handler) bySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ProductBySlug")
	defer span.End()

	p, err := h.service.BySlug(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, application.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("product lookup failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(p))
}
