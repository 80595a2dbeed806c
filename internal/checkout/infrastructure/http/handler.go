package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/boolshop/storefront/internal/checkout/application"
	"github.com/boolshop/storefront/internal/checkout/domain"
	"github.com/boolshop/storefront/internal/checkout/infrastructure/postgres"
	"github.com/boolshop/storefront/pkg/money"
	"github.com/boolshop/storefront/pkg/tracing"
)

const sessionHeader = "X-Session-ID"

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("checkout-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders/{id}", h.getOrder)
}

type orderDTO struct {
	ID         string             `json:"id"`
	Status     string             `json:"status"`
	CouponCode string             `json:"couponCode,omitempty"`
	Subtotal   string             `json:"subtotal"`
	Discount   string             `json:"discount"`
	Shipping   string             `json:"shipping"`
	Total      string             `json:"total"`
	TotalCents int64              `json:"totalCents"`
	Items      []domain.OrderItem `json:"items"`
}

func toOrderDTO(o domain.Order) orderDTO {
	return orderDTO{
		ID:         o.ID,
		Status:     string(o.Status),
		CouponCode: o.CouponCode,
		Subtotal:   money.Format(money.Cents(o.SubtotalCents)),
		Discount:   money.Format(money.Cents(o.DiscountCents)),
		Shipping:   money.Format(money.Cents(o.ShippingCents)),
		Total:      money.Format(money.Cents(o.TotalCents)),
		TotalCents: o.TotalCents,
		Items:      o.Items,
	}
}

type placeOrderReq struct {
	Customer domain.Customer `json:"customer"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	traceparent := r.Header.Get("traceparent")
	if traceparent == "" {
		traceparent = tracing.Traceparent(ctx)
	}

	order, err := h.service.PlaceOrder(ctx, sessionID, req.Customer, traceparent)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("order placed", "order_id", order.ID, "total_cents", order.TotalCents)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toOrderDTO(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrder")
	defer span.End()

	order, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, postgres.ErrOrderNotFound) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("order lookup failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toOrderDTO(order))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": verr.Fields})
		return
	}

	var conflict *domain.StockConflictError
	if errors.As(err, &conflict) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":       "Alcuni prodotti non sono più disponibili",
			"unavailable": conflict.Violations,
		})
		return
	}

	if errors.Is(err, domain.ErrEmptyCart) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Carrello vuoto"})
		return
	}

	h.log.Error("place order failed", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
}
