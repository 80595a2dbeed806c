package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/boolshop/storefront/internal/cart/application"
	"github.com/boolshop/storefront/internal/cart/domain"
	coupon "github.com/boolshop/storefront/internal/coupon/domain"
	"github.com/boolshop/storefront/pkg/money"
)

// SessionHeader identifies the shopping session. The handler mints a new
// session ID when the client sends none and echoes it back.
const SessionHeader = "X-Session-ID"

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("cart-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/cart", h.get)
	r.Post("/cart", h.add)
	r.Put("/cart/{productID}", h.update)
	r.Delete("/cart/{productID}", h.remove)
	r.Post("/validate-coupon", h.applyCoupon)
	r.Delete("/coupon", h.removeCoupon)
}

func session(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

type lineItemDTO struct {
	ProductID    int64  `json:"productId"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	MaxStock     int    `json:"maxStock"`
	LineTotal    string `json:"lineTotal"`
	ExceedsStock bool   `json:"exceedsStock"`
}

type viewDTO struct {
	Items          []lineItemDTO `json:"items"`
	CouponCode     string        `json:"couponCode,omitempty"`
	Subtotal       string        `json:"subtotal"`
	Discount       string        `json:"discount"`
	Shipping       string        `json:"shipping"`
	Total          string        `json:"total"`
	TotalCents     int64         `json:"totalCents"`
	ToFreeShipping string        `json:"toFreeShipping,omitempty"`
}

func toViewDTO(v application.View) viewDTO {
	dto := viewDTO{
		Items:      make([]lineItemDTO, 0, len(v.Cart.Items)),
		Subtotal:   money.Format(money.Cents(v.Totals.SubtotalCents)),
		Discount:   money.Format(money.Cents(v.Totals.DiscountCents)),
		Shipping:   money.Format(money.Cents(v.Totals.ShippingCents)),
		Total:      money.Format(money.Cents(v.Totals.TotalCents)),
		TotalCents: v.Totals.TotalCents,
	}
	if v.Cart.Coupon != nil {
		dto.CouponCode = v.Cart.Coupon.Code
	}
	if v.ToFreeShipping > 0 {
		dto.ToFreeShipping = money.Format(money.Cents(v.ToFreeShipping))
	}
	for _, li := range v.Cart.Items {
		dto.Items = append(dto.Items, lineItemDTO{
			ProductID:    li.ProductID,
			Name:         li.Name,
			Image:        li.Image,
			UnitPrice:    money.Format(money.Cents(li.UnitPrice)),
			Quantity:     li.Quantity,
			MaxStock:     li.MaxStock,
			LineTotal:    money.Format(money.Cents(li.UnitPrice * int64(li.Quantity))),
			ExceedsStock: li.ExceedsStock(),
		})
	}
	return dto
}

func (h *Handler) respond(w http.ResponseWriter, v application.View, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toViewDTO(v))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		status, msg = http.StatusConflict, "Prodotto esaurito"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Prodotto non presente nel carrello"
	case errors.Is(err, domain.ErrQuantity):
		status, msg = http.StatusBadRequest, "Quantità non valida"
	case errors.Is(err, domain.ErrCouponActive):
		status, msg = http.StatusConflict, "Un codice sconto è già applicato"
	case errors.Is(err, coupon.ErrInvalidCode):
		status, msg = http.StatusUnprocessableEntity, "Codice sconto non valido"
	case errors.Is(err, coupon.ErrExpired):
		status, msg = http.StatusUnprocessableEntity, "Codice sconto scaduto"
	case errors.Is(err, coupon.ErrMinimumNotMet):
		status, msg = http.StatusUnprocessableEntity, "Importo minimo non raggiunto per questo codice"
	default:
		h.log.Error("cart operation failed", "err", err)
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	v, err := h.service.Get(ctx, session(w, r))
	h.respond(w, v, err)
}

type addReq struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddToCart")
	defer span.End()

	var req addReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	v, err := h.service.Add(ctx, session(w, r), req.ProductID, req.Quantity)
	h.respond(w, v, err)
}

type updateReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCartItem")
	defer span.End()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	v, err := h.service.UpdateQuantity(ctx, session(w, r), productID, req.Quantity)
	h.respond(w, v, err)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	v, err := h.service.Remove(ctx, session(w, r), productID)
	h.respond(w, v, err)
}

type couponReq struct {
	Code string `json:"code"`
}

func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ApplyCoupon")
	defer span.End()

	var req couponReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	v, err := h.service.ApplyCoupon(ctx, session(w, r), req.Code, time.Now())
	h.respond(w, v, err)
}

func (h *Handler) removeCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCoupon")
	defer span.End()

	v, err := h.service.RemoveCoupon(ctx, session(w, r))
	h.respond(w, v, err)
}
