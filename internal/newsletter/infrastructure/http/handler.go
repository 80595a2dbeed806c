package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boolshop/storefront/internal/newsletter/application"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/subscribe", h.subscribe)
}

type subscribeReq struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	err := h.service.Subscribe(r.Context(), req.Email)
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, application.ErrInvalidEmail):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Indirizzo email non valido"})
	case errors.Is(err, application.ErrAlreadySubscribed):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Email già iscritta"})
	case err != nil:
		h.log.Error("subscribe failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	default:
		h.log.Info("newsletter subscription", "email", req.Email)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Iscrizione completata"})
	}
}
