package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georgemunganga/tg-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// Handler exposes shop settings.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Get("/", h.getSettings)                                // GET /api/v1/settings
		r.With(auth.RequireUser).Get("/payment-qr", h.paymentQR) // GET /api/v1/settings/payment-qr
		r.With(auth.RequireAdmin).Put("/", h.saveSettings)
	})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	if sess := auth.FromContext(r.Context()); sess.User == nil && !sess.Admin {
		// Payment details are for identified customers, like the QR code and the bot message.
		s.PaymentPhone = ""
		s.PaymentLink = ""
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var req Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s, err := h.service.Save(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) paymentQR(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	if !s.PaymentEnabled || s.PaymentLink == "" {
		respond(w, http.StatusNotFound, map[string]string{"error": "payment link not configured"})
		return
	}
	png, err := qrcode.Encode(s.PaymentLink, qrcode.Medium, 256)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidSettings):
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
