package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georgemunganga/tg-shop/internal/modules/auth"
	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"github.com/georgemunganga/tg-shop/pkg/idempotency"
	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.submit) // POST /api/v1/orders
		r.Get("/{id}", h.get) // GET  /api/v1/orders/{id}

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/mine", h.listMine)         // GET  /api/v1/orders/mine
			r.Post("/{id}/reorder", h.reorder) // POST /api/v1/orders/{id}/reorder
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", h.list)                      // GET   /api/v1/orders?status=new
			r.Patch("/{id}/status", h.updateStatus) // PATCH /api/v1/orders/{id}/status
		})
	})
}

// orderView adds the status label in the caller's language.
type orderView struct {
	*Order
	StatusLabel string `json:"status_label"`
}

func view(o *Order, lang i18n.Lang) orderView {
	return orderView{Order: o, StatusLabel: i18n.StatusLabel(lang, string(o.Status))}
}

func views(orders []*Order, lang i18n.Lang) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, view(o, lang))
	}
	return out
}

func customerRef(u *auth.TelegramUser) *CustomerRef {
	if u == nil {
		return nil
	}
	return &CustomerRef{
		TelegramUserID: u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.IdempotencyKey = idempotency.Key(r)
	if req.CustomerName == "" && sess.User != nil {
		req.CustomerName = sess.User.FullName()
	}

	res, err := h.service.Submit(r.Context(), req, customerRef(sess.User))
	if err != nil {
		respondErr(w, err)
		return
	}

	message := i18n.Label(sess.Lang, "orderSuccess")
	if res.PaymentSent {
		message += "\n\n💳 " + i18n.Label(sess.Lang, "paymentInfo")
	}
	code := http.StatusCreated
	if res.Replayed {
		code = http.StatusOK
	}
	respond(w, code, map[string]interface{}{
		"order":        view(res.Order, sess.Lang),
		"payment_sent": res.PaymentSent,
		"message":      message,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	o, ok := h.owned(w, r, sess)
	if !ok {
		return
	}
	respond(w, http.StatusOK, view(o, sess.Lang))
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	orders, err := h.service.ListByCustomer(r.Context(), sess.User.ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, views(orders, sess.Lang))
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	o, ok := h.owned(w, r, sess)
	if !ok {
		return
	}
	q, err := h.service.Reorder(r.Context(), o.ID.String())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	orders, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, views(orders, sess.Lang))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"order":    view(res.Order, auth.FromContext(r.Context()).Lang),
		"notified": res.Notified,
	})
}

// owned loads the order in the URL and checks the caller may see it. Other
// customers' orders are reported as missing.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request, sess *auth.Session) (*Order, bool) {
	if sess.User == nil && !sess.Admin {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "telegram login required"})
		return nil, false
	}
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return nil, false
	}
	if !sess.Admin && (o.Customer == nil || o.Customer.TelegramUserID != sess.User.ID) {
		respondErr(w, ErrNotFound)
		return nil, false
	}
	return o, true
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrDuplicateSubmission):
		code = http.StatusConflict
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
