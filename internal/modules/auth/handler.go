package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"github.com/go-chi/chi/v5"
)

// Handler exposes login and session endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/telegram", h.loginTelegram) // POST /api/v1/auth/telegram
		r.Post("/login", h.loginPassword)    // POST /api/v1/auth/login
	})
	r.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", h.getSession)          // GET /api/v1/session
		r.Put("/language", h.setLanguage) // PUT /api/v1/session/language
	})
}

func (h *Handler) loginTelegram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InitData string `json:"init_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.service.LoginTelegram(r.Context(), req.InitData)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidInitData) || errors.Is(err, ErrExpiredInitData) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	// A stored preference still wins over the Telegram client language.
	res.Lang = i18n.ResolveLanguage(storedLanguage(r), res.User.LanguageCode)
	respond(w, http.StatusOK, res)
}

func (h *Handler) loginPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.service.LoginPassword(r.Context(), req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidPassword) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess := FromContext(r.Context())
	respond(w, http.StatusOK, map[string]interface{}{
		"user":   sess.User,
		"admin":  sess.Admin,
		"lang":   sess.Lang,
		"labels": i18n.Labels(sess.Lang),
	})
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lang string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	lang, ok := i18n.Parse(req.Lang)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "unsupported language: " + req.Lang})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookie,
		Value:    string(lang),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond(w, http.StatusOK, map[string]interface{}{"lang": lang, "labels": i18n.Labels(lang)})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
