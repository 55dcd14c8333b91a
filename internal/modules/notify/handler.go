package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler is the HTTP relay in front of the messaging provider.
type Handler struct {
	sender Sender
	log    *slog.Logger
}

func NewHandler(sender Sender, log *slog.Logger) *Handler {
	return &Handler{sender: sender, log: log}
}

// RegisterRoutes mounts POST /api/notify behind the given middlewares. Wrong methods
// are answered with 405 before any of them run.
func (h *Handler) RegisterRoutes(r chi.Router, mw ...func(http.Handler) http.Handler) {
	chain := append([]func(http.Handler) http.Handler{postOnly}, mw...)
	r.With(chain...).HandleFunc("/api/notify", h.relay)
}

func postOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			respond(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RelayRequest is the relay payload.
type RelayRequest struct {
	ChatID    ChatID    `json:"chatId"`
	Message   string    `json:"message"`
	ParseMode ParseMode `json:"parseMode"`
}

func (h *Handler) relay(w http.ResponseWriter, r *http.Request) {
	req := RelayRequest{ParseMode: ParseModeHTML}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.ChatID == "" || strings.TrimSpace(req.Message) == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Missing chatId or message"})
		return
	}

	if err := h.sender.Send(r.Context(), req.ChatID, req.Message, req.ParseMode); err != nil {
		h.log.Error("relay notification failed", "chat_id", req.ChatID, "error", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Failed to send notification"})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
