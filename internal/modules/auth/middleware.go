package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
)

const (
	// LanguageCookie keeps the language the user picked between sessions.
	LanguageCookie = "app_language"
	// LanguageHeader lets the mini-app send the preference it stored client-side.
	LanguageHeader = "X-App-Language"
)

type ctxKey struct{}

// FromContext returns the request session; anonymous in the default language if none.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return anonymous()
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Authenticate attaches a Session to every request. A missing token yields an anonymous
// session; a malformed or expired one is rejected with 401.
func Authenticate(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := anonymous()

			if raw := bearerToken(r); raw != "" {
				claims, err := svc.ParseToken(raw)
				if err != nil {
					respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
					return
				}
				sess.User = claims.User
				sess.Admin = claims.Admin
			}

			reported := ""
			if sess.User != nil {
				reported = sess.User.LanguageCode
			}
			sess.Lang = i18n.ResolveLanguage(storedLanguage(r), reported)

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireUser rejects requests without an identified Telegram user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()).User == nil {
			respond(w, http.StatusUnauthorized, map[string]string{"error": "telegram login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests that are not from the shop operator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		if !sess.Admin {
			code := http.StatusForbidden
			if sess.User == nil {
				code = http.StatusUnauthorized
			}
			respond(w, code, map[string]string{"error": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func storedLanguage(r *http.Request) string {
	if v := r.Header.Get(LanguageHeader); v != "" {
		return v
	}
	if c, err := r.Cookie(LanguageCookie); err == nil {
		return c.Value
	}
	return ""
}
