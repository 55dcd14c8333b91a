package auth

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
)

// TelegramUser is the identity the chat platform reports for the mini-app user.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// FullName joins first and last name the way the checkout form is prefilled.
func (u *TelegramUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Claims are carried in the session JWT.
type Claims struct {
	User  *TelegramUser `json:"user,omitempty"`
	Admin bool          `json:"admin"`
	jwt.StandardClaims
}

// LoginResult is returned by both login flows.
type LoginResult struct {
	Token string        `json:"token"`
	User  *TelegramUser `json:"user,omitempty"`
	Admin bool          `json:"admin"`
	Lang  i18n.Lang     `json:"lang"`
}

// Session is the per-request view of who is calling and in which language.
type Session struct {
	User  *TelegramUser `json:"user,omitempty"`
	Admin bool          `json:"admin"`
	Lang  i18n.Lang     `json:"lang"`
}

func anonymous() *Session { return &Session{Lang: i18n.Default} }
