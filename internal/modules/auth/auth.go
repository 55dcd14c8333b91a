package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidInitData = errors.New("invalid telegram init data")
	ErrExpiredInitData = errors.New("telegram init data expired")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrInvalidPassword = errors.New("invalid credentials")
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// LoginTelegram verifies mini-app initData and issues a session token for its user.
	LoginTelegram(ctx context.Context, initData string) (*LoginResult, error)
	// LoginPassword issues an operator token when password matches the configured hash.
	LoginPassword(ctx context.Context, password string) (*LoginResult, error)
	// ParseToken validates a token issued by this service.
	ParseToken(token string) (*Claims, error)
}
