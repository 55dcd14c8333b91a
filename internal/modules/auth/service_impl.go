package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Options configures the auth service.
type Options struct {
	BotToken          string
	JWTSecret         string
	AdminChatID       int64
	AdminPasswordHash string
	InitDataMaxAge    time.Duration
}

type service struct {
	opts   Options
	jwtKey []byte
	now    func() time.Time
}

// NewService creates a new auth service.
func NewService(opts Options) Service {
	return &service{opts: opts, jwtKey: []byte(opts.JWTSecret), now: time.Now}
}

func (s *service) LoginTelegram(ctx context.Context, initData string) (*LoginResult, error) {
	user, err := verifyInitData(initData, s.opts.BotToken, s.opts.InitDataMaxAge, s.now())
	if err != nil {
		return nil, err
	}
	admin := s.opts.AdminChatID != 0 && user.ID == s.opts.AdminChatID

	token, err := s.issue(&Claims{User: user, Admin: admin})
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User:  user,
		Admin: admin,
		Lang:  i18n.ResolveLanguage("", user.LanguageCode),
	}, nil
}

func (s *service) LoginPassword(ctx context.Context, password string) (*LoginResult, error) {
	if s.opts.AdminPasswordHash == "" {
		return nil, ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.opts.AdminPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	token, err := s.issue(&Claims{Admin: true})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: true, Lang: i18n.Default}, nil
}

func (s *service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) issue(claims *Claims) (string, error) {
	now := s.now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(tokenTTL).Unix()
	if claims.User != nil {
		claims.Subject = fmt.Sprint(claims.User.ID)
	} else {
		claims.Subject = "operator"
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}
