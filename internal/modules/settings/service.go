package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Service defines settings business logic.
type Service interface {
	// Get returns saved settings, or Defaults when none were saved yet.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s Settings) (*Settings, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service { return &service{repo: repo, now: time.Now} }

func (s *service) Get(ctx context.Context) (*Settings, error) {
	st, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotConfigured) {
		return Defaults(), nil
	}
	return st, err
}

func (s *service) Save(ctx context.Context, in Settings) (*Settings, error) {
	in.ShopName = strings.TrimSpace(in.ShopName)
	in.ShopPhone = strings.TrimSpace(in.ShopPhone)
	in.PaymentPhone = strings.TrimSpace(in.PaymentPhone)
	in.PaymentLink = strings.TrimSpace(in.PaymentLink)
	if in.ShopName == "" {
		in.ShopName = DefaultShopName
	}
	if in.PaymentEnabled && in.PaymentPhone == "" && in.PaymentLink == "" {
		return nil, fmt.Errorf("%w: payment phone or link is required when payment is enabled", ErrInvalidSettings)
	}
	in.UpdatedAt = s.now().UTC()
	if err := s.repo.Upsert(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}
