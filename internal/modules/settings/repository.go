package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/tg-shop/internal/database"
)

var ErrNotConfigured = errors.New("settings not configured")

// Repository reads and writes the settings row.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

type postgresRepo struct{ db *database.DB }

func NewPostgresRepository(db *database.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT shop_name, shop_phone, shop_logo, payment_enabled, payment_phone, payment_link, updated_at
		FROM settings WHERE id=1`).Scan(
		&s.ShopName, &s.ShopPhone, &s.ShopLogo, &s.PaymentEnabled,
		&s.PaymentPhone, &s.PaymentLink, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, shop_name, shop_phone, shop_logo, payment_enabled, payment_phone, payment_link, updated_at)
		VALUES (1,?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
		  shop_name=excluded.shop_name, shop_phone=excluded.shop_phone, shop_logo=excluded.shop_logo,
		  payment_enabled=excluded.payment_enabled, payment_phone=excluded.payment_phone,
		  payment_link=excluded.payment_link, updated_at=excluded.updated_at`,
		s.ShopName, s.ShopPhone, s.ShopLogo, s.PaymentEnabled, s.PaymentPhone, s.PaymentLink, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
