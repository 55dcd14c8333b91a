package database

import (
	"context"
	"fmt"
)

// schema is written in the subset of SQL shared by PostgreSQL and SQLite.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		name_kk        TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		description_kk TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL,
		category_kk    TEXT NOT NULL DEFAULT '',
		price          NUMERIC(12,2) NOT NULL CHECK (price > 0),
		image          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMP NOT NULL,
		updated_at     TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id                  TEXT PRIMARY KEY,
		customer_name       TEXT NOT NULL,
		customer_phone      TEXT NOT NULL,
		customer_comment    TEXT NOT NULL DEFAULT '',
		telegram_user_id    BIGINT,
		telegram_username   TEXT,
		telegram_first_name TEXT,
		telegram_last_name  TEXT,
		items               TEXT NOT NULL,
		total               NUMERIC(12,2) NOT NULL,
		status              TEXT NOT NULL DEFAULT 'new',
		idempotency_key     TEXT,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_telegram_user ON orders(telegram_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_idempotency_key ON orders(idempotency_key)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id              INTEGER PRIMARY KEY CHECK (id = 1),
		shop_name       TEXT NOT NULL DEFAULT '',
		shop_phone      TEXT NOT NULL DEFAULT '',
		shop_logo       TEXT NOT NULL DEFAULT '',
		payment_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		payment_phone   TEXT NOT NULL DEFAULT '',
		payment_link    TEXT NOT NULL DEFAULT '',
		updated_at      TIMESTAMP NOT NULL
	)`,
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range schema {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
