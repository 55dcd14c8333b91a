package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/tg-shop/internal/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderColumns = `id,customer_name,customer_phone,customer_comment,
	telegram_user_id,telegram_username,telegram_first_name,telegram_last_name,
	items,total,status,idempotency_key,created_at,updated_at`

type postgresRepo struct{ db *database.DB }

func NewPostgresRepository(db *database.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	var (
		tgID                    sql.NullInt64
		tgUser, tgFirst, tgLast sql.NullString
		idemKey                 sql.NullString
	)
	if c := o.Customer; c != nil {
		tgID = sql.NullInt64{Int64: c.TelegramUserID, Valid: true}
		tgUser = nullString(c.Username)
		tgFirst = nullString(c.FirstName)
		tgLast = nullString(c.LastName)
	}
	idemKey = nullString(o.IdempotencyKey)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.CustomerName, o.CustomerPhone, o.Comment,
		tgID, tgUser, tgFirst, tgLast,
		string(items), o.Total, o.Status, idemKey, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if o.IdempotencyKey != "" && isDuplicateKey(err) {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=?`, uid)
}

func (r *postgresRepo) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE idempotency_key=?`, key)
}

func (r *postgresRepo) List(ctx context.Context, status Status) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	if status != "" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, telegramUserID int64) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE telegram_user_id=? ORDER BY created_at DESC`, telegramUserID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=?, updated_at=? WHERE id=?`, status, at, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) getOne(ctx context.Context, query string, args ...interface{}) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var (
		tgID                    sql.NullInt64
		tgUser, tgFirst, tgLast sql.NullString
		idemKey                 sql.NullString
		items                   string
	)
	err := scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.Comment,
		&tgID, &tgUser, &tgFirst, &tgLast,
		&items, &o.Total, &o.Status, &idemKey, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tgID.Valid {
		o.Customer = &CustomerRef{
			TelegramUserID: tgID.Int64,
			Username:       tgUser.String,
			FirstName:      tgFirst.String,
			LastName:       tgLast.String,
		}
	}
	o.IdempotencyKey = idemKey.String
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	return o, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isDuplicateKey recognises unique violations from both lib/pq and SQLite.
func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
