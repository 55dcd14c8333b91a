package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps *sql.DB with the dialect so repositories can write one set of queries.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to driver ("postgres" or "sqlite") and pings it.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	d := Dialect(strings.ToLower(driver))
	switch d {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	sqlDB, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		// One connection keeps :memory: databases alive and avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return &DB{DB: sqlDB, Dialect: d}, nil
}

// Rebind rewrites '?' placeholders into the dialect's bind syntax.
func (db *DB) Rebind(query string) string {
	if db.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Rebind(query), args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Rebind(query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Rebind(query), args...)
}
