package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/tg-shop/internal/database"
	"github.com/google/uuid"
)

const productColumns = `id,name,name_kk,description,description_kk,category,category_kk,price,image,created_at,updated_at`

type postgresRepo struct{ db *database.DB }

func NewPostgresRepository(db *database.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.NameKK, p.Description, p.DescriptionKK,
		p.Category, p.CategoryKK, p.Price, p.Image, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.Name, &p.NameKK, &p.Description, &p.DescriptionKK,
		&p.Category, &p.CategoryKK, &p.Price, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id=?`, uid)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *postgresRepo) List(ctx context.Context, category string) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	if category != "" {
		query += ` AND category=?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=?, name_kk=?, description=?, description_kk=?, category=?, category_kk=?,
		    price=?, image=?, updated_at=?
		WHERE id=?`,
		p.Name, p.NameKK, p.Description, p.DescriptionKK, p.Category, p.CategoryKK,
		p.Price, p.Image, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return expectOne(res)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, uid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
