package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// Categories lists distinct categories in catalog order, labelled for lang.
	Categories(ctx context.Context, lang i18n.Lang) ([]Category, error)
}

// ProductRequest holds the admin form for creating or editing a product.
type ProductRequest struct {
	Name          string          `json:"name"`
	NameKK        string          `json:"name_kk"`
	Description   string          `json:"description"`
	DescriptionKK string          `json:"description_kk"`
	Category      string          `json:"category"`
	CategoryKK    string          `json:"category_kk"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
}

func (req *ProductRequest) normalize() error {
	req.Name = strings.TrimSpace(req.Name)
	req.NameKK = strings.TrimSpace(req.NameKK)
	req.Category = strings.TrimSpace(req.Category)
	req.CategoryKK = strings.TrimSpace(req.CategoryKK)
	req.Image = strings.TrimSpace(req.Image)

	switch {
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case req.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case !req.Price.IsPositive():
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidProduct)
	}
	if req.Image == "" {
		req.Image = DefaultImage
	}
	return nil
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service { return &service{repo: repo, now: time.Now} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p := &Product{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	apply(p, req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, req)
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Categories(ctx context.Context, lang i18n.Lang) ([]Category, error) {
	products, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []Category
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, Category{Key: p.Category, Label: i18n.DisplayText(p, i18n.FieldCategory, lang)})
	}
	return out, nil
}

func apply(p *Product, req ProductRequest) {
	p.Name = req.Name
	p.NameKK = req.NameKK
	p.Description = req.Description
	p.DescriptionKK = req.DescriptionKK
	p.Category = req.Category
	p.CategoryKK = req.CategoryKK
	p.Price = req.Price
	p.Image = req.Image
}
