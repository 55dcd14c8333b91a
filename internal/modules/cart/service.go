package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgemunganga/tg-shop/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

var ErrInvalidItem = errors.New("invalid cart item")

// MaxLineQuantity bounds the units of one product in a cart.
const MaxLineQuantity = 1000

// ItemRequest is what a client sends for one cart line.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Quote is a priced cart.
type Quote struct {
	Lines    []Line          `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	Quantity int             `json:"quantity"`
}

// ProductSource is the slice of the catalog the cart needs.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// Service prices carts against the live catalog.
type Service interface {
	// Build assembles a cart from client items using current catalog prices.
	Build(ctx context.Context, items []ItemRequest) (*Cart, error)
	Quote(ctx context.Context, items []ItemRequest) (*Quote, error)
}

type service struct{ products ProductSource }

func NewService(products ProductSource) Service { return &service{products: products} }

func (s *service) Build(ctx context.Context, items []ItemRequest) (*Cart, error) {
	c := New()
	for _, it := range items {
		if it.Quantity <= 0 || it.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: quantity must be between 1 and %d for product %s",
				ErrInvalidItem, MaxLineQuantity, it.ProductID)
		}
		p, err := s.products.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", ErrInvalidItem, it.ProductID)
			}
			return nil, err
		}
		c.Add(p)
		c.UpdateQuantity(p.ID, it.Quantity-1)
		if q := c.lines[c.find(p.ID)].Quantity; q > MaxLineQuantity {
			return nil, fmt.Errorf("%w: %d units of product %s exceed %d",
				ErrInvalidItem, q, it.ProductID, MaxLineQuantity)
		}
	}
	return c, nil
}

func (s *service) Quote(ctx context.Context, items []ItemRequest) (*Quote, error) {
	c, err := s.Build(ctx, items)
	if err != nil {
		return nil, err
	}
	return &Quote{Lines: c.Lines(), Total: c.Total(), Quantity: c.Quantity()}, nil
}
