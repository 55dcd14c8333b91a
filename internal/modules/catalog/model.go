package catalog

import (
	"errors"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/i18n"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultImage is used when the operator saves a product without a picture.
const DefaultImage = "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product is a catalog item. Name, Description and Category are in the default language;
// the *KK fields hold optional Kazakh translations.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	NameKK        string          `json:"name_kk,omitempty"`
	Description   string          `json:"description,omitempty"`
	DescriptionKK string          `json:"description_kk,omitempty"`
	Category      string          `json:"category"`
	CategoryKK    string          `json:"category_kk,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Text implements i18n.Localized.
func (p *Product) Text(field i18n.Field) (string, string) {
	switch field {
	case i18n.FieldName:
		return p.Name, p.NameKK
	case i18n.FieldDescription:
		return p.Description, p.DescriptionKK
	case i18n.FieldCategory:
		return p.Category, p.CategoryKK
	}
	return "", ""
}

// ProductView is a product rendered for one language.
type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	CategoryKey string          `json:"category_key"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// View localizes p for lang.
func (p *Product) View(lang i18n.Lang) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        i18n.DisplayText(p, i18n.FieldName, lang),
		Description: i18n.DisplayText(p, i18n.FieldDescription, lang),
		Category:    i18n.DisplayText(p, i18n.FieldCategory, lang),
		CategoryKey: p.Category,
		Price:       p.Price,
		Image:       p.Image,
	}
}

// Category is a filter chip: Key is the default-language value used for filtering.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
