package settings

import "time"

// DefaultShopName is shown until the operator saves settings.
const DefaultShopName = "Наша Кондитерская"

// Settings is the single shop configuration row.
type Settings struct {
	ShopName       string    `json:"shop_name"`
	ShopPhone      string    `json:"shop_phone"`
	ShopLogo       string    `json:"shop_logo"`
	PaymentEnabled bool      `json:"payment_enabled"`
	PaymentPhone   string    `json:"payment_phone"`
	PaymentLink    string    `json:"payment_link"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Defaults is what callers see before anything was saved.
func Defaults() *Settings {
	return &Settings{ShopName: DefaultShopName}
}
