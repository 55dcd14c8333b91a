package order

import (
	"strings"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// CustomerRef identifies the Telegram user who placed an order. Orders placed outside
// Telegram have no CustomerRef and cannot be notified.
type CustomerRef struct {
	TelegramUserID int64  `json:"telegram_user_id"`
	Username       string `json:"telegram_username,omitempty"`
	FirstName      string `json:"telegram_first_name,omitempty"`
	LastName       string `json:"telegram_last_name,omitempty"`
}

// LineItem is a copy of the product taken when the order was placed.
type LineItem struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a placed customer order. After creation only Status and UpdatedAt change.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	Comment        string          `json:"customer_comment,omitempty"`
	Customer       *CustomerRef    `json:"customer,omitempty"`
	Items          []LineItem      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	IdempotencyKey string          `json:"-"`
	CreatedAt      time.Time       `json:"date"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ShortID is the tail of the id shown to humans.
func (o *Order) ShortID() string {
	s := strings.ReplaceAll(o.ID.String(), "-", "")
	return s[len(s)-6:]
}

// SubmitRequest is the checkout form plus the cart contents.
type SubmitRequest struct {
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  string             `json:"customer_phone"`
	Comment        string             `json:"customer_comment,omitempty"`
	Items          []cart.ItemRequest `json:"items"`
	IdempotencyKey string             `json:"-"`
}

// UpdateStatusRequest is the payload for moving an order along its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SubmitResult reports a placed order and the outcome of the payment-instructions message.
type SubmitResult struct {
	Order       *Order `json:"order"`
	PaymentSent bool   `json:"payment_sent"`
	Replayed    bool   `json:"replayed,omitempty"`
}

// TransitionResult reports a status change and whether the customer was told about it.
type TransitionResult struct {
	Order    *Order `json:"order"`
	Notified bool   `json:"notified"`
}
