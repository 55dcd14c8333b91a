package order

import (
	"strings"
	"testing"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *Order {
	return &Order{
		ID:            uuid.MustParse("0190d1a4-5b7c-7def-8abc-1234567a9f3e"),
		CustomerName:  "Айгерим <VIP>",
		CustomerPhone: "+7 701 111 22 33",
		Comment:       "Без орехов & без сахара",
		Customer:      &CustomerRef{TelegramUserID: 42, Username: "aigerim", FirstName: "Айгерим"},
		Items: []LineItem{
			{ProductID: uuid.New(), Name: "Медовик", Price: decimal.NewFromInt(2500), Quantity: 2},
			{ProductID: uuid.New(), Name: "Эклер", Price: decimal.NewFromInt(1200), Quantity: 1},
		},
		Total:     decimal.NewFromInt(6200),
		Status:    StatusNew,
		CreatedAt: time.Date(2024, 3, 8, 9, 30, 15, 0, time.UTC),
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "7a9f3e", sampleOrder().ShortID())
}

func TestFormatter_StatusChanged(t *testing.T) {
	f := NewFormatter(time.UTC)
	o := sampleOrder()
	st := &settings.Settings{ShopPhone: "+7 700 000 00 00"}

	for _, status := range []Status{StatusProcessing, StatusCompleted, StatusCancelled} {
		text, ok := f.StatusChanged(o, status, st)
		require.True(t, ok, status)
		assert.Contains(t, text, "#7a9f3e")
		assert.Contains(t, text, "Тапсырыс", "both languages in one message")
		assert.Contains(t, text, "Заказ")
	}

	text, _ := f.StatusChanged(o, StatusCancelled, st)
	assert.Equal(t, 2, strings.Count(text, "+7 700 000 00 00"))

	text, _ = f.StatusChanged(o, StatusCancelled, &settings.Settings{})
	assert.NotContains(t, text, "свяжитесь")

	_, ok := f.StatusChanged(o, StatusNew, st)
	assert.False(t, ok)
}

func TestFormatter_NewOrder(t *testing.T) {
	almaty := time.FixedZone("ALMT", 5*3600)
	text := NewFormatter(almaty).NewOrder(sampleOrder())

	assert.Contains(t, text, "#7a9f3e")
	assert.Contains(t, text, "08.03.2024, 14:30:15", "timestamp in shop time zone")
	assert.Contains(t, text, "Айгерим &lt;VIP&gt;")
	assert.Contains(t, text, "+7 701 111 22 33")
	assert.Contains(t, text, "@aigerim")
	assert.Contains(t, text, "ID: 42")
	assert.Contains(t, text, "Без орехов &amp; без сахара")
	assert.Contains(t, text, "• Медовик x2 = 5000 ₸")
	assert.Contains(t, text, "• Эклер x1 = 1200 ₸")
	assert.Contains(t, text, "6200 ₸</b>")
}

func TestFormatter_NewOrderAnonymous(t *testing.T) {
	o := sampleOrder()
	o.Customer = nil
	o.Comment = ""
	text := NewFormatter(nil).NewOrder(o)

	assert.NotContains(t, text, "Telegram")
	assert.NotContains(t, text, "ID:")
	assert.NotContains(t, text, "Комментарий")
}

func TestFormatter_PaymentInstructions(t *testing.T) {
	f := NewFormatter(time.UTC)
	o := sampleOrder()

	_, ok := f.PaymentInstructions(o, &settings.Settings{PaymentPhone: "7001234567"})
	assert.False(t, ok, "disabled payments render nothing")

	text, ok := f.PaymentInstructions(o, &settings.Settings{
		PaymentEnabled: true,
		PaymentPhone:   "+7 700 123 45 67",
		PaymentLink:    "https://pay.example.kz/tort",
	})
	require.True(t, ok)
	assert.Contains(t, text, "#7a9f3e")
	assert.Contains(t, text, "<b>6200 ₸</b>")
	assert.Contains(t, text, "+7 700 123 45 67")
	assert.Contains(t, text, "https://pay.example.kz/tort")
	assert.Contains(t, text, "скриншот")
}
