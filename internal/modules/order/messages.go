package order

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/settings"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "02.01.2006, 15:04:05"
	currency        = "₸"
)

// Formatter renders the Telegram HTML messages sent around an order. Every message
// carries both languages, Russian first. Formatter methods do no I/O.
type Formatter struct {
	Location *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{Location: loc}
}

func money(d decimal.Decimal) string { return d.String() + " " + currency }

func esc(s string) string { return html.EscapeString(s) }

// StatusChanged renders the customer notice for a transition into status. It returns
// false for statuses that have no customer notice.
func (f *Formatter) StatusChanged(o *Order, status Status, st *settings.Settings) (string, bool) {
	var b strings.Builder
	switch status {
	case StatusProcessing:
		b.WriteString("⏳ <b>Ваш заказ принят в работу! / Тапсырысыңыз орындалуда!</b>\n\n")
		fmt.Fprintf(&b, "📋 Заказ / Тапсырыс #%s\n", o.ShortID())
		b.WriteString("Мы начали готовить ваш заказ. Скоро он будет готов! 👨‍🍳\n")
		b.WriteString("Тапсырысыңызды дайындауды бастадық. Жақында дайын болады!")
	case StatusCompleted:
		b.WriteString("🎉 <b>Ваш заказ готов! / Тапсырысыңыз дайын!</b>\n\n")
		fmt.Fprintf(&b, "📋 Заказ / Тапсырыс #%s\n", o.ShortID())
		b.WriteString("Можете забирать или ожидайте курьера! 🚗\n")
		b.WriteString("Алып кетуге болады немесе курьерді күтіңіз!\n\n")
		b.WriteString("Спасибо за заказ! / Тапсырысыңызға рахмет! ❤️")
	case StatusCancelled:
		b.WriteString("❌ <b>Ваш заказ отменён / Тапсырысыңыз жойылды</b>\n\n")
		fmt.Fprintf(&b, "📋 Заказ / Тапсырыс #%s\n", o.ShortID())
		b.WriteString("К сожалению, мы не можем выполнить ваш заказ. Приносим извинения.\n")
		b.WriteString("Өкінішке орай, тапсырысыңызды орындай алмаймыз. Кешірім сұраймыз.")
		if st != nil && st.ShopPhone != "" {
			phone := esc(st.ShopPhone)
			b.WriteString("\n\n")
			fmt.Fprintf(&b, "Если у вас есть вопросы, свяжитесь с нами: %s\n", phone)
			fmt.Fprintf(&b, "Сұрақтарыңыз болса, бізбен хабарласыңыз: %s", phone)
		}
	default:
		return "", false
	}
	return b.String(), true
}

// NewOrder renders the operator's summary of a freshly placed order.
func (f *Formatter) NewOrder(o *Order) string {
	var b strings.Builder
	b.WriteString("🆕 <b>НОВЫЙ ЗАКАЗ! / ЖАҢА ТАПСЫРЫС!</b>\n\n")
	fmt.Fprintf(&b, "📋 Заказ / Тапсырыс #%s\n", o.ShortID())
	fmt.Fprintf(&b, "📅 %s\n\n", o.CreatedAt.In(f.Location).Format(timestampLayout))

	b.WriteString("<b>👤 Клиент / Клиент:</b>\n")
	fmt.Fprintf(&b, "Имя / Аты: %s\n", esc(o.CustomerName))
	fmt.Fprintf(&b, "Телефон: %s\n", esc(o.CustomerPhone))
	if c := o.Customer; c != nil {
		if c.Username != "" {
			fmt.Fprintf(&b, "Telegram: @%s\n", esc(c.Username))
		}
		if name := strings.TrimSpace(c.FirstName + " " + c.LastName); name != "" {
			fmt.Fprintf(&b, "Telegram имя: %s\n", esc(name))
		}
		fmt.Fprintf(&b, "ID: %s\n", strconv.FormatInt(c.TelegramUserID, 10))
	}
	if o.Comment != "" {
		fmt.Fprintf(&b, "\nКомментарий / Пікір: %s\n", esc(o.Comment))
	}

	b.WriteString("\n<b>🛒 Товары / Тауарлар:</b>\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", esc(it.Name), it.Quantity, money(it.Subtotal()))
	}
	fmt.Fprintf(&b, "\n<b>💰 Итого / Барлығы: %s</b>", money(o.Total))
	return b.String()
}

// PaymentInstructions renders the payment details sent to the customer. It returns
// false when payments are disabled.
func (f *Formatter) PaymentInstructions(o *Order, st *settings.Settings) (string, bool) {
	if st == nil || !st.PaymentEnabled {
		return "", false
	}
	var b strings.Builder
	b.WriteString("💳 <b>Реквизиты для оплаты / Төлем деректемелері</b>\n\n")
	fmt.Fprintf(&b, "📋 Заказ / Тапсырыс #%s\n", o.ShortID())
	fmt.Fprintf(&b, "💰 Сумма / Сомасы: <b>%s</b>\n\n", money(o.Total))
	if st.PaymentPhone != "" {
		fmt.Fprintf(&b, "📱 <b>Номер для оплаты / Төлем нөмірі:</b>\n%s\n\n", esc(st.PaymentPhone))
	}
	if st.PaymentLink != "" {
		fmt.Fprintf(&b, "🔗 %s\n\n", esc(st.PaymentLink))
	}
	b.WriteString("После оплаты, пожалуйста, отправьте скриншот чека владельцу магазина.\n")
	b.WriteString("Төлегеннен кейін чектің скриншотын дүкен иесіне жіберіңіз.\n\n")
	b.WriteString("Спасибо за заказ! / Тапсырысыңызға рахмет! ❤️")
	return b.String(), true
}
