package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/georgemunganga/tg-shop/internal/database"
	"github.com/georgemunganga/tg-shop/internal/modules/cart"
	"github.com/georgemunganga/tg-shop/internal/modules/catalog"
	"github.com/georgemunganga/tg-shop/internal/modules/notify"
	"github.com/georgemunganga/tg-shop/internal/modules/settings"
	"github.com/georgemunganga/tg-shop/pkg/idempotency"
	"github.com/georgemunganga/tg-shop/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const operatorChat notify.ChatID = "100500"

type sentMessage struct {
	Chat notify.ChatID
	Text string
	Mode notify.ParseMode
}

// recordingSender keeps every message and fails when fail is set.
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (s *recordingSender) Send(ctx context.Context, chat notify.ChatID, text string, mode notify.ParseMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{Chat: chat, Text: text, Mode: mode})
	if s.fail {
		return notify.ErrDelivery
	}
	return nil
}

func (s *recordingSender) to(chat notify.ChatID) []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sentMessage
	for _, m := range s.sent {
		if m.Chat == chat {
			out = append(out, m)
		}
	}
	return out
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type staticSettings struct{ s *settings.Settings }

func (f staticSettings) Get(context.Context) (*settings.Settings, error) { return f.s, nil }

// failingRepo wraps a real repository and fails writes on demand. afterWrite runs
// after every successful write.
type failingRepo struct {
	Repository
	failCreate, failUpdate bool
	afterWrite             func()
}

func (r *failingRepo) wrote() {
	if r.afterWrite != nil {
		r.afterWrite()
	}
}

var errDisk = errors.New("disk full")

func (r *failingRepo) Create(ctx context.Context, o *Order) error {
	if r.failCreate {
		return errDisk
	}
	if err := r.Repository.Create(ctx, o); err != nil {
		return err
	}
	r.wrote()
	return nil
}

func (r *failingRepo) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	if r.failUpdate {
		return errDisk
	}
	if err := r.Repository.UpdateStatus(ctx, id, status, at); err != nil {
		return err
	}
	r.wrote()
	return nil
}

type fixture struct {
	svc      Service
	repo     *failingRepo
	catalog  catalog.Service
	sender   *recordingSender
	settings *settings.Settings
	honey    *catalog.Product
	eclair   *catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	f := &fixture{
		repo:     &failingRepo{Repository: NewPostgresRepository(db)},
		catalog:  catalog.NewService(catalog.NewPostgresRepository(db)),
		sender:   &recordingSender{},
		settings: &settings.Settings{ShopName: "Tort.kz", ShopPhone: "+7 700 000 00 00"},
	}
	f.honey = f.product(t, "Медовик", 2500)
	f.eclair = f.product(t, "Эклер", 1200)

	loc, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		loc = time.FixedZone("ALMT", 5*3600)
	}
	f.svc = NewService(Deps{
		Repo:         f.repo,
		Carts:        cart.NewService(f.catalog),
		Products:     f.catalog,
		Settings:     staticSettings{f.settings},
		Sender:       f.sender,
		Idempotency:  idempotency.NewMemoryStore(64, time.Hour),
		Formatter:    NewFormatter(loc),
		OperatorChat: operatorChat,
		Log:          logging.Discard(),
	})
	return f
}

func (f *fixture) product(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), catalog.ProductRequest{
		Name:     name,
		Category: "Торты",
		Price:    decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) request() SubmitRequest {
	return SubmitRequest{
		CustomerName:  "Айгерим",
		CustomerPhone: "+7 701 111 22 33",
		Items: []cart.ItemRequest{
			{ProductID: f.honey.ID.String(), Quantity: 2},
			{ProductID: f.eclair.ID.String(), Quantity: 1},
		},
	}
}

var customer = &CustomerRef{TelegramUserID: 42, Username: "aigerim", FirstName: "Айгерим"}

func catalogRequest(name string, price int64) catalog.ProductRequest {
	return catalog.ProductRequest{Name: name, Category: "Торты", Price: decimal.NewFromInt(price)}
}
