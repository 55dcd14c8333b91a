package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/georgemunganga/tg-shop/internal/modules/cart"
	"github.com/georgemunganga/tg-shop/internal/modules/catalog"
	"github.com/georgemunganga/tg-shop/internal/modules/notify"
	"github.com/georgemunganga/tg-shop/internal/modules/settings"
	"github.com/georgemunganga/tg-shop/pkg/idempotency"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service defines order lifecycle business logic.
type Service interface {
	// Submit validates and persists a new order, then notifies the operator and, when
	// payments are enabled and the customer is identified, sends payment details.
	// Notification failures never fail the call.
	Submit(ctx context.Context, req SubmitRequest, customer *CustomerRef) (*SubmitResult, error)

	// Transition moves an order to status and notifies the customer if identified.
	Transition(ctx context.Context, id string, status Status) (*TransitionResult, error)

	// UpdateStatus parses the requested status and calls Transition.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*TransitionResult, error)

	Get(ctx context.Context, id string) (*Order, error)

	// List returns all orders, optionally filtered by status name.
	List(ctx context.Context, status string) ([]*Order, error)

	ListByCustomer(ctx context.Context, telegramUserID int64) ([]*Order, error)

	// Reorder prices a past order's lines against the current catalog. Products that
	// no longer exist are left out.
	Reorder(ctx context.Context, id string) (*cart.Quote, error)
}

// SettingsSource supplies the shop settings messages depend on.
type SettingsSource interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// Deps groups the collaborators of the order service.
type Deps struct {
	Repo     Repository
	Carts    cart.Service
	Products cart.ProductSource
	Settings SettingsSource
	Sender   notify.Sender
	// Idempotency is optional. Without it the unique index on the key still
	// rejects duplicates.
	Idempotency idempotency.Store
	Formatter   *Formatter
	// OperatorChat receives the new-order summary.
	OperatorChat notify.ChatID
	Log          *slog.Logger
}

type service struct {
	Deps
	locks *keyedMutex
	now   func() time.Time
}

func NewService(d Deps) Service {
	if d.Formatter == nil {
		d.Formatter = NewFormatter(time.UTC)
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return &service{Deps: d, locks: newKeyedMutex(), now: time.Now}
}

// ── submit ───────────────────────────────────────────────────────────────────

func (s *service) Submit(ctx context.Context, req SubmitRequest, customer *CustomerRef) (*SubmitResult, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Comment = strings.TrimSpace(req.Comment)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)

	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customer name and phone are required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	key := req.IdempotencyKey
	reserved := false
	if key != "" && s.Idempotency != nil {
		ok, err := s.Idempotency.Reserve(ctx, key)
		switch {
		case err != nil:
			s.Log.Warn("idempotency store unavailable", "error", err)
		case !ok:
			return s.replay(ctx, req, customer)
		default:
			reserved = true
		}
	}
	completed := false
	defer func() {
		if reserved && !completed {
			if err := s.Idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
				s.Log.Warn("release idempotency key", "error", err)
			}
		}
	}()

	c, err := s.Carts.Build(ctx, req.Items)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: load products: %w", ErrPersistence, err)
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	o := s.newOrder(req, customer, c)
	if err := s.Repo.Create(ctx, o); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			return s.replayFromStore(ctx, req, customer)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if reserved {
		if err := s.Idempotency.Complete(context.WithoutCancel(ctx), key, o.ID.String()); err != nil {
			s.Log.Warn("complete idempotency key", "order_id", o.ID, "error", err)
		}
		completed = true
	}
	s.Log.Info("order placed", "order_id", o.ID, "total", o.Total.String(), "items", len(o.Items))

	return &SubmitResult{Order: o, PaymentSent: s.announce(ctx, o)}, nil
}

func (s *service) newOrder(req SubmitRequest, customer *CustomerRef, c *cart.Cart) *Order {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	now := s.now().UTC()
	lines := c.Lines()
	items := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, LineItem{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}
	return &Order{
		ID:             id,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Comment:        req.Comment,
		Customer:       customer,
		Items:          items,
		Total:          c.Total(),
		Status:         StatusNew,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// replay answers a resubmitted idempotency key with the order it produced. Keys are
// global, so an order placed by someone else is never handed back.
func (s *service) replay(ctx context.Context, req SubmitRequest, caller *CustomerRef) (*SubmitResult, error) {
	v, err := s.Idempotency.Lookup(ctx, req.IdempotencyKey)
	switch {
	case err == nil && v == idempotency.Pending:
		return nil, ErrDuplicateSubmission
	case err == nil:
		o, err := s.Repo.GetByID(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return replayed(o, req, caller)
	default:
		return s.replayFromStore(ctx, req, caller)
	}
}

func (s *service) replayFromStore(ctx context.Context, req SubmitRequest, caller *CustomerRef) (*SubmitResult, error) {
	if req.IdempotencyKey == "" {
		return nil, ErrDuplicateSubmission
	}
	o, err := s.Repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrDuplicateSubmission
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return replayed(o, req, caller)
}

// replayed hands o back only to the submitter that created it: the same Telegram
// user, or no identity on either side, and the same phone.
func replayed(o *Order, req SubmitRequest, caller *CustomerRef) (*SubmitResult, error) {
	if !sameCustomer(o.Customer, caller) || o.CustomerPhone != req.CustomerPhone {
		return nil, ErrDuplicateSubmission
	}
	return &SubmitResult{Order: o, Replayed: true}, nil
}

func sameCustomer(a, b *CustomerRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.TelegramUserID == b.TelegramUserID
}

// announce sends the operator summary and the payment details concurrently. It
// reports whether payment details were delivered.
func (s *service) announce(ctx context.Context, o *Order) bool {
	ctx = context.WithoutCancel(ctx)
	st := s.settings(ctx)
	paymentSent := false

	var g errgroup.Group
	g.Go(func() error {
		if s.OperatorChat == "" {
			s.Log.Warn("operator chat not configured, new order not announced", "order_id", o.ID)
			return nil
		}
		if err := s.Sender.Send(ctx, s.OperatorChat, s.Formatter.NewOrder(o), notify.ParseModeHTML); err != nil {
			s.Log.Error("notify operator", "order_id", o.ID, "error", err)
		}
		return nil
	})
	if o.Customer != nil {
		if text, ok := s.Formatter.PaymentInstructions(o, st); ok {
			g.Go(func() error {
				chat := notify.UserChat(o.Customer.TelegramUserID)
				if err := s.Sender.Send(ctx, chat, text, notify.ParseModeHTML); err != nil {
					s.Log.Error("send payment details", "order_id", o.ID, "error", err)
					return nil
				}
				paymentSent = true
				return nil
			})
		}
	}
	_ = g.Wait()
	return paymentSent
}

// ── lifecycle ────────────────────────────────────────────────────────────────

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*TransitionResult, error) {
	st, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	return s.Transition(ctx, id, st)
}

func (s *service) Transition(ctx context.Context, id string, status Status) (*TransitionResult, error) {
	if _, ok := validTransitions[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(o.Status, status); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.Repo.UpdateStatus(ctx, o.ID.String(), status, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	from := o.Status
	o.Status, o.UpdatedAt = status, now
	s.Log.Info("order status changed", "order_id", o.ID, "from", from, "to", status)

	res := &TransitionResult{Order: o}
	if o.Customer == nil {
		return res, nil
	}
	// sent even if the client has gone
	ctx = context.WithoutCancel(ctx)
	text, ok := s.Formatter.StatusChanged(o, status, s.settings(ctx))
	if !ok {
		return res, nil
	}
	if err := s.Sender.Send(ctx, notify.UserChat(o.Customer.TelegramUserID), text, notify.ParseModeHTML); err != nil {
		s.Log.Error("notify customer", "order_id", o.ID, "status", status, "error", err)
		return res, nil
	}
	res.Notified = true
	return res, nil
}

// ── queries ──────────────────────────────────────────────────────────────────

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return o, nil
}

func (s *service) List(ctx context.Context, status string) ([]*Order, error) {
	var st Status
	if status != "" {
		var err error
		if st, err = ParseStatus(status); err != nil {
			return nil, err
		}
	}
	orders, err := s.Repo.List(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return orders, nil
}

func (s *service) ListByCustomer(ctx context.Context, telegramUserID int64) ([]*Order, error) {
	orders, err := s.Repo.ListByCustomer(ctx, telegramUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return orders, nil
}

func (s *service) Reorder(ctx context.Context, id string) (*cart.Quote, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := cart.New()
	for _, it := range o.Items {
		p, err := s.Products.GetProduct(ctx, it.ProductID.String())
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: load product %s: %w", ErrPersistence, it.ProductID, err)
		}
		c.Add(p)
		c.UpdateQuantity(p.ID, it.Quantity-1)
	}
	return &cart.Quote{Lines: c.Lines(), Total: c.Total(), Quantity: c.Quantity()}, nil
}

// settings falls back to defaults so a settings outage only degrades messages.
func (s *service) settings(ctx context.Context) *settings.Settings {
	if s.Settings == nil {
		return settings.Defaults()
	}
	st, err := s.Settings.Get(ctx)
	if err != nil {
		s.Log.Warn("load settings", "error", err)
		return settings.Defaults()
	}
	return st
}
