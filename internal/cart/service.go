package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
)

// Service runs cart operations for one session at a time: load, reconcile,
// save, publish.
type Service interface {
	Get(ctx context.Context, key string) (*Cart, error)
	Add(ctx context.Context, key, code string, quantity int) (*Cart, error)
	Remove(ctx context.Context, key, code string) (*Cart, error)
	Clear(ctx context.Context, key string) (*Cart, error)
}

type service struct {
	store      Store
	catalog    ProductCatalog
	reconciler *Reconciler
	publisher  events.Publisher
	metrics    *metrics.Metrics
	locks      *keyedMutex
	now        func() time.Time
}

func NewService(store Store, catalog ProductCatalog, publisher events.Publisher, m *metrics.Metrics) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{
		store:      store,
		catalog:    catalog,
		reconciler: NewReconciler(catalog, m),
		publisher:  publisher,
		metrics:    m,
		locks:      newKeyedMutex(),
		now:        time.Now,
	}
}

// SessionKey is the store key of a user's cart.
func SessionKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func (s *service) Get(ctx context.Context, key string) (*Cart, error) {
	return s.load(ctx, key)
}

func (s *service) Add(ctx context.Context, key, code string, quantity int) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.String("cart", key),
		zap.String("code", code),
	)

	unlock := s.locks.Lock(key)

	cart, err := s.load(ctx, key)
	if err != nil {
		unlock()
		s.metrics.CartOperation("add", "error")
		return nil, err
	}

	if err := s.reconciler.Add(ctx, cart, code, quantity); err != nil {
		unlock()
		s.metrics.CartOperation("add", resultLabel(err))
		return nil, err
	}

	if err := s.save(ctx, key, cart); err != nil {
		unlock()
		s.metrics.CartOperation("add", "error")
		return nil, err
	}
	unlock()

	s.metrics.CartOperation("add", "ok")
	log.Info("cart item added",
		zap.Int("quantity", quantity),
		zap.Int("items", len(cart.items)),
		zap.Strings("diagnostics", cart.errors),
	)

	s.publish(ctx, events.Event{
		Type:        events.CartItemAdded,
		Key:         key,
		ProductCode: code,
		Quantity:    quantity,
		Diagnostics: cart.Errors(),
	})
	return cart, nil
}

func (s *service) Remove(ctx context.Context, key, code string) (*Cart, error) {
	unlock := s.locks.Lock(key)

	cart, err := s.load(ctx, key)
	if err != nil {
		unlock()
		s.metrics.CartOperation("remove", "error")
		return nil, err
	}

	if err := s.reconciler.Remove(ctx, cart, code); err != nil {
		unlock()
		s.metrics.CartOperation("remove", resultLabel(err))
		return nil, err
	}

	if err := s.save(ctx, key, cart); err != nil {
		unlock()
		s.metrics.CartOperation("remove", "error")
		return nil, err
	}
	unlock()

	s.metrics.CartOperation("remove", "ok")
	s.publish(ctx, events.Event{
		Type:        events.CartItemRemoved,
		Key:         key,
		ProductCode: code,
	})
	return cart, nil
}

func (s *service) Clear(ctx context.Context, key string) (*Cart, error) {
	unlock := s.locks.Lock(key)
	err := s.store.Delete(ctx, key)
	unlock()

	if err != nil {
		s.metrics.CartOperation("clear", "error")
		return nil, fmt.Errorf("%w: %w", ErrFailedClearCart, err)
	}

	s.metrics.CartOperation("clear", "ok")
	s.publish(ctx, events.Event{Type: events.CartCleared, Key: key})
	return NewCart(), nil
}

// load rebuilds the cart from its stored lines, resolving every product
// again. Lines whose product no longer exists are dropped.
func (s *service) load(ctx context.Context, key string) (*Cart, error) {
	stored, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}

	cart := NewCart()
	if len(stored) == 0 {
		return cart, nil
	}

	ids := make([]int64, 0, len(stored))
	for _, item := range stored {
		ids = append(ids, item.ProductID)
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}

	byID := make(map[int64]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range stored {
		p, ok := byID[item.ProductID]
		if !ok || item.Quantity <= 0 {
			logger.FromCtx(ctx).Warn("dropping stale cart line",
				zap.String("cart", key),
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			continue
		}
		cart.AddItem(p, item.Quantity)
	}

	return cart, nil
}

func (s *service) save(ctx context.Context, key string, cart *Cart) error {
	if err := s.store.Save(ctx, key, cart.Snapshot()); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSaveCart, err)
	}
	return nil
}

// publish runs after the session lock is released and never fails the
// operation; the cart is already saved.
func (s *service) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish cart event",
			zap.String("type", e.Type),
			zap.String("cart", e.Key),
			zap.Error(err),
		)
	}
}

func resultLabel(err error) string {
	if errors.Is(err, ErrProductNotFound) {
		return "not_found"
	}
	return "error"
}
