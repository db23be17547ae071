// Package order turns session carts into persisted orders and drives the
// order status lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/events"
	"bdshop/internal/logging"
	orderrepo "bdshop/internal/repository/order"
	"github.com/rs/zerolog"
)

const (
	idempotencyPrefix = "idem:"
	idempotencyTTL    = 24 * time.Hour
	exportPageSize    = 500
)

// ErrDuplicateRequest is returned when an Idempotency-Key was already used.
var ErrDuplicateRequest = errors.New("duplicate request")

type cartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type productLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type keyStore interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo      orderrepo.Repository
	carts     cartStore
	products  productLookup
	keys      keyStore
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

func New(repo orderrepo.Repository, carts cartStore, products productLookup, keys keyStore, publisher events.Publisher, logger *zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:      repo,
		carts:     carts,
		products:  products,
		keys:      keys,
		publisher: publisher,
		logger:    logging.OrNop(logger),
		now:       time.Now,
	}
}

// CheckoutInput is the delivery form of the checkout page.
type CheckoutInput struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Note         string `json:"note"`
}

// Checkout places an order for the session cart. Lines are re-priced from the
// catalog, stock is reserved with the order, and the cart is cleared.
func (s *Service) Checkout(ctx context.Context, sessionID string, customerID *string, in CheckoutInput, idempotencyKey string) (*domain.Order, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, domain.Invalid("customerName required")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Invalid("address required")
	}
	phone, err := domain.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	release, err := s.reserveKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}

	created, err := s.place(ctx, sessionID, domain.Order{
		CustomerID:   customerID,
		CustomerName: name,
		Phone:        phone,
		Address:      address,
		Note:         strings.TrimSpace(in.Note),
		Status:       domain.OrderPending,
	})
	if err != nil {
		release()
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("order service: clear cart failed")
	}
	s.publish(ctx, events.OrderCreated, *created)
	s.logger.Info().Str("order_id", created.ID).Int64("total_poisha", created.TotalPoisha).Int("lines", len(created.Lines)).Msg("order placed")
	return created, nil
}

func (s *Service) place(ctx context.Context, sessionID string, o domain.Order) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, len(cart.Items))
	var total int64
	for _, item := range cart.Items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %q is no longer available", domain.ErrNotFound, item.Name)
			}
			return nil, err
		}
		if !p.Visible() {
			return nil, fmt.Errorf("%w: %q is no longer available", domain.ErrNotFound, p.Name)
		}
		if item.Quantity > p.StockCount {
			return nil, fmt.Errorf("%w: %d of %q available", domain.ErrInsufficientStock, p.StockCount, p.Name)
		}
		line := domain.OrderLine{
			ProductID:       p.ID,
			Name:            p.Name,
			PricePoisha:     p.PricePoisha,
			Discount:        domain.ClampDiscount(p.Discount),
			UnitPricePoisha: p.EffectivePricePoisha(),
			Quantity:        item.Quantity,
		}
		line.LineTotalPoisha = line.UnitPricePoisha * int64(line.Quantity)
		total += line.LineTotalPoisha
		lines = append(lines, line)
	}

	o.Lines = lines
	o.Items = domain.SummarizeLines(lines)
	o.TotalPoisha = total
	return s.repo.Create(ctx, o)
}

// reserveKey claims an idempotency key. The returned func releases it again
// so a failed checkout can be retried with the same key.
func (s *Service) reserveKey(ctx context.Context, idempotencyKey string) (func(), error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" || s.keys == nil {
		return func() {}, nil
	}
	key := idempotencyPrefix + idempotencyKey
	ok, err := s.keys.SetNX(ctx, key, []byte(s.now().UTC().Format(time.RFC3339)), idempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !ok {
		return nil, ErrDuplicateRequest
	}
	return func() {
		if err := s.keys.Delete(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("order service: release idempotency key failed")
		}
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders newest first.
func (s *Service) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error) {
	return s.repo.List(ctx, normalizeFilter(f))
}

// ListAll returns every order matching f for exports, reading in batches.
func (s *Service) ListAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	f.Limit = exportPageSize
	all := []domain.Order{}
	for f.Offset = 0; ; f.Offset += exportPageSize {
		batch, total, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize || len(all) >= total {
			return all, nil
		}
	}
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, int, error) {
	if customerID == "" {
		return nil, 0, domain.ErrNotFound
	}
	return s.repo.List(ctx, normalizeFilter(domain.OrderFilter{CustomerID: customerID, Limit: limit, Offset: offset}))
}

// UpdateStatus moves the order to any of the known statuses.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.OrderStatusChanged, *updated)
	return updated, nil
}

func (s *Service) Stats(ctx context.Context) (domain.OrderStats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) publish(ctx context.Context, t events.Type, o domain.Order) {
	if err := s.publisher.Publish(ctx, events.ForOrder(t, o, s.now())); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Str("event", string(t)).Msg("order service: publish failed")
	}
}

func normalizeFilter(f domain.OrderFilter) domain.OrderFilter {
	f.Limit, f.Offset = domain.PageBounds(f.Limit, f.Offset)
	return f
}
