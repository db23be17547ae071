// Package cart keeps each visitor's shopping cart in the session store.
package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/repository/session"
)

const keyPrefix = "cart:"

type productLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	store    session.Store
	products productLookup
	ttl      time.Duration
	now      func() time.Time
}

func New(store session.Store, products productLookup, ttl time.Duration) *Service {
	return &Service{store: store, products: products, ttl: ttl, now: time.Now}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Get returns the session's cart; a missing cart is empty, not an error.
// Reading a cart slides its expiry forward.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	c := &domain.Cart{Items: []domain.CartItem{}}
	found, err := session.LoadJSON(ctx, s.store, key(sessionID), c)
	if err != nil {
		return nil, err
	}
	if found {
		if err := s.store.Touch(ctx, key(sessionID), s.ttl); err != nil {
			return nil, fmt.Errorf("refresh cart ttl: %w", err)
		}
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return c, nil
}

// AddItem snapshots the product into the cart, merging with an existing line.
// Quantity zero counts as one.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, domain.Invalid("quantity must not be negative")
	}
	p, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}
	return s.update(ctx, sessionID, func(c *domain.Cart) error {
		existing, _ := c.Find(p.ID)
		if existing.Quantity+quantity > p.StockCount {
			return fmt.Errorf("%w: %d of %q available", domain.ErrInsufficientStock, p.StockCount, p.Name)
		}
		c.Add(p.CartItem(quantity), quantity)
		return nil
	})
}

// UpdateQuantity sets the line quantity; values below one become one.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, func(c *domain.Cart) error {
		if _, ok := c.Find(productID); !ok {
			return domain.ErrNotFound
		}
		if quantity > p.StockCount {
			return fmt.Errorf("%w: %d of %q available", domain.ErrInsufficientStock, p.StockCount, p.Name)
		}
		return c.UpdateQuantity(productID, quantity)
	})
}

// RemoveItem drops the line; removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	return s.update(ctx, sessionID, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, key(sessionID))
}

func (s *Service) loadProduct(ctx context.Context, productID string) (*domain.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("productId required")
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Visible() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// update applies mutate to the stored cart atomically, so concurrent requests
// on one session never overwrite each other's lines.
func (s *Service) update(ctx context.Context, sessionID string, mutate func(c *domain.Cart) error) (*domain.Cart, error) {
	c, err := session.UpdateJSON(ctx, s.store, key(sessionID), s.ttl, func(c *domain.Cart) error {
		if err := mutate(c); err != nil {
			return err
		}
		if c.Items == nil {
			c.Items = []domain.CartItem{}
		}
		c.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
