// Package wishlist keeps each visitor's saved products in the session store.
package wishlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/repository/session"
)

const keyPrefix = "wishlist:"

type productLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type cartAdder interface {
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
}

type Service struct {
	store    session.Store
	products productLookup
	cart     cartAdder
	ttl      time.Duration
	now      func() time.Time
}

func New(store session.Store, products productLookup, cart cartAdder, ttl time.Duration) *Service {
	return &Service{store: store, products: products, cart: cart, ttl: ttl, now: time.Now}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Get returns the saved products and slides the wishlist's expiry forward.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	w := &domain.Wishlist{Items: []domain.CartItem{}}
	found, err := session.LoadJSON(ctx, s.store, key(sessionID), w)
	if err != nil {
		return nil, err
	}
	if found {
		if err := s.store.Touch(ctx, key(sessionID), s.ttl); err != nil {
			return nil, fmt.Errorf("refresh wishlist ttl: %w", err)
		}
	}
	if w.Items == nil {
		w.Items = []domain.CartItem{}
	}
	return w, nil
}

// Add saves the product. Adding a product twice leaves the wishlist as is.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error) {
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
	return s.update(ctx, sessionID, func(w *domain.Wishlist) error {
		w.Add(p.CartItem(1))
		return nil
	})
}

func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error) {
	return s.update(ctx, sessionID, func(w *domain.Wishlist) error {
		w.Remove(productID)
		return nil
	})
}

func (s *Service) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	w, err := s.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return w.Contains(productID), nil
}

// MoveToCart adds one unit of a saved product to the cart and removes it from
// the wishlist. The wishlist is untouched when the cart rejects the item.
func (s *Service) MoveToCart(ctx context.Context, sessionID, productID string) (*domain.Wishlist, *domain.Cart, error) {
	w, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !w.Contains(productID) {
		return nil, nil, domain.ErrNotFound
	}
	c, err := s.cart.AddItem(ctx, sessionID, productID, 1)
	if err != nil {
		return nil, nil, err
	}
	w, err = s.Remove(ctx, sessionID, productID)
	if err != nil {
		return nil, nil, err
	}
	return w, c, nil
}

// update applies mutate to the stored wishlist atomically.
func (s *Service) update(ctx context.Context, sessionID string, mutate func(w *domain.Wishlist) error) (*domain.Wishlist, error) {
	return session.UpdateJSON(ctx, s.store, key(sessionID), s.ttl, func(w *domain.Wishlist) error {
		if err := mutate(w); err != nil {
			return err
		}
		if w.Items == nil {
			w.Items = []domain.CartItem{}
		}
		w.UpdatedAt = s.now().UTC()
		return nil
	})
}
