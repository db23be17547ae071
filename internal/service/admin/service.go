// Package admin authenticates the store administrator and assembles the
// dashboard summary.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bdshop/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	tokenTTL  = 12 * time.Hour
)

var (
	// ErrInvalidPassword is returned when the admin password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUnauthorized indicates a missing, expired or non-admin token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Claims are carried by admin session tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type productStats interface {
	Stats(ctx context.Context) (total, outOfStock int, err error)
}

type orderStats interface {
	Stats(ctx context.Context) (domain.OrderStats, error)
}

type Service struct {
	passwordHash []byte
	secret       []byte
	products     productStats
	orders       orderStats
	now          func() time.Time
}

// New hashes password once so login compares against a bcrypt hash rather
// than the raw configured value.
func New(password, secret string, products productStats, orders orderStats) (*Service, error) {
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Service{
		passwordHash: hash,
		secret:       []byte(secret),
		products:     products,
		orders:       orders,
		now:          time.Now,
	}, nil
}

// Login returns a signed token and its expiry for the correct password.
func (s *Service) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}
	now := s.now()
	expiresAt := now.Add(tokenTTL)
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the token signature, expiry and role.
func (s *Service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	if claims.Role != RoleAdmin {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// Summary backs the dashboard header cards.
type Summary struct {
	Products      int                        `json:"products"`
	OutOfStock    int                        `json:"outOfStock"`
	Orders        int                        `json:"orders"`
	OrdersByState map[domain.OrderStatus]int `json:"ordersByStatus"`
	RevenuePoisha int64                      `json:"revenuePoisha"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	total, out, err := s.products.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	byStatus := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	count := 0
	for _, st := range domain.OrderStatuses {
		byStatus[st] = stats.CountByStatus[st]
		count += stats.CountByStatus[st]
	}
	return &Summary{
		Products:      total,
		OutOfStock:    out,
		Orders:        count,
		OrdersByState: byStatus,
		RevenuePoisha: stats.RevenuePoisha,
	}, nil
}
