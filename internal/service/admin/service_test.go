package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"bdshop/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type stubProductStats struct{}

func (stubProductStats) Stats(context.Context) (int, int, error) { return 12, 3, nil }

type stubOrderStats struct{ err error }

func (s stubOrderStats) Stats(context.Context) (domain.OrderStats, error) {
	return domain.OrderStats{
		CountByStatus: map[domain.OrderStatus]int{domain.OrderPending: 2, domain.OrderDelivered: 5},
		RevenuePoisha: 5000000,
	}, s.err
}

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New("demo123", "test-secret", stubProductStats{}, stubOrderStats{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return svc
}

func TestLoginAndVerify(t *testing.T) {
	svc := newService(t)

	token, exp, err := svc.Login("demo123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if time.Until(exp) < 11*time.Hour {
		t.Fatalf("expected ~12h expiry, got %v", exp)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}

	if _, _, err := svc.Login("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	svc := newService(t)
	token, _, _ := svc.Login("demo123")

	other, _ := New("demo123", "other-secret", stubProductStats{}, stubOrderStats{})
	if _, err := other.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected wrong secret to fail, got %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(13 * time.Hour) }
	if _, err := svc.Verify(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
	svc.now = time.Now

	customer := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             "customer",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, _ := customer.SignedString([]byte("test-secret"))
	if _, err := svc.Verify(signed); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected non-admin role to fail, got %v", err)
	}
	if _, err := svc.Verify("garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected garbage token to fail, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc := newService(t)

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Products != 12 || sum.OutOfStock != 3 || sum.Orders != 7 || sum.RevenuePoisha != 5000000 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.OrdersByState[domain.OrderShipped] != 0 {
		t.Fatalf("expected zero shipped, got %d", sum.OrdersByState[domain.OrderShipped])
	}
	if _, ok := sum.OrdersByState[domain.OrderPaid]; !ok {
		t.Fatalf("expected every status present")
	}

	svc.orders = stubOrderStats{err: errors.New("db down")}
	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNew_RequiresSecrets(t *testing.T) {
	if _, err := New("", "s", nil, nil); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if _, err := New("p", "", nil, nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
