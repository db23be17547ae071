package order

import (
	"context"

	"bdshop/internal/domain"
)

// Repository persists orders. Create reserves stock for every line in the same
// transaction that stores the order.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Stats(ctx context.Context) (domain.OrderStats, error)
}
