// Package events fans order lifecycle notifications out to Kafka and to
// connected admin dashboards.
package events

import (
	"context"
	"errors"
	"time"

	"bdshop/internal/domain"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	Type        Type               `json:"type"`
	OrderID     string             `json:"orderId"`
	Status      domain.OrderStatus `json:"status"`
	TotalPoisha int64              `json:"totalPoisha"`
	At          time.Time          `json:"at"`
	Order       *domain.Order      `json:"order,omitempty"`
}

// ForOrder builds an event of type t describing o.
func ForOrder(t Type, o domain.Order, at time.Time) Event {
	return Event{
		Type:        t,
		OrderID:     o.ID,
		Status:      o.Status,
		TotalPoisha: o.TotalPoisha,
		At:          at.UTC(),
		Order:       &o,
	}
}

// Key is the message key used for partitioning, e.g. "order.created.<id>".
func (e Event) Key() string {
	return string(e.Type) + "." + e.OrderID
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
