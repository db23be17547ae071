package domain

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPaid      OrderStatus = "Paid"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered}

// ParseOrderStatus matches s case-insensitively against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// OrderLine is the priced snapshot of a cart line at checkout time.
type OrderLine struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	PricePoisha     int64  `json:"pricePoisha"`
	Discount        int    `json:"discount"`
	UnitPricePoisha int64  `json:"unitPricePoisha"`
	Quantity        int    `json:"quantity"`
	LineTotalPoisha int64  `json:"lineTotalPoisha"`
}

type Order struct {
	ID           string      `json:"id"`
	CustomerID   *string     `json:"customerId,omitempty"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Note         string      `json:"note,omitempty"`
	Items        string      `json:"items"`
	Lines        []OrderLine `json:"lines"`
	TotalPoisha  int64       `json:"totalPoisha"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// SummarizeLines renders lines the way the admin table shows them, e.g.
// "Baby Stroller x1, Summer Dress x2".
func SummarizeLines(lines []OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", l.Name, l.Quantity))
	}
	return strings.Join(parts, ", ")
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status     OrderStatus
	CustomerID string
	Limit      int
	Offset     int
}

// OrderStats backs the admin dashboard summary.
type OrderStats struct {
	CountByStatus map[OrderStatus]int `json:"countByStatus"`
	RevenuePoisha int64               `json:"revenuePoisha"`
}
