package domain

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus(" shipped ")
	if err != nil || got != OrderShipped {
		t.Fatalf("expected Shipped, got %q %v", got, err)
	}
	if _, err := ParseOrderStatus("Cancelled"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestSummarizeLines(t *testing.T) {
	got := SummarizeLines([]OrderLine{{Name: "Stroller", Quantity: 1}, {Name: "Dress", Quantity: 2}})
	if got != "Stroller x1, Dress x2" {
		t.Fatalf("unexpected summary %q", got)
	}
}
