package session

import (
	"context"
	"testing"
	"time"

	"bdshop/internal/domain"
)

func TestSaveAndLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var missing domain.Cart
	found, err := LoadJSON(ctx, s, "cart:none", &missing)
	if err != nil || found {
		t.Fatalf("expected missing key, got found=%v err=%v", found, err)
	}

	in := domain.Cart{Items: []domain.CartItem{{ProductID: "p1", Name: "Mug", PricePoisha: 50000, Quantity: 2}}}
	if err := SaveJSON(ctx, s, "cart:sid", in, time.Hour); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	var out domain.Cart
	found, err = LoadJSON(ctx, s, "cart:sid", &out)
	if err != nil || !found {
		t.Fatalf("LoadJSON: found=%v err=%v", found, err)
	}
	if len(out.Items) != 1 || out.Items[0].Quantity != 2 || out.Items[0].PricePoisha != 50000 {
		t.Fatalf("unexpected cart %+v", out)
	}
}

func TestLoadJSONCorrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	_ = s.Set(ctx, "cart:bad", []byte("{"), 0)
	var out domain.Cart
	if _, err := LoadJSON(ctx, s, "cart:bad", &out); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestUpdateJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	add := func(c *domain.Cart) error {
		c.Add(domain.CartItem{ProductID: "dress", Name: "Dress", PricePoisha: 250000}, 1)
		return nil
	}
	if _, err := UpdateJSON(ctx, s, "cart:sid", time.Hour, add); err != nil {
		t.Fatalf("first update: %v", err)
	}
	c, err := UpdateJSON(ctx, s, "cart:sid", time.Hour, add)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("expected merged line with quantity 2, got %+v", c.Items)
	}

	var stored domain.Cart
	if found, err := LoadJSON(ctx, s, "cart:sid", &stored); err != nil || !found {
		t.Fatalf("load: %v %v", found, err)
	}
	if stored.Items[0].Quantity != 2 {
		t.Fatalf("expected stored quantity 2, got %d", stored.Items[0].Quantity)
	}
}
