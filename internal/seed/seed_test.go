package seed

import (
	"context"
	"errors"
	"testing"

	"bdshop/internal/domain"
)

type stubCategories struct {
	keys []string
}

func (s *stubCategories) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.keys = append(s.keys, c.Key)
	return &c, nil
}

type stubProducts struct {
	saved []domain.Product
	err   error
}

func (s *stubProducts) Save(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, p)
	return &p, nil
}

func TestApply(t *testing.T) {
	cats := &stubCategories{}
	prods := &stubProducts{}

	if err := Apply(context.Background(), cats, prods); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cats.keys) != 5 || cats.keys[0] != "baby" {
		t.Fatalf("unexpected categories %v", cats.keys)
	}
	if len(prods.saved) != len(Products) {
		t.Fatalf("expected %d products, got %d", len(Products), len(prods.saved))
	}

	known := map[string]bool{}
	for _, c := range Categories {
		known[c.Key] = true
	}
	for _, p := range prods.saved {
		if !known[p.Category] {
			t.Fatalf("product %q references unknown category %q", p.Name, p.Category)
		}
		if p.Status != domain.ProductActive || p.ID == "" {
			t.Fatalf("unexpected product %+v", p)
		}
	}
	if prods.saved[0].EffectivePricePoisha() != 1000000 {
		t.Fatalf("expected stroller at 10000 taka after discount, got %d", prods.saved[0].EffectivePricePoisha())
	}
}

func TestApply_PropagatesErrors(t *testing.T) {
	err := Apply(context.Background(), &stubCategories{}, &stubProducts{err: errors.New("db down")})
	if err == nil {
		t.Fatalf("expected error")
	}
}
