package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		price    int64
		discount int
		want     int64
	}{
		{1250000, 20, 1000000},
		{250000, 15, 212500},
		{999, 15, 849},
		{1000, 0, 1000},
		{1000, -10, 1000},
		{1000, 150, 0},
		{1, 50, 1},
	}
	for _, tc := range cases {
		if got := EffectivePrice(tc.price, tc.discount); got != tc.want {
			t.Errorf("EffectivePrice(%d, %d) = %d, want %d", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestTakaConversion(t *testing.T) {
	if got := Taka(212550).StringFixed(2); got != "2125.50" {
		t.Fatalf("unexpected taka %s", got)
	}
	if got := PoishaFromTaka(decimal.RequireFromString("2125.505")); got != 212551 {
		t.Fatalf("unexpected poisha %d", got)
	}
}
