package httpserver

import (
	"net/http"
	"testing"
)

const testSession = "4f0c2a52-6a77-4bb5-9a8a-2f0d2a9b3c11"

var sessionHeaders = map[string]string{sessionHeader: testSession}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(t, env.router, http.MethodPost, "/api/cart/items", `{"productId":"stroller","quantity":1}`, sessionHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("add stroller: %d %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, env.router, http.MethodPost, "/api/cart/items", `{"productId":"dress","quantity":2}`, sessionHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("add dress: %d %s", rec.Code, rec.Body.String())
	}

	var cart cartResponse
	decode(t, doRequest(t, env.router, http.MethodGet, "/api/cart", "", sessionHeaders), &cart)
	if cart.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", cart.TotalItems)
	}
	if cart.Subtotal != "17500.00" || cart.Total != "14250.00" || cart.Savings != "3250.00" {
		t.Fatalf("unexpected totals %+v", cart)
	}

	rec = doRequest(t, env.router, http.MethodPatch, "/api/cart/items/dress", `{"quantity":0}`, sessionHeaders)
	decode(t, rec, &cart)
	if cart.Items[1].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", cart.Items[1].Quantity)
	}

	rec = doRequest(t, env.router, http.MethodDelete, "/api/cart/items/stroller", "", sessionHeaders)
	decode(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "dress" {
		t.Fatalf("unexpected items after remove %+v", cart.Items)
	}

	if rec := doRequest(t, env.router, http.MethodDelete, "/api/cart", "", sessionHeaders); rec.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", rec.Code)
	}
	decode(t, doRequest(t, env.router, http.MethodGet, "/api/cart", "", sessionHeaders), &cart)
	if len(cart.Items) != 0 || cart.Total != "0.00" {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestCart_ErrorMapping(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown product", http.MethodPost, "/api/cart/items", `{"productId":"nope"}`, http.StatusNotFound},
		{"hidden product", http.MethodPost, "/api/cart/items", `{"productId":"draft"}`, http.StatusNotFound},
		{"over stock", http.MethodPost, "/api/cart/items", `{"productId":"stroller","quantity":4}`, http.StatusConflict},
		{"negative quantity", http.MethodPost, "/api/cart/items", `{"productId":"stroller","quantity":-2}`, http.StatusBadRequest},
		{"malformed", http.MethodPost, "/api/cart/items", `{"productId":`, http.StatusBadRequest},
		{"update missing line", http.MethodPatch, "/api/cart/items/dress", `{"quantity":2}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := doRequest(t, env.router, tc.method, tc.path, tc.body, sessionHeaders)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestWishlistFlow(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, env.router, http.MethodPost, "/api/wishlist/items", `{"productId":"dress"}`, sessionHeaders)
		if rec.Code != http.StatusOK {
			t.Fatalf("add: %d %s", rec.Code, rec.Body.String())
		}
	}
	var w wishlistResponse
	decode(t, doRequest(t, env.router, http.MethodGet, "/api/wishlist", "", sessionHeaders), &w)
	if w.Count != 1 {
		t.Fatalf("expected deduped wishlist, got %d", w.Count)
	}

	var contains struct {
		InWishlist bool `json:"inWishlist"`
	}
	decode(t, doRequest(t, env.router, http.MethodGet, "/api/wishlist/items/dress", "", sessionHeaders), &contains)
	if !contains.InWishlist {
		t.Fatalf("expected dress in wishlist")
	}

	var moved struct {
		Wishlist wishlistResponse `json:"wishlist"`
		Cart     cartResponse     `json:"cart"`
	}
	rec := doRequest(t, env.router, http.MethodPost, "/api/wishlist/items/dress/move-to-cart", "", sessionHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("move: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &moved)
	if moved.Wishlist.Count != 0 || moved.Cart.TotalItems != 1 {
		t.Fatalf("unexpected move result %+v", moved)
	}

	if rec := doRequest(t, env.router, http.MethodPost, "/api/wishlist/items/dress/move-to-cart", "", sessionHeaders); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for product not in wishlist, got %d", rec.Code)
	}

	doRequest(t, env.router, http.MethodPost, "/api/wishlist/items", `{"productId":"stroller"}`, sessionHeaders)
	decode(t, doRequest(t, env.router, http.MethodDelete, "/api/wishlist/items/stroller", "", sessionHeaders), &w)
	if w.Count != 0 {
		t.Fatalf("expected empty wishlist after remove, got %d", w.Count)
	}
}
