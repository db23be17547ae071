package domain

import "time"

// CartItem is a product snapshot plus the quantity the shopper wants.
type CartItem struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	PricePoisha int64  `json:"pricePoisha"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
	Discount    int    `json:"discount,omitempty"`
	Quantity    int    `json:"quantity"`
}

// UnitPricePoisha is the discounted unit price.
func (i CartItem) UnitPricePoisha() int64 {
	return EffectivePrice(i.PricePoisha, i.Discount)
}

// LineTotalPoisha is the discounted unit price times quantity.
func (i CartItem) LineTotalPoisha() int64 {
	return i.UnitPricePoisha() * int64(i.Quantity)
}

// Cart is the per-session shopping cart. Items keep insertion order and hold
// at most one entry per product.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Add merges quantity into an existing line for the same product or appends a
// new line. Non-positive quantities count as one.
func (c *Cart) Add(item CartItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	item.Quantity = quantity
	c.Items = append(c.Items, item)
}

func (c *Cart) Remove(productID string) {
	out := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	c.Items = out
}

// UpdateQuantity sets the line quantity, never below one.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Find returns the line for productID.
func (c *Cart) Find(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the undiscounted sum of all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PricePoisha * int64(item.Quantity)
	}
	return total
}

// TotalPrice is the discounted sum of all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotalPoisha()
	}
	return total
}

func (c *Cart) Savings() int64 {
	return c.Subtotal() - c.TotalPrice()
}

// Wishlist is the per-session list of saved products; every entry has quantity one.
type Wishlist struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Add appends the item unless the product is already saved. It reports whether
// the wishlist changed.
func (w *Wishlist) Add(item CartItem) bool {
	if w.Contains(item.ProductID) {
		return false
	}
	item.Quantity = 1
	w.Items = append(w.Items, item)
	return true
}

func (w *Wishlist) Remove(productID string) {
	out := w.Items[:0]
	for _, item := range w.Items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	w.Items = out
}

func (w *Wishlist) Contains(productID string) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Find(productID string) (CartItem, bool) {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}
