package domain

import "time"

type ProductStatus string

const (
	ProductActive ProductStatus = "active"
	ProductHidden ProductStatus = "hidden"
)

// MaxExtraImages bounds the gallery images stored next to the primary image.
const MaxExtraImages = 4

type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	PricePoisha     int64         `json:"pricePoisha"`
	ImageURL        string        `json:"imageUrl,omitempty"`
	Images          []string      `json:"images,omitempty"`
	Category        string        `json:"category"`
	Discount        int           `json:"discount"`
	StockCount      int           `json:"stockCount"`
	Description     string        `json:"description,omitempty"`
	LongDescription string        `json:"longDescription,omitempty"`
	SEODescription  string        `json:"seoDescription,omitempty"`
	Status          ProductStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// EffectivePricePoisha is the unit price after the product discount.
func (p Product) EffectivePricePoisha() int64 {
	return EffectivePrice(p.PricePoisha, p.Discount)
}

func (p Product) InStock() bool {
	return p.StockCount > 0
}

// Visible reports whether storefront visitors may see the product.
func (p Product) Visible() bool {
	return p.Status == "" || p.Status == ProductActive
}

// CartItem returns the snapshot of the product stored in carts and wishlists.
func (p Product) CartItem(quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		PricePoisha: p.PricePoisha,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Discount:    ClampDiscount(p.Discount),
		Quantity:    quantity,
	}
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category    string
	Query       string
	Status      ProductStatus
	OnSale      bool
	InStockOnly bool
	Sort        string
	Limit       int
	Offset      int
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDiscount  = "discount"
	SortName      = "name"
)
