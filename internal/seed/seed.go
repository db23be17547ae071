// Package seed loads the demo storefront catalog.
package seed

import (
	"context"
	"fmt"

	"bdshop/internal/domain"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type ProductWriter interface {
	Save(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Categories are the storefront navigation sections.
var Categories = []domain.Category{
	{Key: "baby", Name: "Baby Items", NameBn: "বেবি আইটেম", SortOrder: 1},
	{Key: "women", Name: "Women", NameBn: "নারী ফ্যাশন", SortOrder: 2},
	{Key: "men", Name: "Men", NameBn: "পুরুষ ফ্যাশন", SortOrder: 3},
	{Key: "electronics", Name: "Electronics", NameBn: "ইলেকট্রনিক্স ও গ্যাজেট", SortOrder: 4},
	{Key: "trendy", Name: "Trending", NameBn: "ট্রেন্ডি পণ্য", SortOrder: 5},
}

// Products use fixed ids so repeated runs update instead of duplicating.
var Products = []domain.Product{
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000001",
		Name:        "Premium Baby Stroller",
		PricePoisha: 1250000,
		ImageURL:    "https://images.unsplash.com/photo-1588773163629-e90a6c4f0cc6?w=500",
		Category:    "baby",
		Discount:    20,
		StockCount:  12,
		Description: "Lightweight foldable stroller with sun canopy",
	},
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000002",
		Name:        "Women's Summer Dress",
		PricePoisha: 250000,
		ImageURL:    "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=500",
		Category:    "women",
		Discount:    15,
		StockCount:  40,
		Description: "Breathable cotton dress for hot days",
	},
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000003",
		Name:        "Men's Smart Watch",
		PricePoisha: 850000,
		ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
		Category:    "electronics",
		StockCount:  15,
		Description: "Fitness tracking and notifications",
	},
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000004",
		Name:        "Wireless Earbuds",
		PricePoisha: 350000,
		ImageURL:    "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=500",
		Category:    "electronics",
		Discount:    25,
		StockCount:  30,
		Description: "Bluetooth earbuds with charging case",
	},
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000005",
		Name:        "Men's Casual Shirt",
		PricePoisha: 180000,
		ImageURL:    "https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=500",
		Category:    "men",
		StockCount:  25,
		Description: "Everyday cotton shirt",
	},
	{
		ID:          "6c1f0d1e-2a4b-4c1a-9f00-000000000006",
		Name:        "Women's Handbag",
		PricePoisha: 420000,
		ImageURL:    "https://images.unsplash.com/photo-1584917865442-de89df76afd3?w=500",
		Category:    "women",
		Discount:    10,
		StockCount:  18,
		Description: "Faux leather handbag with shoulder strap",
	},
}

// Apply upserts the demo categories and products. It is idempotent.
func Apply(ctx context.Context, categories CategoryWriter, products ProductWriter) error {
	for _, c := range Categories {
		if _, err := categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Key, err)
		}
	}
	for _, p := range Products {
		p.Status = domain.ProductActive
		if _, err := products.Save(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}
