package httpserver

import (
	"time"

	"bdshop/internal/domain"
)

// money renders poisha as a taka string with two decimals, e.g. "2125.00".
func money(poisha int64) string {
	return domain.Taka(poisha).StringFixed(2)
}

type listResponse struct {
	Results interface{} `json:"results"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

type productResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	DiscountedPrice string    `json:"discountedPrice"`
	Discount        int       `json:"discount"`
	Currency        string    `json:"currency"`
	ImageURL        string    `json:"imageUrl"`
	Images          []string  `json:"images"`
	Category        string    `json:"category"`
	StockCount      int       `json:"stockCount"`
	InStock         bool      `json:"inStock"`
	Description     string    `json:"description,omitempty"`
	LongDescription string    `json:"longDescription,omitempty"`
	SEODescription  string    `json:"seoDescription,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toProductResponse(p domain.Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	status := p.Status
	if status == "" {
		status = domain.ProductActive
	}
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           money(p.PricePoisha),
		DiscountedPrice: money(p.EffectivePricePoisha()),
		Discount:        domain.ClampDiscount(p.Discount),
		Currency:        domain.Currency,
		ImageURL:        p.ImageURL,
		Images:          images,
		Category:        p.Category,
		StockCount:      p.StockCount,
		InStock:         p.InStock(),
		Description:     p.Description,
		LongDescription: p.LongDescription,
		SEODescription:  p.SEODescription,
		Status:          string(status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type itemResponse struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DiscountedPrice string `json:"discountedPrice"`
	Discount        int    `json:"discount"`
	ImageURL        string `json:"imageUrl"`
	Category        string `json:"category"`
	Quantity        int    `json:"quantity"`
	LineTotal       string `json:"lineTotal"`
}

func toItemResponses(items []domain.CartItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Price:           money(it.PricePoisha),
			DiscountedPrice: money(it.UnitPricePoisha()),
			Discount:        it.Discount,
			ImageURL:        it.ImageURL,
			Category:        it.Category,
			Quantity:        it.Quantity,
			LineTotal:       money(it.LineTotalPoisha()),
		})
	}
	return out
}

type cartResponse struct {
	Items      []itemResponse `json:"items"`
	TotalItems int            `json:"totalItems"`
	Subtotal   string         `json:"subtotal"`
	Savings    string         `json:"savings"`
	Total      string         `json:"total"`
	Currency   string         `json:"currency"`
}

func toCartResponse(c *domain.Cart) cartResponse {
	return cartResponse{
		Items:      toItemResponses(c.Items),
		TotalItems: c.TotalItems(),
		Subtotal:   money(c.Subtotal()),
		Savings:    money(c.Savings()),
		Total:      money(c.TotalPrice()),
		Currency:   domain.Currency,
	}
}

type wishlistResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
}

func toWishlistResponse(w *domain.Wishlist) wishlistResponse {
	return wishlistResponse{Items: toItemResponses(w.Items), Count: len(w.Items)}
}

type orderLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Discount  int    `json:"discount"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	CustomerID   *string             `json:"customerId,omitempty"`
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Note         string              `json:"note,omitempty"`
	Items        string              `json:"items"`
	Lines        []orderLineResponse `json:"lines"`
	TotalPrice   string              `json:"totalPrice"`
	Currency     string              `json:"currency"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     money(l.PricePoisha),
			Discount:  l.Discount,
			UnitPrice: money(l.UnitPricePoisha),
			Quantity:  l.Quantity,
			LineTotal: money(l.LineTotalPoisha),
		})
	}
	return orderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Note:         o.Note,
		Items:        o.Items,
		Lines:        lines,
		TotalPrice:   money(o.TotalPoisha),
		Currency:     domain.Currency,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type customerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Email:     c.Email,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
