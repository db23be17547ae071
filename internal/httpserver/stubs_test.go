package httpserver

import (
	"context"
	"io"
	"testing"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/repository/session"
	"bdshop/internal/service/admin"
	"bdshop/internal/service/cart"
	customersvc "bdshop/internal/service/customer"
	ordersvc "bdshop/internal/service/order"
	productsvc "bdshop/internal/service/product"
	"bdshop/internal/service/wishlist"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type stubProductService struct {
	products   map[string]domain.Product
	lastFilter domain.ProductFilter
	created    *productsvc.Input
	err        error
}

func newStubProducts() *stubProductService {
	return &stubProductService{products: map[string]domain.Product{
		"stroller": {ID: "stroller", Name: "Premium Baby Stroller", PricePoisha: 1250000, Discount: 20, StockCount: 3, Category: "baby", Status: domain.ProductActive},
		"dress":    {ID: "dress", Name: "Women's Summer Dress", PricePoisha: 250000, Discount: 15, StockCount: 10, Category: "women", Status: domain.ProductActive},
		"draft":    {ID: "draft", Name: "Draft", PricePoisha: 100, Category: "men", Status: domain.ProductHidden},
	}}
}

func (s *stubProductService) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	s.lastFilter = f
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, len(out), s.err
}

func (s *stubProductService) ListPublic(_ context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	s.lastFilter = f
	var out []domain.Product
	for _, p := range s.products {
		if p.Visible() && (f.Category == "" || p.Category == f.Category) {
			out = append(out, p)
		}
	}
	return out, len(out), s.err
}

func (s *stubProductService) ListAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	out, _, err := s.List(ctx, f)
	return out, err
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.Get(ctx, id)
}

func (s *stubProductService) GetPublic(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Visible() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProductService) Create(_ context.Context, in productsvc.Input) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &in
	p := domain.Product{ID: "new", Name: in.Name, PricePoisha: domain.PoishaFromTaka(in.Price), Discount: in.Discount, Category: in.Category}
	return &p, nil
}

func (s *stubProductService) Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	p := domain.Product{ID: id, Name: in.Name}
	return &p, nil
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubProductService) AdjustStock(_ context.Context, id string, delta int) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.StockCount+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	p.StockCount += delta
	s.products[id] = p
	return &p, nil
}

func (s *stubProductService) AddImages(_ context.Context, id string, uploads []productsvc.Upload) (*domain.Product, []string, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	for _, u := range uploads {
		if _, err := io.ReadAll(u.Body); err != nil {
			return nil, nil, err
		}
		p.Images = append(p.Images, "https://cdn.example.com/"+u.Filename)
	}
	return &p, nil, nil
}

type stubCategoryService struct {
	categories []domain.Category
}

func (s *stubCategoryService) List(context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryService) Get(_ context.Context, key string) (*domain.Category, error) {
	for _, c := range s.categories {
		if c.Key == key {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryService) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" {
		return nil, domain.Invalid("name required")
	}
	return &c, nil
}

type stubOrderService struct {
	orders       map[string]domain.Order
	checkoutErr  error
	lastCustomer *string
	lastKey      string
	lastInput    ordersvc.CheckoutInput
}

func (s *stubOrderService) Checkout(_ context.Context, _ string, customerID *string, in ordersvc.CheckoutInput, key string) (*domain.Order, error) {
	s.lastCustomer, s.lastKey, s.lastInput = customerID, key, in
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	o := domain.Order{
		ID:           "order-1",
		CustomerID:   customerID,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Address:      in.Address,
		Items:        "Women's Summer Dress x2",
		Lines:        []domain.OrderLine{{ProductID: "dress", Name: "Women's Summer Dress", PricePoisha: 250000, Discount: 15, UnitPricePoisha: 212500, Quantity: 2, LineTotalPoisha: 425000}},
		TotalPoisha:  425000,
		Status:       domain.OrderPending,
	}
	s.orders[o.ID] = o
	return &o, nil
}

func (s *stubOrderService) Get(_ context.Context, id string) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (s *stubOrderService) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, int, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if f.Status == "" || o.Status == f.Status {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (s *stubOrderService) ListAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	out, _, err := s.List(ctx, f)
	return out, err
}

func (s *stubOrderService) ListForCustomer(_ context.Context, customerID string, _, _ int) ([]domain.Order, int, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, id, status string) (*domain.Order, error) {
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = st
	s.orders[id] = o
	return &o, nil
}

type stubCustomerAuthSvc struct {
	customer *domain.Customer
	loginErr error
	signErr  error
	tokens   map[string]bool
}

func (s *stubCustomerAuthSvc) Signup(_ context.Context, in customersvc.SignupInput) (*domain.Customer, error) {
	if s.signErr != nil {
		return nil, s.signErr
	}
	return &domain.Customer{ID: "cust-new", Email: in.Email, Name: in.Name}, nil
}

func (s *stubCustomerAuthSvc) Login(context.Context, string, string) (*domain.Customer, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.customer, "good-token", nil
}

func (s *stubCustomerAuthSvc) Logout(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func (s *stubCustomerAuthSvc) LookupByToken(_ context.Context, token string) (*domain.Customer, error) {
	if !s.tokens[token] {
		return nil, customersvc.ErrInvalidToken
	}
	return s.customer, nil
}

func (s *stubCustomerAuthSvc) AccessTTLSeconds() int {
	return 3600
}

type stubStats struct{}

func (stubStats) Stats(context.Context) (int, int, error) { return 2, 1, nil }

type stubOrderStats struct{}

func (stubOrderStats) Stats(context.Context) (domain.OrderStats, error) {
	return domain.OrderStats{CountByStatus: map[domain.OrderStatus]int{domain.OrderPaid: 1}, RevenuePoisha: 425000}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	router    *gin.Engine
	products  *stubProductService
	orders    *stubOrderService
	customers *stubCustomerAuthSvc
	admin     *admin.Service
}

func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := newStubProducts()
	store := session.NewMemory()
	carts := cart.New(store, products, time.Hour)
	orders := &stubOrderService{orders: map[string]domain.Order{}}
	customers := &stubCustomerAuthSvc{
		customer: &domain.Customer{ID: "cust-1", Email: "rahim@example.com", Name: "Rahim"},
		tokens:   map[string]bool{"good-token": true},
	}
	adminSvc, err := admin.New("demo123", "test-secret", stubStats{}, stubOrderStats{})
	if err != nil {
		t.Fatalf("admin service: %v", err)
	}

	deps := Deps{
		DB:          stubPinger{},
		Sessions:    store,
		ProductSvc:  products,
		CategorySvc: &stubCategoryService{categories: []domain.Category{{Key: "baby", Name: "Baby Items", NameBn: "শিশু পণ্য"}, {Key: "women", Name: "Women"}}},
		CartSvc:     carts,
		WishlistSvc: wishlist.New(store, products, carts, time.Hour),
		OrderSvc:    orders,
		CustomerSvc: customers,
		AdminSvc:    adminSvc,
	}
	for _, m := range mutate {
		m(&deps)
	}
	router, err := buildRouter(zerolog.New(io.Discard), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, products: products, orders: orders, customers: customers, admin: adminSvc}
}
