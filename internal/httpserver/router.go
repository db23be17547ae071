package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bdshop/internal/domain"
	"bdshop/internal/service/admin"
	customersvc "bdshop/internal/service/customer"
	ordersvc "bdshop/internal/service/order"
	productsvc "bdshop/internal/service/product"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type productService interface {
	List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)
	ListPublic(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)
	ListAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetPublic(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error)
	AddImages(ctx context.Context, id string, uploads []productsvc.Upload) (*domain.Product, []string, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, key string) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type wishlistService interface {
	Get(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	Add(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error)
	Remove(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error)
	Contains(ctx context.Context, sessionID, productID string) (bool, error)
	MoveToCart(ctx context.Context, sessionID, productID string) (*domain.Wishlist, *domain.Cart, error)
}

type orderService interface {
	Checkout(ctx context.Context, sessionID string, customerID *string, in ordersvc.CheckoutInput, idempotencyKey string) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error)
	ListAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

type customerAuthService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type adminService interface {
	Login(password string) (string, time.Time, error)
	Verify(token string) (*admin.Claims, error)
	Summary(ctx context.Context) (*admin.Summary, error)
}

// Deps are the services the router needs.
type Deps struct {
	DB          Pinger
	Sessions    Pinger
	ProductSvc  productService
	CategorySvc categoryService
	CartSvc     cartService
	WishlistSvc wishlistService
	OrderSvc    orderService
	CustomerSvc customerAuthService
	AdminSvc    adminService
	// OrderFeed serves the admin websocket feed; nil disables the route.
	OrderFeed http.Handler

	CORSOrigins           []string
	CheckoutRatePerMinute int
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("product service required")
	case d.CategorySvc == nil:
		return errors.New("category service required")
	case d.CartSvc == nil:
		return errors.New("cart service required")
	case d.WishlistSvc == nil:
		return errors.New("wishlist service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.CustomerSvc == nil:
		return errors.New("customer service required")
	case d.AdminSvc == nil:
		return errors.New("admin service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = 16 << 20
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB, deps.Sessions))

	h := &handlers{deps: deps, logger: logger}
	checkoutLimit := rateLimit(perMinute(deps.CheckoutRatePerMinute), 3)
	loginLimit := rateLimit(perMinute(10), 5)

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.SecureCookies), optionalCustomer(deps.CustomerSvc))

	api.GET("/categories", h.listCategories)
	api.GET("/categories/:key/products", h.listCategoryProducts)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.PATCH("/cart/items/:productId", h.updateCartItem)
	api.DELETE("/cart/items/:productId", h.removeCartItem)
	api.DELETE("/cart", h.clearCart)

	api.GET("/wishlist", h.getWishlist)
	api.POST("/wishlist/items", h.addWishlistItem)
	api.GET("/wishlist/items/:productId", h.wishlistContains)
	api.DELETE("/wishlist/items/:productId", h.removeWishlistItem)
	api.POST("/wishlist/items/:productId/move-to-cart", h.moveWishlistItemToCart)

	api.POST("/checkout", checkoutLimit, h.checkout)
	api.GET("/orders/:id", h.getOrder)

	auth := api.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/login", loginLimit, h.login)
	auth.POST("/logout", requireCustomer(), h.logout)
	auth.GET("/me", requireCustomer(), h.me)
	auth.GET("/me/orders", requireCustomer(), h.myOrders)

	router.POST("/api/admin/login", rateLimit(perMinute(10), 5), h.adminLogin)
	adm := router.Group("/api/admin", requireAdmin(deps.AdminSvc))
	adm.GET("/summary", h.adminSummary)
	adm.GET("/products", h.adminListProducts)
	adm.POST("/products", h.adminCreateProduct)
	adm.GET("/products/:id", h.adminGetProduct)
	adm.PUT("/products/:id", h.adminUpdateProduct)
	adm.DELETE("/products/:id", h.adminDeleteProduct)
	adm.PATCH("/products/:id/stock", h.adminAdjustStock)
	adm.POST("/products/:id/images", h.adminUploadImages)
	adm.PUT("/categories/:key", h.adminUpsertCategory)
	adm.GET("/orders", h.adminListOrders)
	adm.GET("/orders/:id", h.adminGetOrder)
	adm.PATCH("/orders/:id/status", h.adminUpdateOrderStatus)
	adm.GET("/export/products.xlsx", h.exportProducts)
	adm.GET("/export/orders.xlsx", h.exportOrders)
	if deps.OrderFeed != nil {
		adm.GET("/ws/orders", gin.WrapH(deps.OrderFeed))
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", sessionHeader, "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", sessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Browsers reject credentials with a wildcard origin; sessions then
		// travel in the session header instead of the cookie.
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
