package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bdshop/internal/config"
	"bdshop/internal/db"
	"bdshop/internal/events"
	"bdshop/internal/httpserver"
	"bdshop/internal/logging"
	"bdshop/internal/media"
	categoryrepo "bdshop/internal/repository/category"
	customerrepo "bdshop/internal/repository/customer"
	orderrepo "bdshop/internal/repository/order"
	productrepo "bdshop/internal/repository/product"
	"bdshop/internal/repository/session"
	tokenrepo "bdshop/internal/repository/token"
	adminsvc "bdshop/internal/service/admin"
	cartsvc "bdshop/internal/service/cart"
	categorysvc "bdshop/internal/service/category"
	customersvc "bdshop/internal/service/customer"
	ordersvc "bdshop/internal/service/order"
	productsvc "bdshop/internal/service/product"
	wishlistsvc "bdshop/internal/service/wishlist"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg := config.FromEnv()
	logger := logging.New("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	sessions := newSessionStore(ctx, cfg, logger)

	hub := events.NewHub(&logger)
	defer hub.Close()
	publishers := events.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kafka.Close(); err != nil {
				logger.Warn().Err(err).Msg("close kafka writer")
			}
		}()
		publishers = append(publishers, kafka)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing order events to kafka")
	}

	var images productsvc.ImageStore
	if cfg.S3Bucket != "" {
		store, err := media.NewS3(ctx, cfg.S3Bucket, cfg.S3PublicBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("init image storage")
		}
		images = store
	} else {
		logger.Info().Msg("S3_BUCKET not set, product image upload disabled")
	}

	productRepo := productrepo.NewPostgres(dbpool, &logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, &logger)
	customerRepo := customerrepo.NewPostgres(dbpool, &logger)

	productService := productsvc.New(productRepo, categoryRepo, images, &logger)
	categoryService := categorysvc.New(categoryRepo)
	cartService := cartsvc.New(sessions, productRepo, cfg.SessionTTL)
	wishlistService := wishlistsvc.New(sessions, productRepo, cartService, cfg.SessionTTL)
	orderService := ordersvc.New(orderRepo, cartService, productRepo, sessions, publishers, &logger)
	customerService := customersvc.New(customerRepo, tokenrepo.NewPostgres(dbpool))
	adminService, err := adminsvc.New(cfg.AdminPassword, cfg.JWTSecret, productRepo, orderRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("init admin service")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		DB:                    dbpool,
		Sessions:              sessions,
		ProductSvc:            productService,
		CategorySvc:           categoryService,
		CartSvc:               cartService,
		WishlistSvc:           wishlistService,
		OrderSvc:              orderService,
		CustomerSvc:           customerService,
		AdminSvc:              adminService,
		OrderFeed:             hub,
		CORSOrigins:           cfg.CORSAllowedOrigins,
		CheckoutRatePerMinute: cfg.CheckoutRatePerMinute,
		SecureCookies:         cfg.SecureCookies,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

// newSessionStore returns a redis-backed store when REDIS_ADDR is set and an
// in-process one otherwise.
func newSessionStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, carts are kept in memory")
		mem := session.NewMemory()
		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := mem.Sweep(); n > 0 {
						logger.Debug().Int("expired", n).Msg("swept session entries")
					}
				}
			}
		}()
		return mem
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("connect to redis")
	}
	return session.NewRedis(rdb, "bdshop:")
}
