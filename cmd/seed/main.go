package main

import (
	"context"

	"bdshop/internal/config"
	"bdshop/internal/db"
	"bdshop/internal/logging"
	"bdshop/internal/repository/category"
	"bdshop/internal/repository/product"
	"bdshop/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("seed", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := seed.Apply(ctx, category.NewPostgres(pool), product.NewPostgres(pool, &logger)); err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Int("categories", len(seed.Categories)).Int("products", len(seed.Products)).Msg("seed applied")
}
