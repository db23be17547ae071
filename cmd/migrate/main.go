package main

import (
	"context"
	"flag"

	"bdshop/internal/config"
	"bdshop/internal/db"
	"bdshop/internal/logging"
	"bdshop/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	cfg := config.FromEnv()
	logger := logging.New("migrate", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if *down {
		if err := migrate.Down(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("roll back migrations")
		}
		logger.Info().Msg("migrations rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")
}
