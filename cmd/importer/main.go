package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bdshop/internal/config"
	"bdshop/internal/db"
	"bdshop/internal/importer"
	"bdshop/internal/logging"
	"bdshop/internal/repository/category"
	"bdshop/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a product or category CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logging.New("importer", cfg.LogLevel)
	ctx := context.Background()

	kind, err := detect(filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", filePath).Msg("inspect csv")
	}

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, &logger), category.NewPostgres(pool))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", count).Msg("import failed")
	}

	fmt.Printf("Imported %d %s in %s\n", count, kind, time.Since(start).Truncate(time.Millisecond))
}

func detect(path string) (importer.Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return importer.DetectKind(f)
}
