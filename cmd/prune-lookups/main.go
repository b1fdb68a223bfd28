// Command prune-lookups deletes journal entries older than a retention window.
//
// Usage:
//
//	prune-lookups [-older-than 720h]
//
// Uses the gateway configuration (CONFIG_PATH / DATABASE_DSN) to reach the
// journal database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/postgres"
	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/tezaurs-gateway/internal/app"
	"github.com/heartmarshall/tezaurs-gateway/internal/config"
)

func main() {
	olderThan := flag.Duration("older-than", 30*24*time.Hour, "delete lookups older than this")
	flag.Parse()

	if *olderThan <= 0 {
		log.Fatal("-older-than must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN is required")
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cutoff := time.Now().Add(-*olderThan)
	deleted, err := lookup.New(pool).DeleteBefore(ctx, cutoff)
	if err != nil {
		logger.Error("prune lookups", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("pruned lookups", slog.Int64("deleted", deleted), slog.Time("cutoff", cutoff))
	fmt.Printf("Deleted %d lookups created before %s.\n", deleted, cutoff.UTC().Format(time.RFC3339))
}
