package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "Print pending migration SQL without executing it")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall migration timeout")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
	} else {
		logger.Info("Running database migrations...")
	}

	versions, err := db.Migrate(ctx, *dryRun, os.Stdout)
	if err != nil {
		logger.Fatalw("Failed to migrate database", "error", err)
	}

	if len(versions) == 0 {
		logger.Info("Database schema is up to date")
	}
	for _, v := range versions {
		logger.Infow("Migration applied", "version", v, "dry_run", *dryRun)
	}

	fmt.Println("Migration process completed")
}
