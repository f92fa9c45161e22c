package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quiz-import/internal/config"
	"quiz-import/internal/database"
	"quiz-import/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "revert the most recently applied migration")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *down {
		if err := database.RollbackLast(ctx, db, l); err != nil {
			l.Fatal("Failed to revert migration", zap.Error(err))
		}
		return
	}
	if err := database.RunMigrations(ctx, db, l); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
