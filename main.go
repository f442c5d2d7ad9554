package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"labequip/auth"
	"labequip/catalog"
	"labequip/config"
	"labequip/database"
	"labequip/report"
	"labequip/ui"
	"labequip/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("open store", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	shell := ui.New(os.Stdin, os.Stdout, logger,
		auth.NewService(db, logger),
		workflow.NewService(db, logger),
		catalog.NewService(db, logger),
		report.NewService(db),
	)
	if err := shell.Run(context.Background()); err != nil {
		logger.Fatal("shell", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	// Keep stdout free for the shells.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
