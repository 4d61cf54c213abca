package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"food-storefront/bot"
	"food-storefront/catalog"
	"food-storefront/catalogstub"
	"food-storefront/config"
	"food-storefront/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Check for catalog-stub subcommand
	if len(os.Args) > 1 && os.Args[1] == "catalog-stub" {
		if err := runCatalogStub(ctx, cfg, logger); err != nil {
			logger.Errorw("catalog stub", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runBot(ctx, cfg, logger); err != nil {
		logger.Errorw("bot", "error", err)
		os.Exit(1)
	}
}

func newLogger(env string) *zap.SugaredLogger {
	if env == "development" {
		return zap.Must(zap.NewDevelopment()).Sugar()
	}
	return zap.Must(zap.NewProduction()).Sugar()
}

func runBot(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) error {
	seed, err := services.MockAccounts()
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	dir, err := services.NewDirectory(seed, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("user directory: %w", err)
	}
	auth := services.NewAuth(dir, services.NewLoginThrottle())

	cat := catalog.New(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	b, err := bot.New(cfg, cat, auth, logger)
	if err != nil {
		return err
	}
	logger.Infow("starting storefront", "catalog", cfg.Catalog.BaseURL, "accounts", len(dir.Accounts()))
	return b.Run(ctx)
}

func runCatalogStub(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) error {
	store, err := catalogstub.Load()
	if err != nil {
		return err
	}
	return catalogstub.Run(ctx, cfg.Stub.Addr, catalogstub.Handler(store, logger), logger)
}
