package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/storelocator/internal/billing"
	"github.com/dmitrymomot/storelocator/internal/db"
	"github.com/dmitrymomot/storelocator/internal/httpapi"
	"github.com/dmitrymomot/storelocator/internal/importer"
	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/internal/tenant"
	"github.com/dmitrymomot/storelocator/pkg/config"
	"github.com/dmitrymomot/storelocator/pkg/httpserver"
	"github.com/dmitrymomot/storelocator/pkg/logger"
	"github.com/dmitrymomot/storelocator/pkg/pg"
	"github.com/dmitrymomot/storelocator/pkg/token"
)

type appConfig struct {
	Log     logger.Config
	PG      pg.Config
	Shopify shopify.Config
	Token   token.Config
	Billing billing.Config
	API     httpapi.Config
	Server  httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg.Log)
	config.MustLoad(&cfg.PG)
	config.MustLoad(&cfg.Shopify)
	config.MustLoad(&cfg.Token)
	config.MustLoad(&cfg.Billing)
	config.MustLoad(&cfg.API)
	config.MustLoad(&cfg.Server)

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("app", "storelocator")))

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, db.Migrations, "migrations", log); err != nil {
		return err
	}

	codec, err := token.NewFromConfig(cfg.Token)
	if err != nil {
		return err
	}

	tenants := tenant.NewStore(pool)
	clients := shopify.NewFactory(cfg.Shopify)

	billingSvc := billing.NewService(tenants, clients, codec, cfg.Billing, log)
	importSvc := importer.NewService(tenants, clients, codec, log)

	handler := httpapi.NewHandler(importSvc, billingSvc, pg.Healthcheck(pool), cfg.API, log)

	return httpserver.New(cfg.Server, log).Run(ctx, handler.Router())
}
