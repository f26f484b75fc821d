// Comando sync: una corrida del job de sincronización de stock por sucursal,
// pensado para cron del servidor (*/5 * * * *). Es el único borde del sistema
// que señala el resultado por exit code: 0 éxito o corrida saltada, 1 fallo.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/sucursal-sync/internal/application/sync"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/sucursal-sync/pkg/config"
	"github.com/jhoicas/sucursal-sync/pkg/logger"
)

func main() {
	manual := flag.Bool("manual", false, "corrida manual: salta el chequeo de lock y reinicia el log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Bool("manual", *manual).
		Msg("iniciando job de sincronización")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Error().Err(err).Msg("esquema de base de datos")
		os.Exit(1)
	}

	fetcher := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, log)
	uc := sync.NewUseCase(
		fetcher,
		postgres.NewStockRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewSyncStateRepository(pool),
		sync.Options{
			Sucursales:     cfg.Sync.Branches,
			LockTTL:        cfg.Sync.LockTTL,
			BatchSize:      cfg.Sync.BatchSize,
			AggregateStock: cfg.Sync.AggregateStock,
		},
		log,
	)

	report := uc.Run(ctx, *manual)
	if report.Failed {
		log.Error().Str("corrida", report.RunID).Err(report.Err).Msg("sincronización fallida")
		os.Exit(1)
	}

	log.Info().
		Str("corrida", report.RunID).
		Bool("saltada", report.Skipped).
		Int("stock", report.StockUpdates).
		Int("minimos", report.MinimumUpdates).
		Int("precios", report.PriceUpdates).
		Msg("sincronización terminada")
}
