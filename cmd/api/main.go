package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/sucursal-sync/internal/application/sync"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sucursal-sync/internal/interfaces/http"
	"github.com/jhoicas/sucursal-sync/pkg/config"
	"github.com/jhoicas/sucursal-sync/pkg/logger"
)

func main() {
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
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	stockRepo := postgres.NewStockRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stateRepo := postgres.NewSyncStateRepository(pool)

	fetcher := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, log)
	syncUC := sync.NewUseCase(fetcher, stockRepo, productRepo, stateRepo, sync.Options{
		Sucursales:     cfg.Sync.Branches,
		LockTTL:        cfg.Sync.LockTTL,
		BatchSize:      cfg.Sync.BatchSize,
		AggregateStock: cfg.Sync.AggregateStock,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la corrida manual responde síncrona, dale aire
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SyncUC:     syncUC,
		Stocks:     stockRepo,
		Products:   productRepo,
		SyncState:  stateRepo,
		Sucursales: cfg.Sync.Branches,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
