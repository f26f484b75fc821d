package http

import (
	"github.com/gofiber/fiber/v2"
	syncapp "github.com/jhoicas/sucursal-sync/internal/application/sync"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
)

// RouterDeps dependencias de los handlers.
type RouterDeps struct {
	SyncUC     *syncapp.UseCase
	Stocks     repository.StockRepository
	Products   repository.ProductRepository
	SyncState  repository.SyncStateRepository
	Sucursales []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	syncHandler := NewSyncHandler(deps.SyncUC, deps.SyncState)
	stockHandler := NewStockHandler(deps.Stocks, deps.Products, deps.Sucursales)

	api := app.Group("/api")

	// Sincronización: disparo manual y log de la última corrida.
	api.Post("/sync", syncHandler.RunManual)
	api.Get("/sync/logs", syncHandler.LastRunLogs)
	api.Delete("/sync/logs", syncHandler.ClearRunLogs)

	// Consulta del ledger para consumidores aguas abajo.
	api.Get("/products/:id/stock", stockHandler.ProductStock)
	api.Get("/products/:id/stock/:sucursal", stockHandler.BranchStock)
	api.Get("/sucursales/:sucursal/disponibles", stockHandler.AvailableProducts)
}
