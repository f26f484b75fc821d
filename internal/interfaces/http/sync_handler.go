package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-sync/internal/application/dto"
	syncapp "github.com/jhoicas/sucursal-sync/internal/application/sync"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
)

// SyncHandler maneja el disparo manual de sincronización y el log de la última corrida.
type SyncHandler struct {
	uc    *syncapp.UseCase
	state repository.SyncStateRepository
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *syncapp.UseCase, state repository.SyncStateRepository) *SyncHandler {
	return &SyncHandler{uc: uc, state: state}
}

// RunManual dispara una corrida manual de forma síncrona y devuelve el log
// completo. La corrida nunca propaga errores: un fallo interno vuelve como
// Failed=true con el detalle en el log, no como 5xx.
func (h *SyncHandler) RunManual(c *fiber.Ctx) error {
	report := h.uc.Run(c.Context(), true)
	return c.JSON(dto.SyncRunResponse{
		RunID:           report.RunID,
		Failed:          report.Failed,
		Skipped:         report.Skipped,
		MatchedProducts: report.MatchedProducts,
		StockUpdates:    report.StockUpdates,
		MinimumUpdates:  report.MinimumUpdates,
		PriceUpdates:    report.PriceUpdates,
		Logs:            report.Log,
	})
}

// LastRunLogs devuelve el log persistido de la última corrida.
func (h *SyncHandler) LastRunLogs(c *fiber.Ctx) error {
	lines, err := h.state.LastRunLog(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if lines == nil {
		lines = []string{}
	}
	return c.JSON(dto.SyncLogsResponse{Logs: lines})
}

// ClearRunLogs borra el slot del log (acción de operador).
func (h *SyncHandler) ClearRunLogs(c *fiber.Ctx) error {
	if err := h.state.ClearRunLog(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "logs limpiados"})
}
