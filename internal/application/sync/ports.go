package sync

import (
	"context"

	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
)

// CatalogFetcher descarga el snapshot completo del catálogo remoto.
// Una sola llamada por corrida, sin reintentos.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]catalog.Entry, error)
}
