package repository

import "context"

// StockRow fila de stock a insertar o actualizar en un lote.
type StockRow struct {
	ProductID int64
	Quantity  int
}

// StockRepository puerto de persistencia del stock por sucursal.
type StockRepository interface {
	// Get devuelve la cantidad actual de un producto en una sucursal (0 si no hay fila).
	Get(ctx context.Context, productID int64, sucursal string) (int, error)

	// ByProduct devuelve el stock de un producto en todas las sucursales (slug -> cantidad).
	ByProduct(ctx context.Context, productID int64) (map[string]int, error)

	// TotalStock devuelve la suma del stock de un producto en todas las sucursales.
	TotalStock(ctx context.Context, productID int64) (int, error)

	// CurrentFor devuelve el estado persistido para el cruce de productos y sucursales
	// indicado: productID -> slug -> cantidad. Las filas inexistentes no aparecen.
	CurrentFor(ctx context.Context, productIDs []int64, sucursales []string) (map[int64]map[string]int, error)

	// UpsertBatch inserta o actualiza en un solo statement las filas de una sucursal.
	// updated_at solo se refresca cuando la cantidad entrante difiere de la guardada.
	UpsertBatch(ctx context.Context, sucursal string, rows []StockRow) error

	// RefreshAggregates recalcula total_stock y stock_status de los productos indicados.
	RefreshAggregates(ctx context.Context, productIDs []int64) error

	// ProductsWithAvailableStock devuelve los productos con stock vendible (> stock mínimo)
	// en una sucursal.
	ProductsWithAvailableStock(ctx context.Context, sucursal string) ([]int64, error)
}
