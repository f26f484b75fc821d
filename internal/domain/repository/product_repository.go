package repository

import (
	"context"

	"github.com/jhoicas/sucursal-sync/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository puerto de lectura/escritura de atributos de producto.
type ProductRepository interface {
	// SKUIndex devuelve el mapeo sku -> product_id de todos los productos con SKU no vacío.
	SKUIndex(ctx context.Context) (map[string]int64, error)

	// GetByID obtiene un producto por ID (nil si no existe).
	GetByID(ctx context.Context, id int64) (*entity.Product, error)

	// MinimumsFor devuelve el stock mínimo de los productos indicados.
	MinimumsFor(ctx context.Context, productIDs []int64) (map[int64]int, error)

	// SetMinimum actualiza el stock mínimo de un producto.
	SetMinimum(ctx context.Context, productID int64, minimum int) error

	// PricesFor devuelve precio regular y de oferta de los productos indicados.
	PricesFor(ctx context.Context, productIDs []int64) (map[int64]entity.Prices, error)

	// SetPrices escribe regular, oferta y precio efectivo en un solo statement,
	// para que el efectivo nunca quede desfasado de los otros dos.
	SetPrices(ctx context.Context, productID int64, regular, sale, effective decimal.NullDecimal) error
}
