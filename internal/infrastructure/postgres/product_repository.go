package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-sync/internal/domain/entity"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de atributos de producto.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// SKUIndex devuelve el mapeo sku -> product_id de todos los productos con SKU
// no vacío. Los SKUs se comparan recortados de espacios.
func (r *ProductRepo) SKUIndex(ctx context.Context) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id, sku FROM products WHERE sku <> ''`)
	if err != nil {
		return nil, fmt.Errorf("consultar SKUs: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var id int64
		var sku string
		if err := rows.Scan(&id, &sku); err != nil {
			return nil, fmt.Errorf("scan SKU: %w", err)
		}
		if sku = strings.TrimSpace(sku); sku != "" {
			index[sku] = id
		}
	}
	return index, rows.Err()
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, regular_price, sale_price, effective_price,
		       min_stock, total_stock, stock_status, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.RegularPrice, &p.SalePrice, &p.EffectivePrice,
		&p.MinStock, &p.TotalStock, &p.StockStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// MinimumsFor devuelve el stock mínimo de los productos indicados.
func (r *ProductRepo) MinimumsFor(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	if len(productIDs) == 0 {
		return map[int64]int{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, min_stock FROM products WHERE id = ANY($1)`,
		productIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("consultar stock mínimo: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int, len(productIDs))
	for rows.Next() {
		var id int64
		var min int
		if err := rows.Scan(&id, &min); err != nil {
			return nil, fmt.Errorf("scan stock mínimo: %w", err)
		}
		out[id] = min
	}
	return out, rows.Err()
}

// SetMinimum actualiza el stock mínimo de un producto.
func (r *ProductRepo) SetMinimum(ctx context.Context, productID int64, minimum int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET min_stock = $2, updated_at = now() WHERE id = $1`,
		productID, minimum,
	)
	if err != nil {
		return fmt.Errorf("actualizar stock mínimo: %w", err)
	}
	return nil
}

// PricesFor devuelve precio regular y de oferta de los productos indicados.
func (r *ProductRepo) PricesFor(ctx context.Context, productIDs []int64) (map[int64]entity.Prices, error) {
	if len(productIDs) == 0 {
		return map[int64]entity.Prices{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, regular_price, sale_price FROM products WHERE id = ANY($1)`,
		productIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("consultar precios: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]entity.Prices, len(productIDs))
	for rows.Next() {
		var id int64
		var p entity.Prices
		if err := rows.Scan(&id, &p.Regular, &p.Sale); err != nil {
			return nil, fmt.Errorf("scan precios: %w", err)
		}
		out[id] = p
	}
	return out, rows.Err()
}

// SetPrices escribe regular, oferta y efectivo en un solo statement para que
// el precio efectivo nunca quede desfasado de los otros dos.
func (r *ProductRepo) SetPrices(ctx context.Context, productID int64, regular, sale, effective decimal.NullDecimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products
		 SET regular_price = $2, sale_price = $3, effective_price = $4, updated_at = now()
		 WHERE id = $1`,
		productID, regular, sale, effective,
	)
	if err != nil {
		return fmt.Errorf("actualizar precios: %w", err)
	}
	return nil
}
