package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock por sucursal.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la cantidad actual de un producto en una sucursal. Sin fila: 0.
func (r *StockRepo) Get(ctx context.Context, productID int64, sucursal string) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`SELECT stock_quantity FROM sucursal_stock WHERE product_id = $1 AND sucursal_slug = $2`,
		productID, sucursal,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return qty, nil
}

// ByProduct devuelve el stock de un producto en todas las sucursales.
func (r *StockRepo) ByProduct(ctx context.Context, productID int64) (map[string]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT sucursal_slug, stock_quantity FROM sucursal_stock WHERE product_id = $1`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("stock por producto: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var slug string
		var qty int
		if err := rows.Scan(&slug, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[slug] = qty
	}
	return out, rows.Err()
}

// TotalStock suma el stock de un producto en todas las sucursales.
func (r *StockRepo) TotalStock(ctx context.Context, productID int64) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock_quantity), 0) FROM sucursal_stock WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("stock total: %w", err)
	}
	return total, nil
}

// CurrentFor carga en bloque el estado persistido para el cruce producto×sucursal.
func (r *StockRepo) CurrentFor(ctx context.Context, productIDs []int64, sucursales []string) (map[int64]map[string]int, error) {
	if len(productIDs) == 0 || len(sucursales) == 0 {
		return map[int64]map[string]int{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT product_id, sucursal_slug, stock_quantity
		 FROM sucursal_stock
		 WHERE product_id = ANY($1) AND sucursal_slug = ANY($2)`,
		productIDs, sucursales,
	)
	if err != nil {
		return nil, fmt.Errorf("consultar stock actual: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]map[string]int)
	for rows.Next() {
		var pid int64
		var slug string
		var qty int
		if err := rows.Scan(&pid, &slug, &qty); err != nil {
			return nil, fmt.Errorf("scan stock actual: %w", err)
		}
		if out[pid] == nil {
			out[pid] = make(map[string]int)
		}
		out[pid][slug] = qty
	}
	return out, rows.Err()
}

// UpsertBatch inserta o actualiza las filas de una sucursal en un solo statement.
// updated_at solo cambia cuando la cantidad entrante difiere de la guardada:
// un upsert sin efecto no toca el timestamp.
func (r *StockRepo) UpsertBatch(ctx context.Context, sucursal string, rows []repository.StockRow) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(rows)*2+1)
	args = append(args, sucursal)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "($%d, $1, $%d, now(), now())", len(args)+1, len(args)+2)
		args = append(args, row.ProductID, row.Quantity)
	}

	query := fmt.Sprintf(`
		INSERT INTO sucursal_stock (product_id, sucursal_slug, stock_quantity, created_at, updated_at)
		VALUES %s
		ON CONFLICT (product_id, sucursal_slug) DO UPDATE SET
			stock_quantity = EXCLUDED.stock_quantity,
			updated_at = CASE
				WHEN sucursal_stock.stock_quantity <> EXCLUDED.stock_quantity THEN now()
				ELSE sucursal_stock.updated_at
			END`, sb.String())

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// RefreshAggregates recalcula total_stock y stock_status de los productos dados.
func (r *StockRepo) RefreshAggregates(ctx context.Context, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	query := `
		UPDATE products p
		SET total_stock = sub.total,
		    stock_status = CASE WHEN sub.total > 0 THEN 'instock' ELSE 'outofstock' END,
		    updated_at = now()
		FROM (
			SELECT p2.id, COALESCE(SUM(s.stock_quantity), 0) AS total
			FROM products p2
			LEFT JOIN sucursal_stock s ON s.product_id = p2.id
			WHERE p2.id = ANY($1)
			GROUP BY p2.id
		) sub
		WHERE p.id = sub.id`
	if _, err := r.q.Exec(ctx, query, productIDs); err != nil {
		return fmt.Errorf("recalcular stock agregado: %w", err)
	}
	return nil
}

// ProductsWithAvailableStock devuelve los productos con stock vendible en la
// sucursal: cantidad > 0 y cantidad > stock mínimo del producto.
func (r *StockRepo) ProductsWithAvailableStock(ctx context.Context, sucursal string) ([]int64, error) {
	rows, err := r.q.Query(ctx,
		`SELECT s.product_id
		 FROM sucursal_stock s
		 JOIN products p ON p.id = s.product_id
		 WHERE s.sucursal_slug = $1
		   AND s.stock_quantity > 0
		   AND s.stock_quantity > p.min_stock
		 ORDER BY s.product_id`,
		sucursal,
	)
	if err != nil {
		return nil, fmt.Errorf("productos con stock disponible: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan producto disponible: %w", err)
		}
		ids = append(ids, pid)
	}
	return ids, rows.Err()
}
