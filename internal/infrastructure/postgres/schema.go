package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema crea las tablas si no existen. Se invoca al arranque de ambos
// binarios; es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id              BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			sku             TEXT NOT NULL DEFAULT '',
			name            TEXT NOT NULL DEFAULT '',
			regular_price   NUMERIC(12,2),
			sale_price      NUMERIC(12,2),
			effective_price NUMERIC(12,2),
			min_stock       INT NOT NULL DEFAULT 0,
			total_stock     INT NOT NULL DEFAULT 0,
			stock_status    TEXT NOT NULL DEFAULT 'outofstock',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_sku ON products (sku) WHERE sku <> ''`,
		`CREATE TABLE IF NOT EXISTS sucursal_stock (
			id             BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			product_id     BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			sucursal_slug  VARCHAR(100) NOT NULL,
			stock_quantity INT NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (product_id, sucursal_slug)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sucursal_stock_slug ON sucursal_stock (sucursal_slug)`,
		`CREATE TABLE IF NOT EXISTS sync_state (
			key        TEXT PRIMARY KEY,
			value      JSONB,
			expires_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
