package sync

import (
	"github.com/jhoicas/sucursal-sync/internal/domain/entity"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/shopspring/decimal"
)

// Cálculo de deltas: comparar el valor normalizado entrante contra el estado
// persistido y emitir solo lo que cambia. Los tres dominios (stock por
// sucursal, stock mínimo, precios) son independientes entre sí.

// minimumDelta cambio de stock mínimo de un producto.
type minimumDelta struct {
	ProductID int64
	Minimum   int
}

// priceDelta estado final de precios de un producto tocado en esta corrida.
// Se escribe completo (regular, oferta y efectivo) aunque solo haya cambiado
// uno de los dos, para que el efectivo nunca quede desfasado.
type priceDelta struct {
	ProductID     int64
	Regular       decimal.NullDecimal
	Sale          decimal.NullDecimal
	Effective     decimal.NullDecimal
	FieldsChanged int // campos regular/oferta que difieren del estado guardado
}

// stockDeltas agrupa por sucursal las filas cuyo valor entrante difiere del
// persistido. Una fila inexistente cuenta como distinta de cualquier entrante,
// incluido 0 (la primera vez siempre se materializa). Un campo de sucursal
// ausente en la entrada se salta sin forzar delta.
func stockDeltas(
	ids []int64,
	byProduct map[int64]catalog.Entry,
	sucursales []string,
	current map[int64]map[string]int,
) map[string][]repository.StockRow {
	deltas := make(map[string][]repository.StockRow)
	for _, pid := range ids {
		e := byProduct[pid]
		for _, slug := range sucursales {
			v, ok := e.Sucursales[slug]
			if !ok {
				continue
			}
			qty, ok := normalizeInt(v)
			if !ok {
				continue
			}
			cur, exists := current[pid][slug]
			if !exists || cur != qty {
				deltas[slug] = append(deltas[slug], repository.StockRow{ProductID: pid, Quantity: qty})
			}
		}
	}
	return deltas
}

// minimumDeltas compara el stockmin entrante contra el mínimo guardado.
// Sin registro previo se compara contra 0: mínimo implícito 0 y entrante 0 no
// producen delta.
func minimumDeltas(ids []int64, byProduct map[int64]catalog.Entry, current map[int64]int) []minimumDelta {
	var deltas []minimumDelta
	for _, pid := range ids {
		min, ok := normalizeInt(byProduct[pid].StockMin)
		if !ok {
			continue
		}
		if current[pid] != min {
			deltas = append(deltas, minimumDelta{ProductID: pid, Minimum: min})
		}
	}
	return deltas
}

// priceDeltas calcula los productos con algún precio tocado.
//   - regular: delta si precioventa normalizado difiere del guardado (o no hay guardado).
//   - oferta: delta si preciopromo > 0 difiere del guardado, o delta de limpieza
//     (oferta -> ausente) cuando el promo entrante es 0/ausente y hay oferta guardada.
//   - efectivo: se recalcula siempre que el producto fue tocado, aunque no cambie.
func priceDeltas(ids []int64, byProduct map[int64]catalog.Entry, current map[int64]entity.Prices) []priceDelta {
	var deltas []priceDelta
	for _, pid := range ids {
		e := byProduct[pid]
		cur := current[pid]
		next := cur
		changed := 0

		if r, ok := normalizePrice(e.PrecioVenta); ok {
			if !cur.Regular.Valid || !r.Equal(cur.Regular.Decimal) {
				next.Regular = decimal.NewNullDecimal(r)
				changed++
			}
		}

		if p, ok := normalizePrice(e.PrecioPromo); ok && p.GreaterThan(decimal.Zero) {
			if !cur.Sale.Valid || !p.Equal(cur.Sale.Decimal) {
				next.Sale = decimal.NewNullDecimal(p)
				changed++
			}
		} else if cur.Sale.Valid {
			// Promo entrante 0 o ausente con oferta vigente: limpiarla.
			next.Sale = decimal.NullDecimal{}
			changed++
		}

		if changed == 0 {
			continue
		}
		deltas = append(deltas, priceDelta{
			ProductID:     pid,
			Regular:       next.Regular,
			Sale:          next.Sale,
			Effective:     entity.EffectivePrice(next.Regular, next.Sale),
			FieldsChanged: changed,
		})
	}
	return deltas
}
