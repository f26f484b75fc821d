package sync

import (
	"testing"

	"github.com/jhoicas/sucursal-sync/internal/domain/entity"
	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrada(codigo string, sucursales map[string]catalog.Value) catalog.Entry {
	if sucursales == nil {
		sucursales = map[string]catalog.Value{}
	}
	return catalog.Entry{Codigo: codigo, Sucursales: sucursales}
}

func precio(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NewNullDecimal(d)
}

// ── resolución ────────────────────────────────────────────────────────────────

func TestResolve_CodigosVaciosYDesconocidosSeDescartan(t *testing.T) {
	index := map[string]int64{"A1": 10}
	entries := []catalog.Entry{
		entrada("", nil),
		entrada("NOEXISTE", nil),
		entrada("A1", nil),
	}
	r := resolve(entries, index)
	assert.Len(t, r.byProduct, 1)
	assert.Equal(t, 1, r.matched)
}

func TestResolve_UltimaEntradaGana(t *testing.T) {
	index := map[string]int64{"A1": 10}
	primera := entrada("A1", map[string]catalog.Value{"stock_espana": val("5")})
	segunda := entrada("A1", map[string]catalog.Value{"stock_espana": val("9")})

	r := resolve([]catalog.Entry{primera, segunda}, index)
	require.Len(t, r.byProduct, 1)
	assert.Equal(t, "9", r.byProduct[10].Sucursales["stock_espana"].Raw)
	assert.Equal(t, 2, r.matched, "el conteo de coincidencias incluye repetidos")
}

func TestResolve_IDsOrdenados(t *testing.T) {
	index := map[string]int64{"A": 30, "B": 10, "C": 20}
	r := resolve([]catalog.Entry{entrada("A", nil), entrada("B", nil), entrada("C", nil)}, index)
	assert.Equal(t, []int64{10, 20, 30}, r.productIDs())
}

// ── deltas de stock ───────────────────────────────────────────────────────────

// Escenario: entrada con stock "10" en una sucursal y campo vacío en la otra,
// sin registro previo. Debe salir un solo delta (el campo vacío se salta).
func TestStockDeltas_CampoVacioSeSalta(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		123: entrada("123", map[string]catalog.Value{
			"stock_espana": val("10"),
			"stock_sanber": val(""),
		}),
	}
	deltas := stockDeltas([]int64{123}, byProduct, []string{"stock_espana", "stock_sanber"}, nil)

	require.Len(t, deltas["stock_espana"], 1)
	assert.Equal(t, int64(123), deltas["stock_espana"][0].ProductID)
	assert.Equal(t, 10, deltas["stock_espana"][0].Quantity)
	assert.Empty(t, deltas["stock_sanber"], "campo ausente no fuerza delta")
}

// Una fila inexistente cuenta como distinta de cualquier entrante, incluido 0.
func TestStockDeltas_PrimeraVezFuerzaDelta(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		5: entrada("5", map[string]catalog.Value{"stock_espana": val("0")}),
	}
	deltas := stockDeltas([]int64{5}, byProduct, []string{"stock_espana"}, map[int64]map[string]int{})

	require.Len(t, deltas["stock_espana"], 1)
	assert.Equal(t, 0, deltas["stock_espana"][0].Quantity)
}

// Idempotencia: si el estado persistido ya coincide, no hay deltas.
func TestStockDeltas_SinCambiosNoEmiteNada(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		5: entrada("5", map[string]catalog.Value{"stock_espana": val("7"), "stock_sanber": val("3,0")}),
	}
	current := map[int64]map[string]int{
		5: {"stock_espana": 7, "stock_sanber": 3},
	}
	deltas := stockDeltas([]int64{5}, byProduct, []string{"stock_espana", "stock_sanber"}, current)
	assert.Empty(t, deltas)
}

func TestStockDeltas_SucursalNoConfiguradaSeIgnora(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		5: entrada("5", map[string]catalog.Value{"stock_otra": val("9")}),
	}
	deltas := stockDeltas([]int64{5}, byProduct, []string{"stock_espana"}, nil)
	assert.Empty(t, deltas)
}

// ── deltas de stock mínimo ────────────────────────────────────────────────────

// Sin registro previo el mínimo implícito es 0: entrante "0" no produce delta.
func TestMinimumDeltas_CeroContraImplicitoCero(t *testing.T) {
	byProduct := map[int64]catalog.Entry{5: {Codigo: "5", StockMin: val("0")}}
	deltas := minimumDeltas([]int64{5}, byProduct, map[int64]int{})
	assert.Empty(t, deltas)
}

func TestMinimumDeltas_CambioYAusencia(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		1: {Codigo: "1", StockMin: val("5")},
		2: {Codigo: "2", StockMin: ausente()},
		3: {Codigo: "3", StockMin: val("2")},
	}
	current := map[int64]int{1: 2, 2: 9, 3: 2}

	deltas := minimumDeltas([]int64{1, 2, 3}, byProduct, current)
	require.Len(t, deltas, 1, "solo el producto 1 cambia; el 2 no trae campo y el 3 ya coincide")
	assert.Equal(t, int64(1), deltas[0].ProductID)
	assert.Equal(t, 5, deltas[0].Minimum)
}

// ── deltas de precios ─────────────────────────────────────────────────────────

// Escenario: oferta guardada 9.99 y promo entrante vacío. Debe salir un delta
// de limpieza y el efectivo vuelve al precio regular.
func TestPriceDeltas_PromoVacioLimpiaOferta(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		7: {Codigo: "7", PrecioVenta: val("20.00"), PrecioPromo: val("")},
	}
	current := map[int64]entity.Prices{
		7: {Regular: precio("20.00"), Sale: precio("9.99")},
	}

	deltas := priceDeltas([]int64{7}, byProduct, current)
	require.Len(t, deltas, 1)
	d := deltas[0]
	assert.False(t, d.Sale.Valid, "la oferta debe quedar ausente")
	require.True(t, d.Effective.Valid)
	assert.Equal(t, "20.00", d.Effective.Decimal.StringFixed(2), "el efectivo vuelve al regular")
	assert.Equal(t, 1, d.FieldsChanged)
}

func TestPriceDeltas_PromoCeroTambienLimpia(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		7: {Codigo: "7", PrecioPromo: val("0")},
	}
	current := map[int64]entity.Prices{
		7: {Regular: precio("15.00"), Sale: precio("9.99")},
	}
	deltas := priceDeltas([]int64{7}, byProduct, current)
	require.Len(t, deltas, 1)
	assert.False(t, deltas[0].Sale.Valid)
}

// Ley del precio efectivo: oferta vigente y > 0 manda; si no, el regular.
func TestPriceDeltas_LeyPrecioEfectivo(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		1: {Codigo: "1", PrecioVenta: val("20"), PrecioPromo: val("15,50")},
	}
	deltas := priceDeltas([]int64{1}, byProduct, map[int64]entity.Prices{})
	require.Len(t, deltas, 1)
	d := deltas[0]
	assert.Equal(t, 2, d.FieldsChanged)
	assert.Equal(t, "20.00", d.Regular.Decimal.StringFixed(2))
	assert.Equal(t, "15.50", d.Sale.Decimal.StringFixed(2))
	assert.Equal(t, "15.50", d.Effective.Decimal.StringFixed(2))
}

// Si nada difiere del estado guardado no se toca el producto (y por lo tanto
// tampoco se recalcula el efectivo).
func TestPriceDeltas_SinCambiosNoTocaNada(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		1: {Codigo: "1", PrecioVenta: val("20.00"), PrecioPromo: val("15.50")},
	}
	current := map[int64]entity.Prices{
		1: {Regular: precio("20.00"), Sale: precio("15.50")},
	}
	deltas := priceDeltas([]int64{1}, byProduct, current)
	assert.Empty(t, deltas)
}

func TestPriceDeltas_RegularNuevoSinPromo(t *testing.T) {
	byProduct := map[int64]catalog.Entry{
		1: {Codigo: "1", PrecioVenta: val("12,00")},
	}
	deltas := priceDeltas([]int64{1}, byProduct, map[int64]entity.Prices{})
	require.Len(t, deltas, 1)
	d := deltas[0]
	assert.Equal(t, 1, d.FieldsChanged)
	assert.False(t, d.Sale.Valid)
	assert.Equal(t, "12.00", d.Effective.Decimal.StringFixed(2))
}
