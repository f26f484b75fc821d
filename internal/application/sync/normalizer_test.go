package sync

import (
	"testing"

	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func val(raw string) catalog.Value {
	return catalog.Value{Raw: raw, Present: true}
}

func ausente() catalog.Value {
	return catalog.Value{}
}

// La API entrega números como string con separador decimal coma o punto, a
// veces con separador de miles. Ambas variantes deben normalizar igual.
func TestNormalizeDecimal_FormatosDeLocale(t *testing.T) {
	casos := []struct {
		nombre   string
		raw      string
		esperado string
	}{
		{"punto decimal", "1234.56", "1234.56"},
		{"coma decimal con miles", "1.234,56", "1234.56"},
		{"punto decimal con miles", "1,234.56", "1234.56"},
		{"coma decimal simple", "12,5", "12.5"},
		{"entero", "42", "42"},
		{"con espacios", "  7,25  ", "7.25"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			d, ok := normalizeDecimal(val(c.raw))
			require.True(t, ok, "el valor %q debe normalizar", c.raw)
			assert.Equal(t, c.esperado, d.String())
		})
	}
}

func TestNormalizeDecimal_AusenteYVacio(t *testing.T) {
	_, ok := normalizeDecimal(ausente())
	assert.False(t, ok, "campo ausente debe reportarse como ausente")

	_, ok = normalizeDecimal(val(""))
	assert.False(t, ok, "string vacío debe reportarse como ausente")

	_, ok = normalizeDecimal(val("   "))
	assert.False(t, ok, "solo espacios debe reportarse como ausente")
}

// Un valor no numérico nunca lanza error: se salta solo ese campo.
func TestNormalizeDecimal_NoNumericoEsAusente(t *testing.T) {
	_, ok := normalizeDecimal(val("n/a"))
	assert.False(t, ok)

	_, ok = normalizeDecimal(val("1,234,567"))
	assert.False(t, ok, "múltiples comas sin punto no es un número válido")
}

// Cantidades, mínimos y precios nunca quedan negativos tras normalizar.
func TestNormalizeDecimal_NegativoSeLlevaACero(t *testing.T) {
	d, ok := normalizeDecimal(val("-3"))
	require.True(t, ok)
	assert.True(t, d.IsZero())
}

func TestNormalizeInt_RedondeoMitadLejosDeCero(t *testing.T) {
	casos := []struct {
		raw      string
		esperado int
	}{
		{"10", 10},
		{"10.4", 10},
		{"10.5", 11},
		{"2,5", 3},
		{"0", 0},
	}
	for _, c := range casos {
		n, ok := normalizeInt(val(c.raw))
		require.True(t, ok, "el valor %q debe normalizar", c.raw)
		assert.Equal(t, c.esperado, n, "redondeo de %q", c.raw)
	}
}

func TestNormalizePrice_DosDecimalesFijos(t *testing.T) {
	p, ok := normalizePrice(val("9.5"))
	require.True(t, ok)
	assert.Equal(t, "9.50", p.StringFixed(2))

	p, ok = normalizePrice(val("19.999"))
	require.True(t, ok)
	assert.Equal(t, "20.00", p.StringFixed(2))

	p, ok = normalizePrice(val("1.234,56"))
	require.True(t, ok)
	assert.Equal(t, "1234.56", p.StringFixed(2))
}
