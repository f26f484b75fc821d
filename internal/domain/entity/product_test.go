package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NewNullDecimal(d)
}

func TestEffectivePrice(t *testing.T) {
	ninguno := decimal.NullDecimal{}

	casos := []struct {
		nombre   string
		regular  decimal.NullDecimal
		sale     decimal.NullDecimal
		esperado decimal.NullDecimal
	}{
		{"oferta vigente gana", dec("20.00"), dec("15.00"), dec("15.00")},
		{"sin oferta rige el regular", dec("20.00"), ninguno, dec("20.00")},
		{"oferta en cero no aplica", dec("20.00"), dec("0"), dec("20.00")},
		{"sin ningún precio queda ausente", ninguno, ninguno, ninguno},
		{"solo oferta", ninguno, dec("9.99"), dec("9.99")},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := EffectivePrice(c.regular, c.sale)
			assert.Equal(t, c.esperado.Valid, got.Valid)
			if c.esperado.Valid {
				assert.True(t, c.esperado.Decimal.Equal(got.Decimal))
			}
		})
	}
}

func TestBranchStockAvailable(t *testing.T) {
	s := BranchStock{Quantity: 10}
	assert.Equal(t, 7, s.Available(3))
	assert.Equal(t, 10, s.Available(0))
	assert.Equal(t, 0, s.Available(10), "igual al mínimo no es vendible")
	assert.Equal(t, 0, s.Available(15), "nunca negativo")
}
