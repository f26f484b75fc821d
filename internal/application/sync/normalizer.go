package sync

import (
	"strings"

	"github.com/jhoicas/sucursal-sync/internal/infrastructure/catalog"
	"github.com/shopspring/decimal"
)

// Normalización de los campos numéricos laxos de la API. Nunca falla: un campo
// ausente, vacío o no numérico se reporta como ausente (ok=false) y el valor
// previo queda intacto para ese producto en esa corrida.

// normalizeDecimal convierte el campo a decimal. Acepta separador decimal coma
// o punto; cuando aparecen ambos, el de más a la derecha es el decimal y el
// otro se descarta como separador de miles ("1.234,56" y "1234.56" -> 1234.56).
// Los negativos se llevan a cero: cantidades, mínimos y precios nunca lo son.
func normalizeDecimal(v catalog.Value) (decimal.Decimal, bool) {
	if !v.Present {
		return decimal.Decimal{}, false
	}
	s := strings.TrimSpace(v.Raw)
	if s == "" {
		return decimal.Decimal{}, false
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.IsNegative() {
		return decimal.Zero, true
	}
	return d, true
}

// normalizeInt convierte el campo a entero redondeando mitad-lejos-de-cero
// (cantidades de stock y stock mínimo; la columna es entera).
func normalizeInt(v catalog.Value) (int, bool) {
	d, ok := normalizeDecimal(v)
	if !ok {
		return 0, false
	}
	return int(d.Round(0).IntPart()), true
}

// normalizePrice convierte el campo a precio de exactamente 2 decimales.
func normalizePrice(v catalog.Value) (decimal.Decimal, bool) {
	d, ok := normalizeDecimal(v)
	if !ok {
		return decimal.Decimal{}, false
	}
	return d.Round(2), true
}
