package catalog

import (
	"encoding/json"
	"strings"
)

// Value campo numérico laxo de la API: puede venir como string, número o null.
// Se conserva la representación cruda; la normalización la hace el job de sync.
type Value struct {
	Raw     string
	Present bool
}

// UnmarshalJSON acepta string, número o null sin fallar.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Value{Raw: s, Present: true}
		return nil
	}
	// Número, booleano u otro literal: se guarda tal cual.
	*v = Value{Raw: string(b), Present: true}
	return nil
}

// Entry un artículo del snapshot remoto. Los campos fijos son codigo, stockmin,
// precioventa y preciopromo; cualquier otra clave se interpreta como el stock de
// una sucursal (la API trae una clave por sucursal configurada).
type Entry struct {
	Codigo      string
	StockMin    Value
	PrecioVenta Value
	PrecioPromo Value
	Sucursales  map[string]Value
}

// UnmarshalJSON separa los campos conocidos del resto de claves (sucursales).
func (e *Entry) UnmarshalJSON(b []byte) error {
	var fields map[string]Value
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	e.Sucursales = make(map[string]Value, len(fields))
	for k, v := range fields {
		switch k {
		case "codigo":
			e.Codigo = strings.TrimSpace(v.Raw)
		case "stockmin":
			e.StockMin = v
		case "precioventa":
			e.PrecioVenta = v
		case "preciopromo":
			e.PrecioPromo = v
		default:
			e.Sucursales[k] = v
		}
	}
	return nil
}
