package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock agregado del producto.
const (
	StockStatusInStock    = "instock"
	StockStatusOutOfStock = "outofstock"
)

// Product representa un producto del catálogo local. El stock por sucursal vive
// en BranchStock; TotalStock y StockStatus son el agregado derivado que el job
// de sincronización mantiene al día.
type Product struct {
	ID             int64
	SKU            string // código que empareja con el campo codigo de la API
	Name           string
	RegularPrice   decimal.NullDecimal
	SalePrice      decimal.NullDecimal
	EffectivePrice decimal.NullDecimal
	MinStock       int
	TotalStock     int
	StockStatus    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Prices precio regular y de oferta de un producto. Ambos pueden estar ausentes.
type Prices struct {
	Regular decimal.NullDecimal
	Sale    decimal.NullDecimal
}

// EffectivePrice devuelve el precio vigente: el de oferta si existe y es mayor
// que cero, si no el regular. Ausente cuando no hay ningún precio aplicable.
func EffectivePrice(regular, sale decimal.NullDecimal) decimal.NullDecimal {
	if sale.Valid && sale.Decimal.GreaterThan(decimal.Zero) {
		return sale
	}
	return regular
}
