package entity

import "time"

// BranchStock representa el stock actual de un producto en una sucursal.
// La ausencia de fila equivale a cantidad 0; la cantidad nunca es negativa.
type BranchStock struct {
	ProductID int64
	Sucursal  string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available devuelve el stock vendible: cantidad menos stock mínimo, con piso en 0.
func (s BranchStock) Available(minStock int) int {
	if a := s.Quantity - minStock; a > 0 {
		return a
	}
	return 0
}
