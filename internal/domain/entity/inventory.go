package entity

import "time"

// Inventory es un ítem de stock. Invariante: ReservedQuantity ≤ AvailableQuantity.
// El stock libre efectivo para asignar es AvailableQuantity - ReservedQuantity.
type Inventory struct {
	ID                string
	ProductCode       string
	ProductName       string
	Category          string
	Size              string // talla: 45-110 o XS..XXL
	AvailableQuantity float64
	ReservedQuantity  float64
	Unit              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FreeStock devuelve el stock libre efectivo (disponible menos reservado).
func (i Inventory) FreeStock() float64 {
	return i.AvailableQuantity - i.ReservedQuantity
}
