package entity

import "time"

// AlgorithmVersion identifica la versión del algoritmo que produjo una asignación.
const AlgorithmVersion = "v1.0"

// Allocation es un registro inmutable del libro de asignaciones: una cantidad
// otorgada a un par (orden, ítem de inventario) en una corrida. El motor solo
// inserta; nunca actualiza ni borra estos registros.
type Allocation struct {
	ID                string
	OrderID           string
	InventoryID       string
	AllocatedQuantity float64
	AllocationDate    time.Time
	AlgorithmVersion  string
	Notes             string
}
