package entity

import "time"

// Estados de orden.
const (
	OrderStatusPending            = "pending"
	OrderStatusPartiallyAllocated = "partially_allocated"
	OrderStatusAllocated          = "allocated"
	OrderStatusFulfilled          = "fulfilled"
	OrderStatusCancelled          = "cancelled"
)

// Order es un pedido de un cliente. TotalQuantity la sobreescribe el motor de
// asignación con el total asignado en la última corrida.
type Order struct {
	ID            string
	CustomerID    string
	OrderDate     time.Time
	TotalQuantity float64
	Status        string // pending | partially_allocated | allocated | fulfilled | cancelled
	Notes         string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem es una línea del pedido contra un ítem de inventario.
// RequestedQuantity es la demanda original (inmutable); AllocatedQuantity
// la escribe el motor de asignación.
type OrderItem struct {
	ID                string
	OrderID           string
	InventoryID       string
	RequestedQuantity float64
	AllocatedQuantity float64
	CreatedAt         time.Time
}

// TotalRequested suma la demanda de todas las líneas.
func (o Order) TotalRequested() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.RequestedQuantity
	}
	return total
}
