package dto

import "time"

// OrderItemRequest línea de pedido al crear una orden.
type OrderItemRequest struct {
	InventoryID       string  `json:"inventory_id"`
	RequestedQuantity float64 `json:"requested_quantity"`
}

// CreateOrderRequest alta de orden con sus líneas.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	OrderDate  time.Time          `json:"order_date"`
	Notes      string             `json:"notes"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest actualización de estado y notas de una orden.
// Campos vacíos se dejan como están.
type UpdateOrderRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID                string  `json:"id"`
	InventoryID       string  `json:"inventory_id"`
	RequestedQuantity float64 `json:"requested_quantity"`
	AllocatedQuantity float64 `json:"allocated_quantity"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	OrderDate     time.Time           `json:"order_date"`
	Status        string              `json:"status"`
	TotalQuantity float64             `json:"total_quantity"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}
