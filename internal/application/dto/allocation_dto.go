package dto

import "time"

// AllocationRequest parámetros de una corrida de asignación.
// OrderIDs vacío significa todas las órdenes pendientes.
type AllocationRequest struct {
	OrderIDs           []string `json:"order_ids"`
	RecalculateMetrics bool     `json:"recalculate_metrics"`
}

// AllocationItemResult detalle por línea del resultado de asignación de una orden.
type AllocationItemResult struct {
	InventoryID string  `json:"inventory_id"`
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Requested   float64 `json:"requested"`
	Allocated   float64 `json:"allocated"`
}

// AllocationResult resultado de la corrida para una orden.
type AllocationResult struct {
	OrderID              string                 `json:"order_id"`
	CustomerID           string                 `json:"customer_id"`
	CustomerName         string                 `json:"customer_name"`
	TotalRequested       float64                `json:"total_requested"`
	TotalAllocated       float64                `json:"total_allocated"`
	AllocationPercentage float64                `json:"allocation_percentage"`
	Items                []AllocationItemResult `json:"items"`
	Success              bool                   `json:"success"`
	Message              string                 `json:"message"`
}

// AllocationResponse registro del libro de asignaciones.
type AllocationResponse struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	InventoryID       string    `json:"inventory_id"`
	AllocatedQuantity float64   `json:"allocated_quantity"`
	AllocationDate    time.Time `json:"allocation_date"`
	AlgorithmVersion  string    `json:"algorithm_version"`
}
