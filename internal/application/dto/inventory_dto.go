package dto

import "time"

// CreateInventoryRequest alta de ítem de inventario.
type CreateInventoryRequest struct {
	ProductCode       string  `json:"product_code"`
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	Size              string  `json:"size"`
	AvailableQuantity float64 `json:"available_quantity"`
	Unit              string  `json:"unit"`
}

// UpdateInventoryRequest actualización de ítem de inventario.
type UpdateInventoryRequest struct {
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	Size              string  `json:"size"`
	AvailableQuantity float64 `json:"available_quantity"`
	Unit              string  `json:"unit"`
}

// InventoryResponse representación HTTP de un ítem de inventario.
type InventoryResponse struct {
	ID                string    `json:"id"`
	ProductCode       string    `json:"product_code"`
	ProductName       string    `json:"product_name"`
	Category          string    `json:"category,omitempty"`
	Size              string    `json:"size,omitempty"`
	AvailableQuantity float64   `json:"available_quantity"`
	ReservedQuantity  float64   `json:"reserved_quantity"`
	FreeStock         float64   `json:"free_stock"`
	Unit              string    `json:"unit"`
	UpdatedAt         time.Time `json:"updated_at"`
}
