package repository

import (
	"context"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para ítems de inventario.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProductCode(ctx context.Context, code string) (*entity.Inventory, error)
	List(ctx context.Context, category string, limit, offset int) ([]*entity.Inventory, error)
	Update(ctx context.Context, item *entity.Inventory) error
	// UpdateQuantities escribe los contadores de stock tras una corrida de asignación.
	UpdateQuantities(ctx context.Context, id string, available, reserved float64) error
	Delete(ctx context.Context, id string) error
}
