package repository

import (
	"context"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Las lecturas devuelven la orden con Items cargados.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, status, customerID string, limit, offset int) ([]*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Order, error)
	// ListPending devuelve las órdenes en estado pending; si ids no está
	// vacío, restringe a ese conjunto.
	ListPending(ctx context.Context, ids []string) ([]*entity.Order, error)
	// UpdateAllocationState sobreescribe status y total_quantity tras una corrida.
	UpdateAllocationState(ctx context.Context, orderID, status string, totalQuantity float64) error
	UpdateItemAllocated(ctx context.Context, itemID string, allocatedQuantity float64) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
