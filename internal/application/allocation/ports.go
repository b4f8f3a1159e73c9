package allocation

import (
	"context"

	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una corrida de asignación
// se persiste completa o no se persiste en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		inventoryRepo repository.InventoryRepository,
		allocationRepo repository.AllocationRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
