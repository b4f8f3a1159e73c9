package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clix-soa/allocation-api/internal/application/allocation"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// Ensure TxRunner implements allocation.TxRunner.
var _ allocation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Una corrida de asignación completa es una sola transacción: o se persisten
// todas las escrituras (allocations, líneas, órdenes, stock) o ninguna.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	allocationRepo repository.AllocationRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	inventoryRepo := NewInventoryRepository(tx)
	allocationRepo := NewAllocationRepository(tx)
	customerRepo := NewCustomerRepository(tx)

	if err := fn(orderRepo, inventoryRepo, allocationRepo, customerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
