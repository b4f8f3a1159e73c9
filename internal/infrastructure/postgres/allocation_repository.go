package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository (usable con pool o tx).
// El libro de asignaciones es solo-inserción: no hay Update ni Delete.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `id, order_id, inventory_id, allocated_quantity, allocation_date, algorithm_version, notes`

// Create inserta un registro del libro de asignaciones.
func (r *AllocationRepo) Create(ctx context.Context, allocation *entity.Allocation) error {
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		allocation.ID, allocation.OrderID, allocation.InventoryID, allocation.AllocatedQuantity,
		allocation.AllocationDate, allocation.AlgorithmVersion, allocation.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// GetByOrderAndInventory obtiene el registro más reciente para un par
// (orden, ítem de inventario); nil si no hubo asignación.
func (r *AllocationRepo) GetByOrderAndInventory(ctx context.Context, orderID, inventoryID string) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE order_id = $1 AND inventory_id = $2
		ORDER BY allocation_date DESC LIMIT 1`
	var a entity.Allocation
	err := r.q.QueryRow(ctx, query, orderID, inventoryID).Scan(
		&a.ID, &a.OrderID, &a.InventoryID, &a.AllocatedQuantity,
		&a.AllocationDate, &a.AlgorithmVersion, &a.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}

// ListByOrder lista los registros de una orden, más recientes primero.
func (r *AllocationRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE order_id = $1 ORDER BY allocation_date DESC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list allocations by order: %w", err)
	}
	return scanAllocations(rows)
}

// List lista registros filtrados por orden y/o ítem, con paginación.
func (r *AllocationRepo) List(ctx context.Context, orderID, inventoryID string, limit, offset int) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE ($1 = '' OR order_id = $1) AND ($2 = '' OR inventory_id = $2)
		ORDER BY allocation_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, orderID, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return scanAllocations(rows)
}

// History devuelve filas enriquecidas (join con órdenes, clientes, inventario
// y líneas) para reportes y exportación, más recientes primero.
func (r *AllocationRepo) History(ctx context.Context, orderID, inventoryID string, limit, offset int) ([]repository.AllocationHistoryRow, error) {
	query := `
		SELECT a.id, a.allocation_date, a.algorithm_version, a.allocated_quantity,
		       o.id, o.order_date, o.status,
		       c.id, c.name,
		       i.product_code, i.product_name, i.category, i.size, i.unit,
		       COALESCE(oi.requested_quantity, 0)
		FROM allocations a
		JOIN orders o ON o.id = a.order_id
		JOIN customers c ON c.id = o.customer_id
		JOIN inventory i ON i.id = a.inventory_id
		LEFT JOIN order_items oi ON oi.order_id = a.order_id AND oi.inventory_id = a.inventory_id
		WHERE ($1 = '' OR a.order_id = $1) AND ($2 = '' OR a.inventory_id = $2)
		ORDER BY a.allocation_date DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, orderID, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("allocation history: %w", err)
	}
	defer rows.Close()
	var list []repository.AllocationHistoryRow
	for rows.Next() {
		var h repository.AllocationHistoryRow
		if err := rows.Scan(
			&h.AllocationID, &h.AllocationDate, &h.AlgorithmVersion, &h.AllocatedQuantity,
			&h.OrderID, &h.OrderDate, &h.OrderStatus,
			&h.CustomerID, &h.CustomerName,
			&h.ProductCode, &h.ProductName, &h.Category, &h.Size, &h.Unit,
			&h.RequestedQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan allocation history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func scanAllocations(rows pgx.Rows) ([]*entity.Allocation, error) {
	defer rows.Close()
	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(
			&a.ID, &a.OrderID, &a.InventoryID, &a.AllocatedQuantity,
			&a.AllocationDate, &a.AlgorithmVersion, &a.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
