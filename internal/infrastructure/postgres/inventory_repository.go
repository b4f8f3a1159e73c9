package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_code, product_name, category, size, available_quantity, reserved_quantity, unit, created_at, updated_at`

// Create persiste un ítem de inventario.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.Inventory) error {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ProductCode, item.ProductName, item.Category, item.Size,
		item.AvailableQuantity, item.ReservedQuantity, item.Unit, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByProductCode obtiene un ítem por código de producto.
func (r *InventoryRepo) GetByProductCode(ctx context.Context, code string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code))
}

// List lista ítems, opcionalmente filtrados por categoría, con paginación.
func (r *InventoryRepo) List(ctx context.Context, category string, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory
		WHERE ($1 = '' OR category = $1)
		ORDER BY product_code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var it entity.Inventory
		if err := rows.Scan(
			&it.ID, &it.ProductCode, &it.ProductName, &it.Category, &it.Size,
			&it.AvailableQuantity, &it.ReservedQuantity, &it.Unit, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza los datos de catálogo y la cantidad disponible.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.Inventory) error {
	query := `
		UPDATE inventory
		SET product_name = $2, category = $3, size = $4, available_quantity = $5, unit = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ProductName, item.Category, item.Size,
		item.AvailableQuantity, item.Unit, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// UpdateQuantities escribe los contadores de stock tras una corrida de asignación.
func (r *InventoryRepo) UpdateQuantities(ctx context.Context, id string, available, reserved float64) error {
	query := `
		UPDATE inventory
		SET available_quantity = $2, reserved_quantity = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, available, reserved)
	if err != nil {
		return fmt.Errorf("update inventory quantities: %w", err)
	}
	return nil
}

// Delete elimina un ítem por ID.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scanOne(row pgx.Row) (*entity.Inventory, error) {
	var it entity.Inventory
	err := row.Scan(
		&it.ID, &it.ProductCode, &it.ProductName, &it.Category, &it.Size,
		&it.AvailableQuantity, &it.ReservedQuantity, &it.Unit, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &it, nil
}
