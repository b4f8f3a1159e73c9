package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Las lecturas devuelven la orden con sus líneas cargadas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_id, order_date, total_quantity, status, notes, created_at, updated_at`

// Create persiste una orden con sus líneas.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.OrderDate, order.TotalQuantity,
		order.Status, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range order.Items {
		itemQuery := `
			INSERT INTO order_items (id, order_id, inventory_id, requested_quantity, allocated_quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.OrderID, it.InventoryID, it.RequestedQuantity, it.AllocatedQuantity, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalQuantity, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista órdenes filtradas por estado y/o cliente, con paginación.
func (r *OrderRepo) List(ctx context.Context, status, customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR customer_id = $2)
		ORDER BY order_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, status, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListByCustomer devuelve todas las órdenes de un cliente con sus líneas
// (el scoring de desempeño recorre el historial completo).
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY order_date`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(list))
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

// ListPending devuelve las órdenes pendientes con sus líneas; si ids no está
// vacío, restringe a ese conjunto. Orden estable por fecha y por ID.
func (r *OrderRepo) ListPending(ctx context.Context, ids []string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE status = 'pending' AND (cardinality($1::text[]) = 0 OR id = ANY($1))
		ORDER BY order_date, id`
	if ids == nil {
		ids = []string{}
	}
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateAllocationState sobreescribe status y total_quantity tras una corrida.
func (r *OrderRepo) UpdateAllocationState(ctx context.Context, orderID, status string, totalQuantity float64) error {
	query := `UPDATE orders SET status = $2, total_quantity = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, orderID, status, totalQuantity)
	if err != nil {
		return fmt.Errorf("update order allocation state: %w", err)
	}
	return nil
}

// UpdateItemAllocated escribe la cantidad asignada de una línea.
func (r *OrderRepo) UpdateItemAllocated(ctx context.Context, itemID string, allocatedQuantity float64) error {
	query := `UPDATE order_items SET allocated_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, itemID, allocatedQuantity)
	if err != nil {
		return fmt.Errorf("update order item allocated: %w", err)
	}
	return nil
}

// Update actualiza la cabecera de la orden.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET order_date = $2, total_quantity = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderDate, order.TotalQuantity, order.Status, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina una orden (las líneas caen por cascada).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) loadItems(ctx context.Context, o *entity.Order) error {
	query := `
		SELECT id, order_id, inventory_id, requested_quantity, allocated_quantity, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, o.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	o.Items = nil
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.InventoryID, &it.RequestedQuantity, &it.AllocatedQuantity, &it.CreatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalQuantity, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
