package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, customer_id, payment_date, amount, due_date, status, payment_method, reference_number, notes, created_at`

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.CustomerID, payment.PaymentDate, payment.Amount, payment.DueDate,
		payment.Status, payment.PaymentMethod, payment.ReferenceNumber, payment.Notes, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.DueDate,
		&p.Status, &p.PaymentMethod, &p.ReferenceNumber, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByCustomer devuelve el historial completo de pagos de un cliente
// (el scoring necesita todos los registros, sin paginar).
func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID string) ([]entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1 ORDER BY payment_date`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments by customer: %w", err)
	}
	defer rows.Close()
	var list []entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.DueDate,
			&p.Status, &p.PaymentMethod, &p.ReferenceNumber, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista pagos filtrados por cliente y/o estado, con paginación.
func (r *PaymentRepo) List(ctx context.Context, customerID, status string, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE ($1 = '' OR customer_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY payment_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, customerID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.DueDate,
			&p.Status, &p.PaymentMethod, &p.ReferenceNumber, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un pago.
func (r *PaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET payment_date = $2, amount = $3, due_date = $4, status = $5,
		    payment_method = $6, reference_number = $7, notes = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.PaymentDate, payment.Amount, payment.DueDate,
		payment.Status, payment.PaymentMethod, payment.ReferenceNumber, payment.Notes,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
