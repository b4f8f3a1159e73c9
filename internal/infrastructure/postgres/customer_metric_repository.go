package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

var _ repository.CustomerMetricRepository = (*CustomerMetricRepo)(nil)

// CustomerMetricRepo implementación de CustomerMetricRepository (usable con pool o tx).
type CustomerMetricRepo struct {
	q Querier
}

// NewCustomerMetricRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerMetricRepository(q Querier) *CustomerMetricRepo {
	return &CustomerMetricRepo{q: q}
}

const metricColumns = `id, customer_id, total_orders, total_order_value,
	payment_frequency_score, credit_period_score, performance_score, overall_score,
	on_time_payment_percentage, average_days_to_payment, overdue_count, total_payments,
	last_calculated, updated_at`

// GetByCustomer obtiene la fila de métricas de un cliente (nil si no existe).
func (r *CustomerMetricRepo) GetByCustomer(ctx context.Context, customerID string) (*entity.CustomerMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM customer_metrics WHERE customer_id = $1`
	var m entity.CustomerMetric
	err := r.q.QueryRow(ctx, query, customerID).Scan(
		&m.ID, &m.CustomerID, &m.TotalOrders, &m.TotalOrderValue,
		&m.PaymentFrequencyScore, &m.CreditPeriodScore, &m.PerformanceScore, &m.OverallScore,
		&m.OnTimePaymentPercentage, &m.AverageDaysToPayment, &m.OverdueCount, &m.TotalPayments,
		&m.LastCalculated, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer metric: %w", err)
	}
	return &m, nil
}

// Upsert inserta o sobreescribe la fila de métricas del cliente.
// customer_id es único: nunca se duplican métricas por cliente.
func (r *CustomerMetricRepo) Upsert(ctx context.Context, metric *entity.CustomerMetric) error {
	query := `
		INSERT INTO customer_metrics (` + metricColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (customer_id) DO UPDATE SET
			total_orders = EXCLUDED.total_orders,
			total_order_value = EXCLUDED.total_order_value,
			payment_frequency_score = EXCLUDED.payment_frequency_score,
			credit_period_score = EXCLUDED.credit_period_score,
			performance_score = EXCLUDED.performance_score,
			overall_score = EXCLUDED.overall_score,
			on_time_payment_percentage = EXCLUDED.on_time_payment_percentage,
			average_days_to_payment = EXCLUDED.average_days_to_payment,
			overdue_count = EXCLUDED.overdue_count,
			total_payments = EXCLUDED.total_payments,
			last_calculated = EXCLUDED.last_calculated,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		metric.ID, metric.CustomerID, metric.TotalOrders, metric.TotalOrderValue,
		metric.PaymentFrequencyScore, metric.CreditPeriodScore, metric.PerformanceScore, metric.OverallScore,
		metric.OnTimePaymentPercentage, metric.AverageDaysToPayment, metric.OverdueCount, metric.TotalPayments,
		metric.LastCalculated, metric.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert customer metric: %w", err)
	}
	return nil
}
