// Package metrics implementa el motor de scoring: calcula y persiste los
// puntajes de desempeño de cada cliente a partir de su historial de pagos y
// órdenes. Las fórmulas puras viven en internal/domain/scoring.
package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
	"github.com/clix-soa/allocation-api/internal/domain/scoring"
)

// UseCase calcula y actualiza las métricas de clientes. Cada cálculo de un
// cliente es su propia transacción lógica (un upsert); el recálculo masivo
// no aborta por fallas individuales.
type UseCase struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	metricRepo   repository.CustomerMetricRepository
	weights      scoring.Weights
}

// NewUseCase construye el motor de scoring.
func NewUseCase(
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	metricRepo repository.CustomerMetricRepository,
	weights scoring.Weights,
) *UseCase {
	return &UseCase{
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		metricRepo:   metricRepo,
		weights:      weights,
	}
}

// Calculate calcula todos los puntajes de un cliente y hace upsert de su fila
// de métricas. Devuelve domain.ErrNotFound si el cliente no existe.
func (uc *UseCase) Calculate(ctx context.Context, customerID string) (*entity.CustomerMetric, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	payments, err := uc.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	paymentFreq := scoring.PaymentFrequencyScore(payments)
	creditPeriod := scoring.CreditPeriodScore(payments)
	performance := scoring.PerformanceScore(orders)
	overall := scoring.OverallScore(uc.weights, performance, paymentFreq, creditPeriod)

	metric := &entity.CustomerMetric{
		ID:                    uuid.New().String(),
		CustomerID:            customerID,
		PaymentFrequencyScore: paymentFreq,
		CreditPeriodScore:     creditPeriod,
		PerformanceScore:      performance,
		OverallScore:          overall,
		LastCalculated:        time.Now().UTC(),
		UpdatedAt:             time.Now().UTC(),
	}
	fillSummary(metric, payments, orders)

	if err := uc.metricRepo.Upsert(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

// GetOrCalculate devuelve la métrica persistida del cliente, calculándola si
// aún no existe.
func (uc *UseCase) GetOrCalculate(ctx context.Context, customerID string) (*entity.CustomerMetric, error) {
	metric, err := uc.metricRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if metric != nil {
		return metric, nil
	}
	return uc.Calculate(ctx, customerID)
}

// RecalculateAll recalcula las métricas de todos los clientes activos.
// Una falla individual se registra y se salta: el lote nunca aborta por un
// cliente malo. Devuelve la cantidad de clientes recalculados con éxito.
func (uc *UseCase) RecalculateAll(ctx context.Context) (int, error) {
	customers, err := uc.customerRepo.ListByStatus(ctx, entity.CustomerStatusActive)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range customers {
		if _, err := uc.Calculate(ctx, c.ID); err != nil {
			log.Warn().Err(err).Str("customer_id", c.ID).Msg("cálculo de métricas fallido, cliente omitido")
			continue
		}
		count++
	}
	return count, nil
}

// ToResponse mapea la entidad al DTO HTTP.
func ToResponse(m *entity.CustomerMetric) *dto.CustomerMetricResponse {
	if m == nil {
		return nil
	}
	return &dto.CustomerMetricResponse{
		CustomerID:              m.CustomerID,
		PaymentFrequencyScore:   m.PaymentFrequencyScore,
		CreditPeriodScore:       m.CreditPeriodScore,
		PerformanceScore:        m.PerformanceScore,
		OverallScore:            m.OverallScore,
		TotalOrders:             m.TotalOrders,
		TotalOrderValue:         m.TotalOrderValue,
		TotalPayments:           m.TotalPayments,
		OverdueCount:            m.OverdueCount,
		OnTimePaymentPercentage: m.OnTimePaymentPercentage,
		AverageDaysToPayment:    m.AverageDaysToPayment,
		LastCalculated:          m.LastCalculated,
	}
}

// fillSummary completa los contadores descriptivos que acompañan a los puntajes.
func fillSummary(metric *entity.CustomerMetric, payments []entity.Payment, orders []entity.Order) {
	paidCount := 0
	onTimeCount := 0
	totalDays := 0
	overdueCount := 0
	for _, p := range payments {
		switch p.Status {
		case entity.PaymentStatusPaid:
			paidCount++
			if !p.PaymentDate.After(p.DueDate) {
				onTimeCount++
			}
			totalDays += p.DaysLate()
		case entity.PaymentStatusOverdue:
			overdueCount++
		}
	}
	if paidCount > 0 {
		metric.OnTimePaymentPercentage = float64(onTimeCount) / float64(paidCount) * 100
		metric.AverageDaysToPayment = float64(totalDays) / float64(paidCount)
	}
	metric.OverdueCount = overdueCount
	metric.TotalPayments = len(payments)

	metric.TotalOrders = len(orders)
	var totalValue float64
	for _, o := range orders {
		totalValue += o.TotalQuantity
	}
	metric.TotalOrderValue = totalValue
}
