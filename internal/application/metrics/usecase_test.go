package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clix-soa/allocation-api/internal/application/metrics"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/scoring"
)

var base = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _, _ int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) ListByStatus(_ context.Context, status string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(f.customers, id)
	return nil
}

type fakePaymentRepo struct {
	byCustomer map[string][]entity.Payment
	errFor     map[string]error
}

func (f *fakePaymentRepo) Create(_ context.Context, _ *entity.Payment) error  { return nil }
func (f *fakePaymentRepo) GetByID(_ context.Context, _ string) (*entity.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) ListByCustomer(_ context.Context, customerID string) ([]entity.Payment, error) {
	if err := f.errFor[customerID]; err != nil {
		return nil, err
	}
	return f.byCustomer[customerID], nil
}

func (f *fakePaymentRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepo) Update(_ context.Context, _ *entity.Payment) error { return nil }
func (f *fakePaymentRepo) Delete(_ context.Context, _ string) error          { return nil }

type fakeOrderRepo struct {
	byCustomer map[string][]entity.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, _ *entity.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(_ context.Context, _ string) (*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]entity.Order, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeOrderRepo) ListPending(_ context.Context, _ []string) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateAllocationState(_ context.Context, _, _ string, _ float64) error {
	return nil
}
func (f *fakeOrderRepo) UpdateItemAllocated(_ context.Context, _ string, _ float64) error {
	return nil
}
func (f *fakeOrderRepo) Update(_ context.Context, _ *entity.Order) error { return nil }
func (f *fakeOrderRepo) Delete(_ context.Context, _ string) error        { return nil }

type fakeMetricRepo struct {
	metrics map[string]*entity.CustomerMetric
	upserts int
}

func (f *fakeMetricRepo) GetByCustomer(_ context.Context, customerID string) (*entity.CustomerMetric, error) {
	return f.metrics[customerID], nil
}

func (f *fakeMetricRepo) Upsert(_ context.Context, m *entity.CustomerMetric) error {
	f.metrics[m.CustomerID] = m
	f.upserts++
	return nil
}

// ──────────────────────────────────────────────

type fixture struct {
	customers *fakeCustomerRepo
	payments  *fakePaymentRepo
	orders    *fakeOrderRepo
	metrics   *fakeMetricRepo
	uc        *metrics.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		customers: &fakeCustomerRepo{customers: map[string]*entity.Customer{}},
		payments:  &fakePaymentRepo{byCustomer: map[string][]entity.Payment{}, errFor: map[string]error{}},
		orders:    &fakeOrderRepo{byCustomer: map[string][]entity.Order{}},
		metrics:   &fakeMetricRepo{metrics: map[string]*entity.CustomerMetric{}},
	}
	f.uc = metrics.NewUseCase(f.customers, f.payments, f.orders, f.metrics, scoring.DefaultWeights())
	return f
}

func (f *fixture) addCustomer(id, status string) {
	f.customers.customers[id] = &entity.Customer{ID: id, Name: "Cliente " + id, Status: status}
}

func paid(daysLate int) entity.Payment {
	return entity.Payment{
		Status:      entity.PaymentStatusPaid,
		DueDate:     base,
		PaymentDate: base.AddDate(0, 0, daysLate),
	}
}

func TestCalculate_PuntajesYResumen(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", entity.CustomerStatusActive)
	f.payments.byCustomer["c1"] = []entity.Payment{
		paid(0),
		paid(10),
		{Status: entity.PaymentStatusOverdue, DueDate: base},
	}
	f.orders.byCustomer["c1"] = []entity.Order{
		{Status: entity.OrderStatusFulfilled, TotalQuantity: 500},
		{Status: entity.OrderStatusPending, TotalQuantity: 100},
	}

	m, err := f.uc.Calculate(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, m)

	// pagos: 1 a tiempo de 2 pagados, 5 días promedio -> 35 + 27
	assert.InDelta(t, 62, m.PaymentFrequencyScore, 1e-9)
	// 1 vencido de 3 (-20) y 10 días de mora promedio (-5)
	assert.InDelta(t, 75, m.CreditPeriodScore, 1e-9)
	// 2 órdenes (6) + 50% cumplidas (20) + 600 unidades (18)
	assert.InDelta(t, 44, m.PerformanceScore, 1e-9)
	assert.InDelta(t, 0.30*44+0.25*62+0.25*75, m.OverallScore, 1e-9)

	assert.Equal(t, 3, m.TotalPayments)
	assert.Equal(t, 1, m.OverdueCount)
	assert.InDelta(t, 50, m.OnTimePaymentPercentage, 1e-9)
	assert.InDelta(t, 5, m.AverageDaysToPayment, 1e-9)
	assert.Equal(t, 2, m.TotalOrders)
	assert.InDelta(t, 600, m.TotalOrderValue, 1e-9)

	// la métrica quedó persistida
	assert.Equal(t, 1, f.metrics.upserts)
	stored := f.metrics.metrics["c1"]
	require.NotNil(t, stored)
	assert.Equal(t, m.OverallScore, stored.OverallScore)
}

func TestCalculate_ClienteInexistente(t *testing.T) {
	f := newFixture()

	m, err := f.uc.Calculate(context.Background(), "nadie")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.metrics.upserts)
}

func TestGetOrCalculate_DevuelveCacheadoSinRecalcular(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", entity.CustomerStatusActive)
	cached := &entity.CustomerMetric{ID: "m1", CustomerID: "c1", OverallScore: 77}
	f.metrics.metrics["c1"] = cached

	m, err := f.uc.GetOrCalculate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Same(t, cached, m)
	assert.Zero(t, f.metrics.upserts, "no debe recalcular si ya hay métrica")
}

func TestGetOrCalculate_CalculaSiFalta(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", entity.CustomerStatusActive)
	f.payments.byCustomer["c1"] = []entity.Payment{paid(0)}

	m, err := f.uc.GetOrCalculate(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, f.metrics.upserts)
	assert.InDelta(t, 100, m.PaymentFrequencyScore, 1e-9)
}

// Una falla individual se salta y el lote sigue; los inactivos no participan.
func TestRecalculateAll_SaltaFallasYClientesInactivos(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", entity.CustomerStatusActive)
	f.addCustomer("c2", entity.CustomerStatusActive)
	f.addCustomer("c3", entity.CustomerStatusInactive)
	f.payments.errFor["c2"] = errors.New("conexión perdida")

	count, err := f.uc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NotNil(t, f.metrics.metrics["c1"])
	assert.Nil(t, f.metrics.metrics["c2"])
	assert.Nil(t, f.metrics.metrics["c3"])
}

func TestToResponse(t *testing.T) {
	assert.Nil(t, metrics.ToResponse(nil))

	m := &entity.CustomerMetric{CustomerID: "c1", OverallScore: 61.5, TotalOrders: 4}
	resp := metrics.ToResponse(m)
	require.NotNil(t, resp)
	assert.Equal(t, "c1", resp.CustomerID)
	assert.InDelta(t, 61.5, resp.OverallScore, 1e-9)
	assert.Equal(t, 4, resp.TotalOrders)
}
