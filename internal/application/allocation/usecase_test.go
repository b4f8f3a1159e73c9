package allocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appalloc "github.com/clix-soa/allocation-api/internal/application/allocation"
	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/application/metrics"
	domainalloc "github.com/clix-soa/allocation-api/internal/domain/allocation"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
	"github.com/clix-soa/allocation-api/internal/domain/scoring"
)

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
	return nil, nil
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

func (f *fakeCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(_ context.Context, _ string) error           { return nil }

type fakePaymentRepo struct {
	byCustomer map[string][]entity.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, _ *entity.Payment) error { return nil }
func (f *fakePaymentRepo) GetByID(_ context.Context, _ string) (*entity.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) ListByCustomer(_ context.Context, customerID string) ([]entity.Payment, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakePaymentRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepo) Update(_ context.Context, _ *entity.Payment) error { return nil }
func (f *fakePaymentRepo) Delete(_ context.Context, _ string) error          { return nil }

type allocationState struct {
	status        string
	totalQuantity float64
}

type fakeOrderRepo struct {
	pending   []*entity.Order
	states    map[string]allocationState
	itemAlloc map[string]float64
}

func (f *fakeOrderRepo) Create(_ context.Context, _ *entity.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(_ context.Context, _ string) (*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, _ string) ([]entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListPending(_ context.Context, ids []string) ([]*entity.Order, error) {
	if len(ids) == 0 {
		return f.pending, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*entity.Order
	for _, o := range f.pending {
		if want[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateAllocationState(_ context.Context, orderID, status string, totalQuantity float64) error {
	f.states[orderID] = allocationState{status: status, totalQuantity: totalQuantity}
	return nil
}

func (f *fakeOrderRepo) UpdateItemAllocated(_ context.Context, itemID string, allocatedQuantity float64) error {
	f.itemAlloc[itemID] = allocatedQuantity
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, _ *entity.Order) error { return nil }
func (f *fakeOrderRepo) Delete(_ context.Context, _ string) error        { return nil }

type fakeInventoryRepo struct {
	items  map[string]*entity.Inventory
	errFor map[string]error
}

func (f *fakeInventoryRepo) Create(_ context.Context, it *entity.Inventory) error {
	f.items[it.ID] = it
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	if err := f.errFor[id]; err != nil {
		return nil, err
	}
	return f.items[id], nil
}

func (f *fakeInventoryRepo) GetByProductCode(_ context.Context, _ string) (*entity.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, _ *entity.Inventory) error { return nil }

func (f *fakeInventoryRepo) UpdateQuantities(_ context.Context, id string, available, reserved float64) error {
	it, ok := f.items[id]
	if !ok {
		return errors.New("ítem inexistente")
	}
	it.AvailableQuantity = available
	it.ReservedQuantity = reserved
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAllocationRepo struct {
	records []*entity.Allocation
}

func (f *fakeAllocationRepo) Create(_ context.Context, a *entity.Allocation) error {
	f.records = append(f.records, a)
	return nil
}

func (f *fakeAllocationRepo) GetByOrderAndInventory(_ context.Context, orderID, inventoryID string) (*entity.Allocation, error) {
	// el más reciente primero, como el repositorio real
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].OrderID == orderID && f.records[i].InventoryID == inventoryID {
			return f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAllocationRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Allocation, error) {
	var out []*entity.Allocation
	for _, r := range f.records {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Allocation, error) {
	return f.records, nil
}

func (f *fakeAllocationRepo) History(_ context.Context, _, _ string, _, _ int) ([]repository.AllocationHistoryRow, error) {
	return nil, nil
}

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

// fakeTxRunner ejecuta la función directamente sobre los fakes, sin
// transacción real.
type fakeTxRunner struct {
	orders      *fakeOrderRepo
	inventory   *fakeInventoryRepo
	allocations *fakeAllocationRepo
	customers   *fakeCustomerRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	allocationRepo repository.AllocationRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return fn(f.orders, f.inventory, f.allocations, f.customers)
}

// ──────────────────────────────────────────────

type fixture struct {
	orders      *fakeOrderRepo
	inventory   *fakeInventoryRepo
	allocations *fakeAllocationRepo
	customers   *fakeCustomerRepo
	payments    *fakePaymentRepo
	metricRepo  *fakeMetricRepo
	uc          *appalloc.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		orders:      &fakeOrderRepo{states: map[string]allocationState{}, itemAlloc: map[string]float64{}},
		inventory:   &fakeInventoryRepo{items: map[string]*entity.Inventory{}, errFor: map[string]error{}},
		allocations: &fakeAllocationRepo{},
		customers:   &fakeCustomerRepo{customers: map[string]*entity.Customer{}},
		payments:    &fakePaymentRepo{byCustomer: map[string][]entity.Payment{}},
		metricRepo:  &fakeMetricRepo{metrics: map[string]*entity.CustomerMetric{}},
	}
	metricsUC := metrics.NewUseCase(f.customers, f.payments, f.orders, f.metricRepo, scoring.DefaultWeights())
	runner := &fakeTxRunner{orders: f.orders, inventory: f.inventory, allocations: f.allocations, customers: f.customers}
	f.uc = appalloc.NewUseCase(runner, metricsUC, domainalloc.DefaultPolicy())
	return f
}

func (f *fixture) addCustomer(id, name string, score float64) {
	f.customers.customers[id] = &entity.Customer{ID: id, Name: name, Status: entity.CustomerStatusActive}
	f.metricRepo.metrics[id] = &entity.CustomerMetric{ID: "m-" + id, CustomerID: id, OverallScore: score}
}

func (f *fixture) addInventory(id, code, name string, available, reserved float64) {
	f.inventory.items[id] = &entity.Inventory{
		ID:                id,
		ProductCode:       code,
		ProductName:       name,
		AvailableQuantity: available,
		ReservedQuantity:  reserved,
	}
}

func (f *fixture) addPendingOrder(orderID, customerID, itemID, inventoryID string, quantity float64) {
	f.orders.pending = append(f.orders.pending, &entity.Order{
		ID:         orderID,
		CustomerID: customerID,
		OrderDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:     entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{ID: itemID, OrderID: orderID, InventoryID: inventoryID, RequestedQuantity: quantity},
		},
	})
}

func findResult(t *testing.T, results []dto.AllocationResult, orderID string) dto.AllocationResult {
	t.Helper()
	for _, r := range results {
		if r.OrderID == orderID {
			return r
		}
	}
	t.Fatalf("sin resultado para la orden %s", orderID)
	return dto.AllocationResult{}
}

// Dos clientes compiten por 120 unidades con prioridades 80 y 20: el de
// mayor puntaje recibe 86.4 y el otro 33.6 (reparto ponderado más
// redistribución del sobrante).
func TestAllocateOrders_RepartoPonderadoPorPrioridad(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa Textiles", 80)
	f.addCustomer("cust-b", "Beta Garments", 20)
	f.addInventory("inv-1", "INW-M-001", "Men's Cotton Briefs", 120, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 100)
	f.addPendingOrder("order-b", "cust-b", "item-b", "inv-1", 100)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ra := findResult(t, results, "order-a")
	assert.Equal(t, "cust-a", ra.CustomerID)
	assert.Equal(t, "Alfa Textiles", ra.CustomerName)
	assert.InDelta(t, 100, ra.TotalRequested, 1e-9)
	assert.InDelta(t, 86.4, ra.TotalAllocated, 1e-9)
	assert.InDelta(t, 86.4, ra.AllocationPercentage, 1e-9)
	assert.True(t, ra.Success)
	assert.Equal(t, "Allocation completed", ra.Message)
	require.Len(t, ra.Items, 1)
	assert.Equal(t, "INW-M-001", ra.Items[0].ProductCode)
	assert.InDelta(t, 86.4, ra.Items[0].Allocated, 1e-9)

	rb := findResult(t, results, "order-b")
	assert.InDelta(t, 33.6, rb.TotalAllocated, 1e-9)
	assert.InDelta(t, 33.6, rb.AllocationPercentage, 1e-9)

	// Ambas órdenes quedan parciales (86.4% y 33.6% < 95%)
	assert.Equal(t, entity.OrderStatusPartiallyAllocated, f.orders.states["order-a"].status)
	assert.InDelta(t, 86.4, f.orders.states["order-a"].totalQuantity, 1e-9)
	assert.Equal(t, entity.OrderStatusPartiallyAllocated, f.orders.states["order-b"].status)

	// El stock se agota: 120 pasan de disponible a reservado
	inv := f.inventory.items["inv-1"]
	assert.InDelta(t, 0, inv.AvailableQuantity, 1e-9)
	assert.InDelta(t, 120, inv.ReservedQuantity, 1e-9)

	// Líneas actualizadas y libro con dos registros inmutables
	assert.InDelta(t, 86.4, f.orders.itemAlloc["item-a"], 1e-9)
	assert.InDelta(t, 33.6, f.orders.itemAlloc["item-b"], 1e-9)
	require.Len(t, f.allocations.records, 2)
	for _, rec := range f.allocations.records {
		assert.Equal(t, entity.AlgorithmVersion, rec.AlgorithmVersion)
		assert.Equal(t, "inv-1", rec.InventoryID)
		assert.False(t, rec.AllocationDate.IsZero())
	}
}

// Con al menos el 95% de la demanda cubierta la orden se considera completa.
func TestAllocateOrders_UmbralDeOrdenCompleta(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa", 80)
	f.addInventory("inv-1", "INW-M-001", "Briefs", 95, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 100)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.InDelta(t, 95, results[0].TotalAllocated, 1e-9)
	assert.InDelta(t, 95, results[0].AllocationPercentage, 1e-9)
	assert.True(t, results[0].Success)
	assert.Equal(t, entity.OrderStatusAllocated, f.orders.states["order-a"].status)
}

func TestAllocateOrders_SinOrdenesPendientes(t *testing.T) {
	f := newFixture()

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, f.allocations.records)
}

// Un ítem sin stock libre se salta por completo: la orden queda pendiente
// con resultado explícito de "sin asignación posible".
func TestAllocateOrders_SinStockLibre(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa", 80)
	f.addInventory("inv-1", "INW-M-001", "Briefs", 50, 50)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 100)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.False(t, results[0].Success)
	assert.Equal(t, "No allocation possible - insufficient stock", results[0].Message)
	assert.Zero(t, results[0].TotalAllocated)
	assert.Equal(t, entity.OrderStatusPending, f.orders.states["order-a"].status)
	assert.Empty(t, f.allocations.records)

	// stock intacto
	assert.InDelta(t, 50, f.inventory.items["inv-1"].AvailableQuantity, 1e-9)
	assert.InDelta(t, 50, f.inventory.items["inv-1"].ReservedQuantity, 1e-9)
}

// Un cliente con puntaje cero no califica: todo el stock va al competidor.
func TestAllocateOrders_PuntajeCeroQuedaExcluido(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa", 50)
	f.addCustomer("cust-b", "Beta", 0)
	f.addInventory("inv-1", "INW-M-001", "Briefs", 120, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 100)
	f.addPendingOrder("order-b", "cust-b", "item-b", "inv-1", 100)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	require.NoError(t, err)

	ra := findResult(t, results, "order-a")
	assert.InDelta(t, 100, ra.TotalAllocated, 1e-9)
	assert.Equal(t, entity.OrderStatusAllocated, f.orders.states["order-a"].status)

	rb := findResult(t, results, "order-b")
	assert.Zero(t, rb.TotalAllocated)
	assert.False(t, rb.Success)
	assert.Equal(t, "No allocation possible - insufficient stock", rb.Message)
	assert.Equal(t, entity.OrderStatusPending, f.orders.states["order-b"].status)

	inv := f.inventory.items["inv-1"]
	assert.InDelta(t, 20, inv.AvailableQuantity, 1e-9)
	assert.InDelta(t, 100, inv.ReservedQuantity, 1e-9)
}

// Con OrderIDs la corrida se restringe a ese conjunto.
func TestAllocateOrders_RestringidoPorOrderIDs(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa", 80)
	f.addCustomer("cust-b", "Beta", 60)
	f.addInventory("inv-1", "INW-M-001", "Briefs", 200, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 50)
	f.addPendingOrder("order-b", "cust-b", "item-b", "inv-1", 50)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{
		OrderIDs: []string{"order-a"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "order-a", results[0].OrderID)
	assert.InDelta(t, 50, results[0].TotalAllocated, 1e-9)

	_, touched := f.orders.states["order-b"]
	assert.False(t, touched, "la orden fuera del conjunto no debe tocarse")
}

// El flag de recálculo regenera métricas antes de asignar.
func TestAllocateOrders_RecalculaMetricasPrimero(t *testing.T) {
	f := newFixture()
	f.customers.customers["cust-a"] = &entity.Customer{
		ID: "cust-a", Name: "Alfa", Status: entity.CustomerStatusActive,
	}
	f.payments.byCustomer["cust-a"] = []entity.Payment{
		{
			Status:      entity.PaymentStatusPaid,
			DueDate:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			PaymentDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	f.addInventory("inv-1", "INW-M-001", "Briefs", 100, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 50)

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{
		RecalculateMetrics: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.metricRepo.upserts)
	require.NotNil(t, f.metricRepo.metrics["cust-a"])
	// con métrica positiva el cliente recibe su demanda completa
	assert.InDelta(t, 50, findResult(t, results, "order-a").TotalAllocated, 1e-9)
}

// Un error a mitad de corrida aborta todo: el llamador recibe el error y
// ningún resultado.
func TestAllocateOrders_ErrorAbortaCorrida(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-a", "Alfa", 80)
	f.addInventory("inv-1", "INW-M-001", "Briefs", 100, 0)
	f.addPendingOrder("order-a", "cust-a", "item-a", "inv-1", 50)
	f.inventory.errFor["inv-1"] = errors.New("conexión perdida")

	results, err := f.uc.AllocateOrders(context.Background(), dto.AllocationRequest{})
	assert.Error(t, err)
	assert.Nil(t, results)
}
