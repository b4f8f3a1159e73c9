// Package allocation implementa el motor de asignación: distribuye el stock
// libre entre las órdenes pendientes según el puntaje de prioridad de cada
// cliente. La matemática pura del reparto vive en internal/domain/allocation;
// aquí se orquestan lecturas, transacción y persistencia.
package allocation

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/application/metrics"
	domainalloc "github.com/clix-soa/allocation-api/internal/domain/allocation"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// UseCase corre el algoritmo de asignación sobre las órdenes pendientes.
// Una corrida es una única transacción: si algo falla a mitad de camino no
// queda ningún estado parcial persistido. El recálculo de métricas previo
// (si se pide) se confirma por cliente, fuera de esa transacción.
type UseCase struct {
	txRunner TxRunner
	metrics  *metrics.UseCase
	policy   domainalloc.Policy
}

// NewUseCase construye el motor de asignación.
func NewUseCase(txRunner TxRunner, metricsUC *metrics.UseCase, policy domainalloc.Policy) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		metrics:  metricsUC,
		policy:   policy,
	}
}

// AllocateOrders ejecuta una corrida de asignación. Con OrderIDs vacío toma
// todas las órdenes pendientes; devuelve un resultado por orden objetivo
// (también para las que no recibieron nada). El llamador debe serializar
// corridas concurrentes (ver el lock de Redis en la capa HTTP).
func (uc *UseCase) AllocateOrders(ctx context.Context, in dto.AllocationRequest) ([]dto.AllocationResult, error) {
	if in.RecalculateMetrics {
		count, err := uc.metrics.RecalculateAll(ctx)
		if err != nil {
			return nil, err
		}
		log.Info().Int("customers", count).Msg("métricas recalculadas antes de asignar")
	}

	results := []dto.AllocationResult{}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		inventoryRepo repository.InventoryRepository,
		allocationRepo repository.AllocationRepository,
		customerRepo repository.CustomerRepository,
	) error {
		orders, err := orderRepo.ListPending(ctx, in.OrderIDs)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}

		run := newRunState(orders)

		// Prioridades por cliente: el overall_score persistido, calculado
		// al vuelo si falta. Una falla individual deja prioridad 0 (el
		// cliente no califica esta corrida); es un efecto best-effort.
		priorities := uc.customerPriorities(ctx, run.customerIDs())

		for _, invID := range run.inventoryIDs {
			inv, err := inventoryRepo.GetByID(ctx, invID)
			if err != nil {
				return err
			}
			if inv == nil {
				continue
			}
			free := inv.FreeStock()
			if free <= 0 {
				// Sin stock libre: el ítem se salta por completo esta corrida.
				continue
			}

			demands := run.demandsFor(invID)
			grants := domainalloc.Distribute(free, demands, priorities, uc.policy)

			totalAllocated, err := uc.persistGrants(ctx, run, invID, free, grants, priorities, orderRepo, allocationRepo)
			if err != nil {
				return err
			}
			if totalAllocated > 0 {
				if err := inventoryRepo.UpdateQuantities(ctx, inv.ID,
					inv.AvailableQuantity-totalAllocated,
					inv.ReservedQuantity+totalAllocated,
				); err != nil {
					return err
				}
			}
		}

		for _, order := range orders {
			result, err := uc.processOrder(ctx, order, orderRepo, inventoryRepo, allocationRepo, customerRepo)
			if err != nil {
				return err
			}
			results = append(results, *result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// customerPriorities arma el mapa de prioridades normalizado a 0-100 relativo
// al máximo entre los clientes que compiten en esta corrida.
func (uc *UseCase) customerPriorities(ctx context.Context, customerIDs []string) map[string]float64 {
	priorities := make(map[string]float64, len(customerIDs))
	for _, cid := range customerIDs {
		metric, err := uc.metrics.GetOrCalculate(ctx, cid)
		if err != nil {
			log.Warn().Err(err).Str("customer_id", cid).Msg("sin métrica disponible, prioridad 0")
			priorities[cid] = 0
			continue
		}
		priorities[cid] = metric.OverallScore
	}
	return domainalloc.NormalizePriorities(priorities)
}

// persistGrants divide el otorgamiento de cada cliente entre sus líneas de
// orden y persiste los registros de asignación. Devuelve el total otorgado
// del ítem; remaining es el contador autoritativo que impide que los residuos
// de punto flotante excedan el stock original del ítem.
func (uc *UseCase) persistGrants(
	ctx context.Context,
	run *runState,
	invID string,
	free float64,
	grants map[string]float64,
	priorities map[string]float64,
	orderRepo repository.OrderRepository,
	allocationRepo repository.AllocationRepository,
) (float64, error) {
	remaining := free
	var totalAllocated float64
	now := time.Now().UTC()

	for _, cid := range grantedCustomers(grants, priorities) {
		items := run.itemDemands(cid, invID)
		itemGrants, rest := domainalloc.SplitProportional(grants[cid], items, remaining)
		remaining = rest

		for i, granted := range itemGrants {
			if granted <= 0 {
				continue
			}
			record := &entity.Allocation{
				ID:                uuid.New().String(),
				OrderID:           items[i].OrderID,
				InventoryID:       invID,
				AllocatedQuantity: granted,
				AllocationDate:    now,
				AlgorithmVersion:  entity.AlgorithmVersion,
			}
			if err := allocationRepo.Create(ctx, record); err != nil {
				return 0, err
			}
			if err := orderRepo.UpdateItemAllocated(ctx, items[i].ItemID, granted); err != nil {
				return 0, err
			}
			totalAllocated += granted
		}
	}
	return totalAllocated, nil
}

// processOrder arma el resultado de una orden objetivo y actualiza su estado.
// Una orden con al menos 95% de su demanda asignada se considera completa.
func (uc *UseCase) processOrder(
	ctx context.Context,
	order *entity.Order,
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	allocationRepo repository.AllocationRepository,
	customerRepo repository.CustomerRepository,
) (*dto.AllocationResult, error) {
	customerName := "Unknown"
	if customer, err := customerRepo.GetByID(ctx, order.CustomerID); err != nil {
		return nil, err
	} else if customer != nil {
		customerName = customer.Name
	}

	totalRequested := order.TotalRequested()
	var totalAllocated float64
	items := make([]dto.AllocationItemResult, 0, len(order.Items))

	success := true
	message := "Allocation completed"

	for _, item := range order.Items {
		inv, err := inventoryRepo.GetByID(ctx, item.InventoryID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			continue
		}

		record, err := allocationRepo.GetByOrderAndInventory(ctx, order.ID, item.InventoryID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			totalAllocated += record.AllocatedQuantity
			items = append(items, dto.AllocationItemResult{
				InventoryID: item.InventoryID,
				ProductCode: inv.ProductCode,
				ProductName: inv.ProductName,
				Requested:   item.RequestedQuantity,
				Allocated:   record.AllocatedQuantity,
			})
			continue
		}

		items = append(items, dto.AllocationItemResult{
			InventoryID: item.InventoryID,
			ProductCode: inv.ProductCode,
			ProductName: inv.ProductName,
			Requested:   item.RequestedQuantity,
			Allocated:   0,
		})
		if item.RequestedQuantity > 0 {
			success = false
			message = "Partial allocation - insufficient stock for some items"
		}
	}

	status := entity.OrderStatusPending
	if totalAllocated > 0 {
		if totalAllocated >= totalRequested*0.95 {
			status = entity.OrderStatusAllocated
		} else {
			status = entity.OrderStatusPartiallyAllocated
		}
	} else {
		success = false
		message = "No allocation possible - insufficient stock"
	}
	if err := orderRepo.UpdateAllocationState(ctx, order.ID, status, totalAllocated); err != nil {
		return nil, err
	}

	var pct float64
	if totalRequested > 0 {
		pct = math.Round(totalAllocated/totalRequested*100*100) / 100
	}

	return &dto.AllocationResult{
		OrderID:              order.ID,
		CustomerID:           order.CustomerID,
		CustomerName:         customerName,
		TotalRequested:       totalRequested,
		TotalAllocated:       totalAllocated,
		AllocationPercentage: pct,
		Items:                items,
		Success:              success,
		Message:              message,
	}, nil
}

// grantedCustomers devuelve los clientes con otorgamiento en orden
// determinista: prioridad descendente, ID como desempate.
func grantedCustomers(grants, priorities map[string]float64) []string {
	ids := make([]string, 0, len(grants))
	for cid := range grants {
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := priorities[ids[i]], priorities[ids[j]]
		if pi != pj {
			return pi > pj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// runState es el snapshot inmutable de la corrida: demanda agrupada por ítem
// de inventario y por cliente. Se construye una sola vez a partir de las
// órdenes objetivo; las pasadas del algoritmo nunca lo mutan.
type runState struct {
	orders         []*entity.Order
	inventoryIDs   []string                   // en orden de primera aparición
	totalRequested map[string]float64         // inventoryID → demanda total
	customerOrders map[string][]*entity.Order // customerID → sus órdenes objetivo
}

func newRunState(orders []*entity.Order) *runState {
	rs := &runState{
		orders:         orders,
		totalRequested: make(map[string]float64),
		customerOrders: make(map[string][]*entity.Order),
	}
	for _, o := range orders {
		rs.customerOrders[o.CustomerID] = append(rs.customerOrders[o.CustomerID], o)
		for _, it := range o.Items {
			if _, seen := rs.totalRequested[it.InventoryID]; !seen {
				rs.inventoryIDs = append(rs.inventoryIDs, it.InventoryID)
			}
			rs.totalRequested[it.InventoryID] += it.RequestedQuantity
		}
	}
	return rs
}

// customerIDs devuelve los clientes con órdenes objetivo, orden estable.
func (rs *runState) customerIDs() []string {
	ids := make([]string, 0, len(rs.customerOrders))
	for cid := range rs.customerOrders {
		ids = append(ids, cid)
	}
	sort.Strings(ids)
	return ids
}

// demandsFor arma el snapshot de demanda por cliente para un ítem;
// clientes sin demanda quedan fuera.
func (rs *runState) demandsFor(invID string) map[string]float64 {
	demands := make(map[string]float64)
	for cid, orders := range rs.customerOrders {
		var total float64
		for _, o := range orders {
			for _, it := range o.Items {
				if it.InventoryID == invID {
					total += it.RequestedQuantity
				}
			}
		}
		if total > 0 {
			demands[cid] = total
		}
	}
	return demands
}

// itemDemands lista las líneas de un cliente que piden el ítem, en el orden
// de sus órdenes.
func (rs *runState) itemDemands(customerID, invID string) []domainalloc.ItemDemand {
	var items []domainalloc.ItemDemand
	for _, o := range rs.customerOrders[customerID] {
		for _, it := range o.Items {
			if it.InventoryID == invID {
				items = append(items, domainalloc.ItemDemand{
					OrderID:   o.ID,
					ItemID:    it.ID,
					Requested: it.RequestedQuantity,
				})
			}
		}
	}
	return items
}
