package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// OrderUseCase casos de uso CRUD para órdenes.
type OrderUseCase struct {
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	inventoryRepo repository.InventoryRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	inventoryRepo repository.InventoryRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Create crea una orden pendiente con sus líneas. Valida que el cliente y
// cada ítem de inventario existan.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		OrderDate:  orderDate,
		Status:     entity.OrderStatusPending,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, it := range in.Items {
		if it.RequestedQuantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		inv, err := uc.inventoryRepo.GetByID(ctx, it.InventoryID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, domain.ErrNotFound
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:                uuid.New().String(),
			OrderID:           order.ID,
			InventoryID:       it.InventoryID,
			RequestedQuantity: it.RequestedQuantity,
			CreatedAt:         now,
		})
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes filtradas por estado y/o cliente.
func (uc *OrderUseCase) List(ctx context.Context, status, customerID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.List(ctx, status, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Update actualiza estado y notas de una orden. Marcar una orden como
// "fulfilled" alimenta el puntaje de desempeño del cliente en el próximo
// recálculo de métricas.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" {
		switch in.Status {
		case entity.OrderStatusPending, entity.OrderStatusPartiallyAllocated,
			entity.OrderStatusAllocated, entity.OrderStatusFulfilled, entity.OrderStatusCancelled:
			order.Status = in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Notes != "" {
		order.Notes = in.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Cancel cancela una orden. Solo órdenes pendientes o parcialmente asignadas
// pueden cancelarse.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending && order.Status != entity.OrderStatusPartiallyAllocated {
		return nil, domain.ErrConflict
	}
	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina una orden (y sus líneas, por cascada en BD).
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:                it.ID,
			InventoryID:       it.InventoryID,
			RequestedQuantity: it.RequestedQuantity,
			AllocatedQuantity: it.AllocatedQuantity,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		TotalQuantity: o.TotalQuantity,
		Notes:         o.Notes,
		Items:         items,
	}
}
