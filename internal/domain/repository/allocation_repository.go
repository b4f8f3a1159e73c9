package repository

import (
	"context"
	"time"

	"github.com/clix-soa/allocation-api/internal/domain/entity"
)

// AllocationHistoryRow es la fila enriquecida del historial de asignaciones
// (join con órdenes, clientes e inventario) para reportes y exportación.
type AllocationHistoryRow struct {
	AllocationID      string
	AllocationDate    time.Time
	OrderID           string
	OrderDate         time.Time
	OrderStatus       string
	CustomerID        string
	CustomerName      string
	ProductCode       string
	ProductName       string
	Category          string
	Size              string
	Unit              string
	RequestedQuantity float64
	AllocatedQuantity float64
	AlgorithmVersion  string
}

// AllocationRepository define el puerto para el libro de asignaciones.
// Solo inserta y consulta: los registros son inmutables.
type AllocationRepository interface {
	Create(ctx context.Context, allocation *entity.Allocation) error
	GetByOrderAndInventory(ctx context.Context, orderID, inventoryID string) (*entity.Allocation, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Allocation, error)
	List(ctx context.Context, orderID, inventoryID string, limit, offset int) ([]*entity.Allocation, error)
	// History devuelve filas enriquecidas, más recientes primero.
	History(ctx context.Context, orderID, inventoryID string, limit, offset int) ([]AllocationHistoryRow, error)
}
