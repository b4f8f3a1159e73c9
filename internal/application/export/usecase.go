// Package export genera descargas del historial de asignaciones (XLSX).
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// maxExportRows cota superior de filas por archivo exportado.
const maxExportRows = 10000

// UseCase exporta el historial de asignaciones como hoja de cálculo.
type UseCase struct {
	allocationRepo repository.AllocationRepository
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(allocationRepo repository.AllocationRepository) *UseCase {
	return &UseCase{allocationRepo: allocationRepo}
}

// xlsxHeaders columnas del reporte, en orden.
var xlsxHeaders = []string{
	"Allocation ID", "Allocation Date", "Order ID", "Customer ID", "Customer Name",
	"Product Code", "Product Name", "Category", "Size",
	"Requested Quantity", "Allocated Quantity", "Allocation Percentage",
	"Unit", "Algorithm Version", "Order Date", "Order Status",
}

// WriteAllocationsXLSX escribe el historial (opcionalmente filtrado por orden
// o por ítem de inventario) como XLSX en w. Devuelve la cantidad de filas.
func (uc *UseCase) WriteAllocationsXLSX(ctx context.Context, orderID, inventoryID string, w io.Writer) (int, error) {
	rows, err := uc.allocationRepo.History(ctx, orderID, inventoryID, maxExportRows, 0)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Allocations"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return 0, fmt.Errorf("export: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	// La hoja por defecto "Sheet1" sobra.
	_ = f.DeleteSheet("Sheet1")

	for col, h := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return 0, err
		}
	}

	for i, row := range rows {
		var pct float64
		if row.RequestedQuantity > 0 {
			pct = row.AllocatedQuantity / row.RequestedQuantity * 100
		}
		values := []interface{}{
			row.AllocationID,
			row.AllocationDate.Format("2006-01-02 15:04:05"),
			row.OrderID,
			row.CustomerID,
			row.CustomerName,
			row.ProductCode,
			row.ProductName,
			row.Category,
			row.Size,
			row.RequestedQuantity,
			row.AllocatedQuantity,
			pct,
			row.Unit,
			row.AlgorithmVersion,
			row.OrderDate.Format("2006-01-02"),
			row.OrderStatus,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return 0, err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return len(rows), nil
}

// Filename arma el nombre del archivo descargado.
func Filename(orderID string, now string) string {
	if orderID != "" {
		return fmt.Sprintf("allocation_order_%s_%s.xlsx", orderID, now)
	}
	return fmt.Sprintf("allocation_all_%s.xlsx", now)
}
