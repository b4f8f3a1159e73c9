package http

import (
	"bytes"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clix-soa/allocation-api/internal/application/allocation"
	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/application/export"
	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// RunLocker serializa corridas de asignación: Acquire devuelve ErrRunInProgress
// si otra corrida está activa.
type RunLocker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// SheetGenerator genera la hoja imprimible de asignación de una orden.
type SheetGenerator interface {
	GenerateAllocationSheet(ctx context.Context, order *entity.Order, customer *entity.Customer, rows []repository.AllocationHistoryRow) ([]byte, error)
}

// AllocationHandler maneja corridas de asignación, historial y descargas (protegido).
type AllocationHandler struct {
	runUC        *allocation.UseCase
	exportUC     *export.UseCase
	locker       RunLocker
	allocRepo    repository.AllocationRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	sheets       SheetGenerator
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(
	runUC *allocation.UseCase,
	exportUC *export.UseCase,
	locker RunLocker,
	allocRepo repository.AllocationRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	sheets SheetGenerator,
) *AllocationHandler {
	return &AllocationHandler{
		runUC:        runUC,
		exportUC:     exportUC,
		locker:       locker,
		allocRepo:    allocRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		sheets:       sheets,
	}
}

// Run godoc
// @Summary      Ejecutar corrida de asignación sobre órdenes pendientes
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocationRequest  false  "order_ids vacío = todas las pendientes"
// @Success      200   {array}   dto.AllocationResult
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/run [post]
func (h *AllocationHandler) Run(c *fiber.Ctx) error {
	var in dto.AllocationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	release, err := h.locker.Acquire(c.Context())
	if err != nil {
		if err == domain.ErrRunInProgress {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RUN_IN_PROGRESS", Message: "otra corrida de asignación está en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	defer release()

	results, err := h.runUC.AllocateOrders(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(results)
}

// List godoc
// @Summary      Listar registros del libro de asignaciones
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        order_id      query  string  false  "Filtrar por orden"
// @Param        inventory_id  query  string  false  "Filtrar por ítem"
// @Param        limit         query  int     false  "Límite"   default(50)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200           {array}  dto.AllocationResponse
// @Router       /api/allocations [get]
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.allocRepo.List(c.Context(), c.Query("order_id"), c.Query("inventory_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AllocationResponse{
			ID:                a.ID,
			OrderID:           a.OrderID,
			InventoryID:       a.InventoryID,
			AllocatedQuantity: a.AllocatedQuantity,
			AllocationDate:    a.AllocationDate,
			AlgorithmVersion:  a.AlgorithmVersion,
		})
	}
	return c.JSON(out)
}

// ListByOrder godoc
// @Summary      Listar asignaciones de una orden
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocations [get]
func (h *AllocationHandler) ListByOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderRepo.GetByID(c.Context(), orderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	list, err := h.allocRepo.ListByOrder(c.Context(), orderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AllocationResponse{
			ID:                a.ID,
			OrderID:           a.OrderID,
			InventoryID:       a.InventoryID,
			AllocatedQuantity: a.AllocatedQuantity,
			AllocationDate:    a.AllocationDate,
			AlgorithmVersion:  a.AlgorithmVersion,
		})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar historial de asignaciones como XLSX
// @Tags         allocations
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        order_id      query  string  false  "Filtrar por orden"
// @Param        inventory_id  query  string  false  "Filtrar por ítem"
// @Success      200  {file}  binary
// @Router       /api/allocations/export [get]
func (h *AllocationHandler) Export(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	var buf bytes.Buffer
	if _, err := h.exportUC.WriteAllocationsXLSX(c.Context(), orderID, c.Query("inventory_id"), &buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := export.Filename(orderID, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// Sheet godoc
// @Summary      Hoja imprimible (PDF) de la asignación de una orden
// @Tags         allocations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocation-sheet [get]
func (h *AllocationHandler) Sheet(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderRepo.GetByID(c.Context(), orderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	customer, err := h.customerRepo.GetByID(c.Context(), order.CustomerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	rows, err := h.allocRepo.History(c.Context(), orderID, "", 1000, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.sheets.GenerateAllocationSheet(c.Context(), order, customer, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="allocation_`+orderID+`.pdf"`)
	return c.Send(pdfBytes)
}
