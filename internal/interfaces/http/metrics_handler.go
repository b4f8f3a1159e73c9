package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/application/metrics"
	"github.com/clix-soa/allocation-api/internal/domain"
)

// MetricsHandler expone los puntajes de clientes (protegido).
type MetricsHandler struct {
	uc *metrics.UseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(uc *metrics.UseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// GetByCustomer godoc
// @Summary      Puntajes de un cliente (calcula si no existen)
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerMetricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/metrics [get]
func (h *MetricsHandler) GetByCustomer(c *fiber.Ctx) error {
	m, err := h.uc.GetOrCalculate(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(metrics.ToResponse(m))
}

// Recalculate godoc
// @Summary      Recalcular puntajes de un cliente
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerMetricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/metrics/recalculate [post]
func (h *MetricsHandler) Recalculate(c *fiber.Ctx) error {
	m, err := h.uc.Calculate(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(metrics.ToResponse(m))
}

// RecalculateAll godoc
// @Summary      Recalcular puntajes de todos los clientes activos
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/metrics/recalculate [post]
func (h *MetricsHandler) RecalculateAll(c *fiber.Ctx) error {
	count, err := h.uc.RecalculateAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "métricas recalculadas", Count: count})
}
