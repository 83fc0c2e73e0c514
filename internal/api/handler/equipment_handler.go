package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/silverharvest/harvest-system/internal/api/metrics"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

const equipmentResource = "equipment"

// EquipmentHandler handles HTTP requests for equipment operations.
type EquipmentHandler struct {
	service ports.EquipmentService
}

func NewEquipmentHandler(service ports.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// Save handles POST /api/v1/equipment/save.
//
// @Summary      Create equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string            false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      equipmentRequest  true   "Equipment details"
// @Success      201              {object}  domain.Equipment
// @Success      200              {object}  domain.Equipment  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/v1/equipment/save [post]
func (h *EquipmentHandler) Save(c echo.Context) error {
	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	equipment, replayed, err := h.service.Create(c.Request().Context(), req.toInput(), c.Request().Header.Get(idempotencyHeader))
	if err != nil {
		return err
	}

	if replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues(equipmentResource).Inc()
		return c.JSON(http.StatusOK, equipment)
	}
	metrics.ResourceOperationsTotal.WithLabelValues(equipmentResource, "create").Inc()
	return c.JSON(http.StatusCreated, equipment)
}

// Get handles GET /api/v1/equipment/:id.
//
// @Summary      Get equipment by id
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Equipment id"
// @Success      200  {object}  domain.Equipment
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/equipment/{id} [get]
func (h *EquipmentHandler) Get(c echo.Context) error {
	equipment, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(equipmentResource, "read").Inc()
	return c.JSON(http.StatusOK, equipment)
}

// List handles GET /api/v1/equipment.
//
// @Summary      List equipment
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  equipmentList
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/equipment [get]
func (h *EquipmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = equipmentList{}
	}
	metrics.ResourceOperationsTotal.WithLabelValues(equipmentResource, "list").Inc()
	return c.JSON(http.StatusOK, equipmentList(items))
}

// Update handles PUT /api/v1/equipment/:id.
//
// @Summary      Update equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Equipment id"
// @Param        body  body      equipmentRequest  true  "Equipment details"
// @Success      200   {object}  domain.Equipment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/equipment/{id} [put]
func (h *EquipmentHandler) Update(c echo.Context) error {
	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	equipment, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(equipmentResource, "update").Inc()
	return c.JSON(http.StatusOK, equipment)
}

// Delete handles DELETE /api/v1/equipment/:id.
//
// @Summary      Delete equipment
// @Tags         equipment
// @Security     BearerAuth
// @Param        id   path  string  true  "Equipment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(equipmentResource, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
