package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/silverharvest/harvest-system/internal/api/metrics"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

const vehicleResource = "vehicle"

// VehicleHandler handles HTTP requests for vehicle operations.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Save handles POST /api/v1/vehicle/save.
//
// @Summary      Register a vehicle
// @Tags         vehicle
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      vehicleRequest  true   "Vehicle details"
// @Success      201              {object}  domain.Vehicle
// @Success      200              {object}  domain.Vehicle  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/v1/vehicle/save [post]
func (h *VehicleHandler) Save(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	vehicle, replayed, err := h.service.Create(c.Request().Context(), req.toInput(), c.Request().Header.Get(idempotencyHeader))
	if err != nil {
		return err
	}

	if replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues(vehicleResource).Inc()
		return c.JSON(http.StatusOK, vehicle)
	}
	metrics.ResourceOperationsTotal.WithLabelValues(vehicleResource, "create").Inc()
	return c.JSON(http.StatusCreated, vehicle)
}

// GetAll handles GET /api/v1/vehicle/getAll.
//
// @Summary      List vehicles
// @Tags         vehicle
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  vehicleList
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/vehicle/getAll [get]
func (h *VehicleHandler) GetAll(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = vehicleList{}
	}
	metrics.ResourceOperationsTotal.WithLabelValues(vehicleResource, "list").Inc()
	return c.JSON(http.StatusOK, vehicleList(items))
}

// Get handles GET /api/v1/vehicle/:vehicleCode.
//
// @Summary      Get a vehicle by code
// @Tags         vehicle
// @Produce      json
// @Security     BearerAuth
// @Param        vehicleCode  path      string  true  "Vehicle code"
// @Success      200          {object}  domain.Vehicle
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/v1/vehicle/{vehicleCode} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	vehicle, err := h.service.Get(c.Request().Context(), c.Param("vehicleCode"))
	if err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(vehicleResource, "read").Inc()
	return c.JSON(http.StatusOK, vehicle)
}

// Update handles PUT /api/v1/vehicle/update/:vehicleCode.
//
// @Summary      Update a vehicle
// @Tags         vehicle
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        vehicleCode  path      string          true  "Vehicle code"
// @Param        body         body      vehicleRequest  true  "Vehicle details"
// @Success      200          {object}  domain.Vehicle
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /api/v1/vehicle/update/{vehicleCode} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	vehicle, err := h.service.Update(c.Request().Context(), c.Param("vehicleCode"), req.toInput())
	if err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(vehicleResource, "update").Inc()
	return c.JSON(http.StatusOK, vehicle)
}

// Delete handles DELETE /api/v1/vehicle/delete/:vehicleCode.
//
// @Summary      Delete a vehicle
// @Tags         vehicle
// @Security     BearerAuth
// @Param        vehicleCode  path  string  true  "Vehicle code"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/vehicle/delete/{vehicleCode} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("vehicleCode")); err != nil {
		return err
	}
	metrics.ResourceOperationsTotal.WithLabelValues(vehicleResource, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
