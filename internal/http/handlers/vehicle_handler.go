// README: Vehicle handlers for an owner's garage.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/vehicle"
)

type VehicleHandler struct {
	vehicles *vehicle.Service
}

func NewVehicleHandler(svc *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: svc}
}

// ListForOwner handles GET /api/users/:id/vehicles.
func (h *VehicleHandler) ListForOwner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vs, err := h.vehicles.List(c.Request.Context(), id)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"vehicles": nonNil(vs)})
}

func (h *VehicleHandler) Register(c *gin.Context) {
	var req vehicle.RegisterCommand
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.vehicles.Register(c.Request.Context(), req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req vehicle.Details
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.vehicles.Update(c.Request.Context(), id, req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		writeVehicleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicle.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, vehicle.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, vehicle.ErrDuplicatePlate), errors.Is(err, vehicle.ErrDuplicateVIN):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
