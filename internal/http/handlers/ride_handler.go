// README: Ride handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/ride"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(svc *ride.Service) *RideHandler {
	return &RideHandler{rides: svc}
}

// ListForUser handles GET /api/users/:id/rides and includes the rider's totals.
func (h *RideHandler) ListForUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rides, err := h.rides.List(c.Request.Context(), id)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"rides": nonNil(rides), "stats": ride.Summarize(rides)})
}

func (h *RideHandler) Create(c *gin.Context) {
	var req ride.CreateCommand
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.rides.Create(c.Request.Context(), req)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RideHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rides.Delete(c.Request.Context(), id); err != nil {
		writeRideError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ride.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ride.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
