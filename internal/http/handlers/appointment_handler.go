// README: Appointment handlers for scheduling and status transitions.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/appointment"
	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

type AppointmentHandler struct {
	appointments *appointment.Service
}

func NewAppointmentHandler(svc *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{appointments: svc}
}

// ListForUser handles GET /api/users/:id/appointments?role=..
func (h *AppointmentHandler) ListForUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.appointments.List(c.Request.Context(), id, queryRole(c, points.RoleVehicleOwner))
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"appointments": nonNil(list)})
}

func (h *AppointmentHandler) Schedule(c *gin.Context) {
	var req appointment.ScheduleCommand
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.appointments.Schedule(c.Request.Context(), req)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, a)
}

type transitionReq struct {
	ActorID string `json:"actor_id"`
}

type transitionFunc func(ctx context.Context, id types.ID, actorID *types.ID) (*appointment.Appointment, error)

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.transition(c, h.appointments.Confirm) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.transition(c, h.appointments.Complete) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.transition(c, h.appointments.Cancel) }

// transition accepts an optional {"actor_id": ..} body.
func (h *AppointmentHandler) transition(c *gin.Context, move transitionFunc) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transitionReq
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	var actor *types.ID
	if req.ActorID != "" {
		a := types.ID(req.ActorID)
		actor = &a
	}
	a, err := move(c.Request.Context(), id, actor)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, a)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		writeAppointmentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointment.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appointment.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appointment.ErrInvalidState), errors.Is(err, appointment.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
