// README: Repair handlers; creating and deleting a repair moves both parties' points.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/points"
	"garagehub/internal/modules/repair"
)

type RepairHandler struct {
	repairs *repair.Service
}

func NewRepairHandler(svc *repair.Service) *RepairHandler {
	return &RepairHandler{repairs: svc}
}

// ListForUser handles GET /api/users/:id/repairs?role=mechanic|vehicle_owner.
func (h *RepairHandler) ListForUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	txs, err := h.repairs.List(c.Request.Context(), id, queryRole(c, points.RoleVehicleOwner))
	if err != nil {
		writeRepairError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"repairs": nonNil(txs)})
}

func (h *RepairHandler) Create(c *gin.Context) {
	var req repair.CreateCommand
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.repairs.Create(c.Request.Context(), req)
	if err != nil {
		writeRepairError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, tx)
}

// Rate handles POST /api/repairs/:id/rating.
func (h *RepairHandler) Rate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req repair.RateCommand
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.repairs.Rate(c.Request.Context(), id, req)
	if err != nil {
		writeRepairError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tx)
}

func (h *RepairHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repairs.Delete(c.Request.Context(), id); err != nil {
		writeRepairError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeRepairError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repair.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repair.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repair.ErrNotCompleted), errors.Is(err, repair.ErrAlreadyRated):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
