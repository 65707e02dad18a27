// README: Location handlers for resolving places and estimating travel.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/location"
	"garagehub/internal/types"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{location: svc}
}

type resolveReq struct {
	Point   *types.Point `json:"point"`
	Address string       `json:"address"`
}

// Resolve handles POST /api/location/resolve.
func (h *LocationHandler) Resolve(c *gin.Context) {
	var req resolveReq
	if !bindJSON(c, &req) {
		return
	}
	place, err := h.location.Resolve(c.Request.Context(), location.Query{Point: req.Point, Address: req.Address})
	if err != nil {
		writeLocationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, place)
}

// Travel handles GET /api/location/travel?from_lat=..&from_lng=..&to_lat=..&to_lng=..
func (h *LocationHandler) Travel(c *gin.Context) {
	from, ok1 := queryPoint(c, "from")
	to, ok2 := queryPoint(c, "to")
	if !ok1 || !ok2 || from == nil || to == nil {
		writeError(c, http.StatusBadRequest, "from and to coordinates are required")
		return
	}
	writeJSON(c, http.StatusOK, h.location.Travel(c.Request.Context(), *from, *to))
}

func writeLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, location.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, location.ErrLocationNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, location.ErrGeocoderUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
