// README: Search handlers (issue search, symptom search, AI diagnosis, mechanic lookup).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/aiusage"
	"garagehub/internal/modules/matching"
	"garagehub/internal/types"
)

type SearchHandler struct {
	matching *matching.Service
	quota    *aiusage.Service
	radiusKm float64
}

// NewSearchHandler builds the search endpoints. quota may be nil, which
// leaves diagnoses unmetered.
func NewSearchHandler(svc *matching.Service, quota *aiusage.Service, radiusKm float64) *SearchHandler {
	return &SearchHandler{matching: svc, quota: quota, radiusKm: radiusKm}
}

type searchReq struct {
	IssueID   string            `json:"issue_id"`
	VehicleID string            `json:"vehicle_id"`
	Filters   *matching.Filters `json:"filters"`
	Origin    *types.Point      `json:"origin"`
	RadiusKm  *float64          `json:"radius_km"`
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchReq
	if !bindJSON(c, &req) {
		return
	}
	radius := h.radiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}
	results, err := h.matching.Search(c.Request.Context(), matching.SearchQuery{
		IssueID:   types.ID(req.IssueID),
		VehicleID: types.ID(req.VehicleID),
		Filters:   req.Filters,
		Origin:    req.Origin,
		RadiusKm:  radius,
	})
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"results": nonNil(results)})
}

type symptomSearchReq struct {
	VehicleID string       `json:"vehicle_id"`
	Symptoms  []string     `json:"symptoms"`
	Origin    *types.Point `json:"origin"`
}

// SearchBySymptoms handles POST /api/search/symptoms.
func (h *SearchHandler) SearchBySymptoms(c *gin.Context) {
	var req symptomSearchReq
	if !bindJSON(c, &req) {
		return
	}
	matches, err := h.matching.SearchBySymptoms(c.Request.Context(), types.ID(req.VehicleID), req.Symptoms, req.Origin)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"matches": nonNil(matches)})
}

type diagnoseReq struct {
	UserID      string       `json:"user_id"`
	VehicleID   string       `json:"vehicle_id"`
	Description string       `json:"description"`
	Origin      *types.Point `json:"origin"`
}

// Diagnose handles POST /api/search/diagnose.
func (h *SearchHandler) Diagnose(c *gin.Context) {
	var req diagnoseReq
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if h.quota != nil && req.UserID != "" && h.matching.CanDiagnose() {
		if err := h.quota.UseToken(ctx, types.ID(req.UserID)); err != nil {
			writeMatchingError(c, err)
			return
		}
	}

	d, err := h.matching.Diagnose(ctx, types.ID(req.VehicleID), strings.TrimSpace(req.Description), req.Origin)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// DiagnosisQuota handles GET /api/users/:id/diagnosis-quota.
func (h *SearchHandler) DiagnosisQuota(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if h.quota == nil {
		writeJSON(c, http.StatusOK, map[string]any{"metered": false})
		return
	}
	left, err := h.quota.Remaining(c.Request.Context(), id)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"metered": true, "remaining": left})
}

// FindMechanics handles GET /api/mechanics/search?specialization=a&specialization=b
func (h *SearchHandler) FindMechanics(c *gin.Context) {
	var specs []string
	for _, raw := range c.QueryArray("specialization") {
		specs = append(specs, strings.Split(raw, ",")...)
	}
	found, err := h.matching.FindMechanics(c.Request.Context(), specs)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"mechanics": nonNil(found)})
}

func writeMatchingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matching.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, matching.ErrVehicleNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrDiagnosisUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, "monthly diagnosis allowance used up")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
