// README: Catalog handlers for issues and shops.
package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/matching"
	"garagehub/internal/modules/vehicle"
)

const defaultNearbyRadiusKm = 10

type CatalogHandler struct {
	garage   *garage.Service
	matching *matching.Service
	// radiusKm is used by Nearby when the request gives none.
	radiusKm float64
}

func NewCatalogHandler(garageSvc *garage.Service, matchingSvc *matching.Service, radiusKm float64) *CatalogHandler {
	return &CatalogHandler{garage: garageSvc, matching: matchingSvc, radiusKm: radiusKm}
}

// ListIssues handles GET /api/issues?fuel_type=..
func (h *CatalogHandler) ListIssues(c *gin.Context) {
	issues, err := h.garage.ListIssues(c.Request.Context(), vehicle.FuelType(c.Query("fuel_type")))
	if err != nil {
		writeGarageError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"issues": nonNil(issues)})
}

func (h *CatalogHandler) GetIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	issue, err := h.garage.GetIssue(c.Request.Context(), id)
	if err != nil {
		writeGarageError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, issue)
}

// ListShops handles GET /api/shops?city=..
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.garage.ListShops(c.Request.Context(), garage.ShopFilter{City: c.Query("city")})
	if err != nil {
		writeGarageError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"shops": nonNil(shops)})
}

func (h *CatalogHandler) GetShop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	shop, err := h.garage.GetShop(c.Request.Context(), id)
	if err != nil {
		writeGarageError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, shop)
}

// Nearby handles GET /api/shops/nearby?lat=..&lng=..&radius_km=..
func (h *CatalogHandler) Nearby(c *gin.Context) {
	origin, ok := queryPoint(c, "")
	if !ok || origin == nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius := h.radiusKm
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}
	if raw := c.Query("radius_km"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			writeError(c, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = r
	}
	shops, err := h.matching.Nearby(c.Request.Context(), *origin, radius)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"shops": shops})
}

// DeleteShop handles DELETE /api/shops/:id.
func (h *CatalogHandler) DeleteShop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.garage.DeleteShop(c.Request.Context(), id); err != nil {
		writeGarageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeGarageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, garage.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, garage.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
