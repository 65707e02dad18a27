// README: Base handler utilities (JSON helpers, request parsing).
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func pathID(c *gin.Context) (types.ID, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing id")
		return "", false
	}
	return types.ID(id), true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// queryPoint reads a coordinate from the lat/lng (or prefix_lat/prefix_lng)
// query parameters. ok is false only when the values are present but malformed
// or outside the WGS84 ranges.
func queryPoint(c *gin.Context, prefix string) (p *types.Point, ok bool) {
	latKey, lngKey := "lat", "lng"
	if prefix != "" {
		latKey, lngKey = prefix+"_lat", prefix+"_lng"
	}
	latRaw, lngRaw := c.Query(latKey), c.Query(lngKey)
	if latRaw == "" && lngRaw == "" {
		return nil, true
	}
	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lng, err2 := strconv.ParseFloat(lngRaw, 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	p = &types.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil, false
	}
	return p, true
}

func queryRole(c *gin.Context, def points.Role) points.Role {
	if r := c.Query("role"); r != "" {
		return points.Role(r)
	}
	return def
}
