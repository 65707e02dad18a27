// Package location: geo_utils contains pure geographic computation helpers.
package location

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"garagehub/internal/types"
)

const (
	earthRadiusKm = 6371.0
	// urbanSpeedKmh is the effective city driving speed used for travel estimates.
	urbanSpeedKmh = 25.0
	// axisThresholdDeg is the minimum delta on both axes before a direction gets
	// a secondary component (e.g. "Northeast").
	axisThresholdDeg = 0.001
)

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm returns the great-circle distance between a and b rounded to two
// decimal places.
func DistanceKm(a, b types.Point) float64 {
	d := haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
	return math.Round(d*100) / 100
}

// TravelMinutes estimates urban driving time for distanceKm at a fixed 25 km/h.
func TravelMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm / urbanSpeedKmh * 60))
}

// FormatDistance renders metres below one kilometre and kilometres otherwise.
func FormatDistance(distanceKm float64) string {
	if distanceKm < 1 {
		return fmt.Sprintf("%dm", int(math.Round(distanceKm*1000)))
	}
	return strconv.FormatFloat(distanceKm, 'f', -1, 64) + "km"
}

// FormatTravelTime renders "N min" under an hour, then "Hh" or "Hh Mm".
func FormatTravelTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// Direction returns a compass label for travelling from one point to another.
// The dominant axis wins; when both axes move noticeably and the dominant one
// is east/west, the label becomes an intercardinal such as "Southwest".
func Direction(from, to types.Point) string {
	dLat := to.Lat - from.Lat
	dLng := to.Lng - from.Lng

	var direction string
	if math.Abs(dLat) > math.Abs(dLng) {
		direction = northSouth(dLat)
	} else {
		direction = eastWest(dLng)
	}

	if math.Abs(dLat) > axisThresholdDeg && math.Abs(dLng) > axisThresholdDeg {
		secondary := northSouth(dLat)
		if direction != secondary {
			direction = secondary + strings.ToLower(eastWest(dLng))
		}
	}
	return direction
}

func northSouth(dLat float64) string {
	if dLat > 0 {
		return "North"
	}
	return "South"
}

func eastWest(dLng float64) string {
	if dLng > 0 {
		return "East"
	}
	return "West"
}

// SortByDistance performs a stable insertion sort (fine for small N) on any
// slice where each element exposes a distance via the accessor function.
func SortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
