// README: End-to-end router tests against memory stores and the sample catalog.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garagehub/internal/modules/aiusage"
	"garagehub/internal/modules/appointment"
	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/location"
	"garagehub/internal/modules/matching"
	"garagehub/internal/modules/repair"
	"garagehub/internal/modules/ride"
	"garagehub/internal/modules/user"
	"garagehub/internal/modules/vehicle"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWith(t, nil, aiusage.NewService(aiusage.NewMemoryStore(), 1))
}

func newTestRouterWith(t *testing.T, extractor matching.SymptomExtractor, quota *aiusage.Service) *gin.Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	shops, issues, index := garage.NewMemoryShopStore(), garage.NewMemoryIssueStore(), location.NewMemoryIndex()
	garageSvc := garage.NewService(shops, issues, index, log)
	require.NoError(t, garageSvc.Seed(context.Background()))

	vehicleStore := vehicle.NewMemoryStore()
	users := user.NewService(user.NewMemoryStore(), user.NewMemoryLeaderboard(), log)

	return NewRouter(ServerDeps{
		Garage:         garageSvc,
		Matching:       matching.NewService(shops, issues, vehicleStore, index, extractor, log),
		Location:       location.NewService(nil, nil, log),
		Users:          users,
		Vehicles:       vehicle.NewService(vehicleStore, log),
		Repairs:        repair.NewService(repair.NewMemoryStore(), users, vehicleStore, log),
		Rides:          ride.NewService(ride.NewMemoryStore(), users, log),
		Appointments:   appointment.NewService(appointment.NewMemoryStore(), users, vehicleStore, log),
		Quota:          quota,
		Log:            log,
		Registry:       prometheus.NewRegistry(),
		AllowedOrigins: []string{"http://localhost:5173"},
		SearchRadiusKm: 5,
	})
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type userView struct {
	ID          string `json:"id"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
	RankTitle   string `json:"rank_title"`
	RankColor   string `json:"rank_color"`
}

func register(t *testing.T, r *gin.Engine, name, email, role string) userView {
	t.Helper()
	w := doRequest(r, nethttp.MethodPost, "/api/users", map[string]any{"name": name, "email": email, "role": role})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	return decode[userView](t, w)
}

func addVehicle(t *testing.T, r *gin.Engine, ownerID, plate, vin string) string {
	t.Helper()
	w := doRequest(r, nethttp.MethodPost, "/api/vehicles", map[string]any{
		"owner_id": ownerID, "make": "Toyota", "model": "Camry", "year": 2019,
		"fuel_type": "gasoline", "license_plate": plate, "vin": vin, "mileage": 42000,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	return decode[vehicle.Vehicle](t, w).ID.String()
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, nethttp.MethodGet, "/health", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doRequest(r, nethttp.MethodGet, "/metrics", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `garagehub_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestCatalogRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, nethttp.MethodGet, "/api/issues", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	all := decode[struct {
		Issues []garage.Issue `json:"issues"`
	}](t, w)
	assert.Len(t, all.Issues, 6)

	w = doRequest(r, nethttp.MethodGet, "/api/issues?fuel_type=electric", nil)
	electric := decode[struct {
		Issues []garage.Issue `json:"issues"`
	}](t, w)
	for _, i := range electric.Issues {
		assert.NotEqual(t, "Engine Problems", i.Name)
	}

	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodGet, "/api/issues/99", nil).Code)
	assert.Equal(t, nethttp.StatusOK, doRequest(r, nethttp.MethodGet, "/api/shops/4", nil).Code)

	w = doRequest(r, nethttp.MethodGet, "/api/shops?city=springfield", nil)
	shops := decode[struct {
		Shops []garage.Shop `json:"shops"`
	}](t, w)
	assert.Len(t, shops.Shops, 4)
}

func TestNearbyShops(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, nethttp.MethodGet, "/api/shops/nearby?lat=39.7901&lng=-89.6440&radius_km=1.2", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	got := decode[struct {
		Shops []matching.NearbyShop `json:"shops"`
	}](t, w)
	require.Len(t, got.Shops, 2)
	assert.Equal(t, "2", got.Shops[0].Shop.ID.String())
	assert.Equal(t, "1", got.Shops[1].Shop.ID.String())

	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodGet, "/api/shops/nearby?lat=abc&lng=1", nil).Code)
	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodGet, "/api/shops/nearby", nil).Code)

	for _, query := range []string{
		"lat=39.7901&lng=-89.6440&radius_km=NaN",
		"lat=39.7901&lng=-89.6440&radius_km=Inf",
		"lat=39.7901&lng=-89.6440&radius_km=-2",
		"lat=NaN&lng=-89.6440",
		"lat=91&lng=-89.6440",
		"lat=39.7901&lng=200",
	} {
		w := doRequest(r, nethttp.MethodGet, "/api/shops/nearby?"+query, nil)
		assert.Equal(t, nethttp.StatusBadRequest, w.Code, query)
	}
}

func TestDeleteShop(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, nethttp.StatusNoContent, doRequest(r, nethttp.MethodDelete, "/api/shops/2", nil).Code)
	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodGet, "/api/shops/2", nil).Code)
	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodDelete, "/api/shops/2", nil).Code)

	w := doRequest(r, nethttp.MethodGet, "/api/shops/nearby?lat=39.7901&lng=-89.6440&radius_km=1.2", nil)
	got := decode[struct {
		Shops []matching.NearbyShop `json:"shops"`
	}](t, w)
	require.Len(t, got.Shops, 1)
	assert.Equal(t, "1", got.Shops[0].Shop.ID.String())
}

func TestSearchRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{"issue_id": "2"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	got := decode[struct {
		Results []matching.Result `json:"results"`
	}](t, w)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "1", got.Results[0].Shop.ID.String())
	assert.Equal(t, "3", got.Results[1].Shop.ID.String())
	assert.Nil(t, got.Results[0].DistanceKm)

	w = doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{
		"issue_id": "2",
		"origin":   map[string]float64{"lat": 39.7901, "lng": -89.6440},
	})
	located := decode[struct {
		Results []matching.Result `json:"results"`
	}](t, w)
	require.Len(t, located.Results, 2)
	require.NotNil(t, located.Results[0].DistanceKm)
	assert.LessOrEqual(t, *located.Results[0].DistanceKm, *located.Results[1].DistanceKm)

	w = doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{"issue_id": "404"})
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())

	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{}).Code)
	assert.Equal(t, nethttp.StatusNotFound,
		doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{"issue_id": "1", "vehicle_id": "ghost"}).Code)

	w = doRequest(r, nethttp.MethodPost, "/api/search/diagnose", map[string]any{"vehicle_id": "v", "description": "squeal"})
	assert.Equal(t, nethttp.StatusServiceUnavailable, w.Code)

	w = doRequest(r, nethttp.MethodGet, "/api/mechanics/search?specialization=diag", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	mechs := decode[struct {
		Mechanics []matching.MechanicMatch `json:"mechanics"`
	}](t, w)
	require.NotEmpty(t, mechs.Mechanics)
	assert.Equal(t, "Sarah Chen", mechs.Mechanics[0].Mechanic.Name)
}

func TestSymptomSearchRoute(t *testing.T) {
	r := newTestRouter(t)
	owner := register(t, r, "Olga", "olga@example.com", "vehicle_owner")
	carID := addVehicle(t, r, owner.ID, "ABC-123", "1HGCM82633A004352")

	w := doRequest(r, nethttp.MethodPost, "/api/search/symptoms", map[string]any{
		"vehicle_id": carID,
		"symptoms":   []string{"brake warning"},
	})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	got := decode[struct {
		Matches []matching.IssueMatches `json:"matches"`
	}](t, w)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Brake System Issues", got.Matches[0].Issue.Name)

	w = doRequest(r, nethttp.MethodPost, "/api/search/symptoms", map[string]any{"vehicle_id": carID})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestLocationRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, nethttp.MethodPost, "/api/location/resolve", map[string]any{
		"point": map[string]float64{"lat": 39.7817, "lng": -89.6501},
	})
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "39.781700, -89.650100", decode[location.Place](t, w).Label)

	w = doRequest(r, nethttp.MethodPost, "/api/location/resolve", map[string]any{"address": "123 Main St"})
	assert.Equal(t, nethttp.StatusServiceUnavailable, w.Code)

	w = doRequest(r, nethttp.MethodPost, "/api/location/resolve", map[string]any{})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	w = doRequest(r, nethttp.MethodGet, "/api/location/travel?from_lat=39.7901&from_lng=-89.6440&to_lat=39.7817&to_lng=-89.6501", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	est := decode[location.Estimate](t, w)
	assert.InDelta(t, 1.07, est.DistanceKm, 0.05)
	assert.Nil(t, est.DrivingMinutes)

	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodGet, "/api/location/travel?from_lat=1&from_lng=2", nil).Code)

	for _, from := range []string{"from_lat=NaN&from_lng=-89.6440", "from_lat=999&from_lng=-89.6440", "from_lat=39.79&from_lng=-Inf"} {
		w := doRequest(r, nethttp.MethodGet, "/api/location/travel?"+from+"&to_lat=39.7817&to_lng=-89.6501", nil)
		assert.Equal(t, nethttp.StatusBadRequest, w.Code, from)
	}

	w = doRequest(r, nethttp.MethodPost, "/api/location/resolve", map[string]any{
		"point": map[string]float64{"lat": 95, "lng": 10},
	})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	w = doRequest(r, nethttp.MethodPost, "/api/search", map[string]any{
		"issue_id": "1", "origin": map[string]float64{"lat": 39.79, "lng": 181},
	})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestUserRoutes(t *testing.T) {
	r := newTestRouter(t)

	u := register(t, r, "Mike", "Mike@Example.com", "mechanic")
	assert.Equal(t, 0, u.TotalPoints)
	assert.Equal(t, 6, u.Rank)
	assert.Equal(t, "Apprentice", u.RankTitle)
	assert.NotEmpty(t, u.RankColor)

	w := doRequest(r, nethttp.MethodPost, "/api/users", map[string]any{"name": "Dup", "email": "mike@example.com", "role": "mechanic"})
	assert.Equal(t, nethttp.StatusConflict, w.Code)
	w = doRequest(r, nethttp.MethodPost, "/api/users", map[string]any{"name": "Bad", "email": "not-an-email", "role": "mechanic"})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	w = doRequest(r, nethttp.MethodPost, "/api/users/login", map[string]any{"email": "MIKE@example.com", "password": "x"})
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, u.ID, decode[userView](t, w).ID)

	w = doRequest(r, nethttp.MethodPost, "/api/users/login", map[string]any{"email": "nobody@example.com"})
	assert.Equal(t, nethttp.StatusNotFound, w.Code)

	w = doRequest(r, nethttp.MethodPut, "/api/users/"+u.ID, map[string]any{"name": "Michael", "phone": "555-0100"})
	require.Equal(t, nethttp.StatusOK, w.Code)

	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodGet, "/api/rankings?role=pilot", nil).Code)
	assert.Equal(t, nethttp.StatusBadRequest, doRequest(r, nethttp.MethodGet, "/api/rankings?role=mechanic&limit=x", nil).Code)
}

func TestVehicleRoutes(t *testing.T) {
	r := newTestRouter(t)
	owner := register(t, r, "Olga", "olga@example.com", "vehicle_owner")
	id := addVehicle(t, r, owner.ID, "ABC-123", "1HGCM82633A004352")

	w := doRequest(r, nethttp.MethodPost, "/api/vehicles", map[string]any{
		"owner_id": owner.ID, "make": "Honda", "model": "Civic", "year": 2020,
		"fuel_type": "gasoline", "license_plate": "abc-123", "vin": "OTHERVIN",
	})
	assert.Equal(t, nethttp.StatusConflict, w.Code)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+owner.ID+"/vehicles", nil)
	list := decode[struct {
		Vehicles []vehicle.Vehicle `json:"vehicles"`
	}](t, w)
	assert.Len(t, list.Vehicles, 1)

	assert.Equal(t, nethttp.StatusNoContent, doRequest(r, nethttp.MethodDelete, "/api/vehicles/"+id, nil).Code)
	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodDelete, "/api/vehicles/"+id, nil).Code)
}

func TestRepairRoutesMovePoints(t *testing.T) {
	r := newTestRouter(t)
	mechanic := register(t, r, "Mike", "mike@example.com", "mechanic")
	owner := register(t, r, "Olga", "olga@example.com", "vehicle_owner")
	carID := addVehicle(t, r, owner.ID, "ABC-123", "1HGCM82633A004352")

	w := doRequest(r, nethttp.MethodPost, "/api/repairs", map[string]any{
		"mechanic_id": mechanic.ID, "owner_id": owner.ID, "vehicle_id": carID,
		"service_type": "Brake pads", "labor_cost": 800,
		"parts":  []map[string]any{{"name": "Pad set", "unit_cost": 100, "quantity": 2}},
		"status": "completed", "estimated_hours": 2, "actual_hours": 1,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	tx := decode[repair.Transaction](t, w)
	assert.Equal(t, 1000.0, tx.TotalCost)
	assert.Positive(t, tx.Provider.Points)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+mechanic.ID, nil)
	assert.Equal(t, tx.Provider.Points, decode[userView](t, w).TotalPoints)

	w = doRequest(r, nethttp.MethodGet, "/api/rankings?role=mechanic", nil)
	rankings := decode[struct {
		Rankings []userView `json:"rankings"`
	}](t, w)
	require.Len(t, rankings.Rankings, 1)
	assert.Equal(t, mechanic.ID, rankings.Rankings[0].ID)

	rate := map[string]any{"role": "mechanic", "rating": 4.5, "review": "quick"}
	assert.Equal(t, nethttp.StatusOK, doRequest(r, nethttp.MethodPost, "/api/repairs/"+tx.ID.String()+"/rating", rate).Code)
	assert.Equal(t, nethttp.StatusConflict, doRequest(r, nethttp.MethodPost, "/api/repairs/"+tx.ID.String()+"/rating", rate).Code)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+mechanic.ID+"/repairs?role=mechanic", nil)
	mine := decode[struct {
		Repairs []repair.Transaction `json:"repairs"`
	}](t, w)
	assert.Len(t, mine.Repairs, 1)

	assert.Equal(t, nethttp.StatusNoContent, doRequest(r, nethttp.MethodDelete, "/api/repairs/"+tx.ID.String(), nil).Code)
	w = doRequest(r, nethttp.MethodGet, "/api/users/"+mechanic.ID, nil)
	assert.Equal(t, 0, decode[userView](t, w).TotalPoints)
}

func TestRideRoutes(t *testing.T) {
	r := newTestRouter(t)
	rider := register(t, r, "Olga", "olga@example.com", "vehicle_owner")

	w := doRequest(r, nethttp.MethodPost, "/api/rides", map[string]any{
		"rider_id": rider.ID, "pickup": "Home", "dropoff": "Elite Auto",
		"distance_km": 12, "fare": 30,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	created := decode[ride.Ride](t, w)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+rider.ID+"/rides", nil)
	got := decode[struct {
		Rides []ride.Ride `json:"rides"`
		Stats ride.Stats  `json:"stats"`
	}](t, w)
	require.Len(t, got.Rides, 1)
	assert.Equal(t, created.PointsEarned, got.Stats.TotalPoints)
	assert.Equal(t, 30.0, got.Stats.TotalSpent)

	w = doRequest(r, nethttp.MethodPost, "/api/rides", map[string]any{"rider_id": rider.ID, "pickup": "Home"})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	assert.Equal(t, nethttp.StatusNoContent, doRequest(r, nethttp.MethodDelete, "/api/rides/"+created.ID.String(), nil).Code)
	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodDelete, "/api/rides/"+created.ID.String(), nil).Code)
}

func TestAppointmentRoutes(t *testing.T) {
	r := newTestRouter(t)
	mechanic := register(t, r, "Mike", "mike@example.com", "mechanic")
	owner := register(t, r, "Olga", "olga@example.com", "vehicle_owner")
	carID := addVehicle(t, r, owner.ID, "ABC-123", "1HGCM82633A004352")

	w := doRequest(r, nethttp.MethodPost, "/api/appointments", map[string]any{
		"vehicle_id": carID, "mechanic_id": mechanic.ID, "owner_id": owner.ID,
		"scheduled_at": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"service_type": "Oil change",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	id := decode[appointment.Appointment](t, w).ID.String()

	assert.Equal(t, nethttp.StatusConflict, doRequest(r, nethttp.MethodPost, "/api/appointments/"+id+"/complete", nil).Code)

	w = doRequest(r, nethttp.MethodPost, "/api/appointments/"+id+"/confirm", map[string]any{"actor_id": mechanic.ID})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, appointment.StatusConfirmed, decode[appointment.Appointment](t, w).Status)

	w = doRequest(r, nethttp.MethodPost, "/api/appointments/"+id+"/complete", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, appointment.StatusCompleted, decode[appointment.Appointment](t, w).Status)

	assert.Equal(t, nethttp.StatusConflict, doRequest(r, nethttp.MethodPost, "/api/appointments/"+id+"/cancel", nil).Code)
	assert.Equal(t, nethttp.StatusNotFound, doRequest(r, nethttp.MethodPost, "/api/appointments/missing/confirm", nil).Code)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+mechanic.ID+"/appointments?role=mechanic", nil)
	list := decode[struct {
		Appointments []appointment.Appointment `json:"appointments"`
	}](t, w)
	assert.Len(t, list.Appointments, 1)

	assert.Equal(t, nethttp.StatusNoContent, doRequest(r, nethttp.MethodDelete, "/api/appointments/"+id, nil).Code)
}

type fixedExtractor struct{ symptoms []string }

func (e fixedExtractor) ExtractSymptoms(context.Context, string, []string) ([]string, error) {
	return e.symptoms, nil
}

func TestDiagnosisQuota(t *testing.T) {
	r := newTestRouterWith(t, fixedExtractor{symptoms: []string{"Squeaking or grinding brakes"}},
		aiusage.NewService(aiusage.NewMemoryStore(), 1))

	owner := register(t, r, "Quota Owner", "quota@example.com", "vehicle_owner")
	car := addVehicle(t, r, owner.ID, "QUO-1", "VINQUOTA0001")

	w := doRequest(r, nethttp.MethodGet, "/api/users/"+owner.ID+"/diagnosis-quota", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"metered":true,"remaining":1}`, w.Body.String())

	body := map[string]any{"user_id": owner.ID, "vehicle_id": car, "description": "brakes squeal"}
	w = doRequest(r, nethttp.MethodPost, "/api/search/diagnose", body)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	d := decode[matching.Diagnosis](t, w)
	assert.Equal(t, []string{"Squeaking or grinding brakes"}, d.Symptoms)

	w = doRequest(r, nethttp.MethodPost, "/api/search/diagnose", body)
	assert.Equal(t, nethttp.StatusTooManyRequests, w.Code)

	w = doRequest(r, nethttp.MethodGet, "/api/users/"+owner.ID+"/diagnosis-quota", nil)
	assert.JSONEq(t, `{"metered":true,"remaining":0}`, w.Body.String())

	// Anonymous diagnoses are not metered.
	delete(body, "user_id")
	assert.Equal(t, nethttp.StatusOK, doRequest(r, nethttp.MethodPost, "/api/search/diagnose", body).Code)
}
