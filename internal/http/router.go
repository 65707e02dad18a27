// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"garagehub/internal/http/handlers"
	"garagehub/internal/http/middleware"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	corsCfg := cors.Config{
		AllowOrigins:  deps.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}

	router.Use(
		middleware.Recovery(deps.Log),
		middleware.Logging(deps.Log),
		metrics.Handler(),
		cors.New(corsCfg),
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	catalog := handlers.NewCatalogHandler(deps.Garage, deps.Matching, deps.SearchRadiusKm)
	search := handlers.NewSearchHandler(deps.Matching, deps.Quota, deps.SearchRadiusKm)
	loc := handlers.NewLocationHandler(deps.Location)
	users := handlers.NewUserHandler(deps.Users)
	vehicles := handlers.NewVehicleHandler(deps.Vehicles)
	repairs := handlers.NewRepairHandler(deps.Repairs)
	rides := handlers.NewRideHandler(deps.Rides)
	appointments := handlers.NewAppointmentHandler(deps.Appointments)

	api := router.Group("/api")
	{
		api.GET("/issues", catalog.ListIssues)
		api.GET("/issues/:id", catalog.GetIssue)
		api.GET("/shops", catalog.ListShops)
		api.GET("/shops/nearby", catalog.Nearby)
		api.GET("/shops/:id", catalog.GetShop)
		api.DELETE("/shops/:id", catalog.DeleteShop)

		api.POST("/search", search.Search)
		api.POST("/search/symptoms", search.SearchBySymptoms)
		api.POST("/search/diagnose", search.Diagnose)
		api.GET("/mechanics/search", search.FindMechanics)

		api.POST("/location/resolve", loc.Resolve)
		api.GET("/location/travel", loc.Travel)

		api.POST("/users", users.Register)
		api.POST("/users/login", users.Login)
		api.GET("/users/:id", users.Get)
		api.PUT("/users/:id", users.Update)
		api.GET("/users/:id/vehicles", vehicles.ListForOwner)
		api.GET("/users/:id/repairs", repairs.ListForUser)
		api.GET("/users/:id/rides", rides.ListForUser)
		api.GET("/users/:id/appointments", appointments.ListForUser)
		api.GET("/users/:id/diagnosis-quota", search.DiagnosisQuota)
		api.GET("/rankings", users.Rankings)

		api.POST("/vehicles", vehicles.Register)
		api.PUT("/vehicles/:id", vehicles.Update)
		api.DELETE("/vehicles/:id", vehicles.Delete)

		api.POST("/repairs", repairs.Create)
		api.POST("/repairs/:id/rating", repairs.Rate)
		api.DELETE("/repairs/:id", repairs.Delete)

		api.POST("/rides", rides.Create)
		api.DELETE("/rides/:id", rides.Delete)

		api.POST("/appointments", appointments.Schedule)
		api.POST("/appointments/:id/confirm", appointments.Confirm)
		api.POST("/appointments/:id/complete", appointments.Complete)
		api.POST("/appointments/:id/cancel", appointments.Cancel)
		api.DELETE("/appointments/:id", appointments.Delete)
	}

	return router
}
