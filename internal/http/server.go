// README: API gateway; wires module services into the router and runs the HTTP server.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

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

type ServerDeps struct {
	Garage       *garage.Service
	Matching     *matching.Service
	Location     *location.Service
	Users        *user.Service
	Vehicles     *vehicle.Service
	Repairs      *repair.Service
	Rides        *ride.Service
	Appointments *appointment.Service
	// Quota meters AI diagnoses; nil leaves them unmetered.
	Quota *aiusage.Service

	Log            logrus.FieldLogger
	Registry       *prometheus.Registry
	AllowedOrigins []string
	SearchRadiusKm float64
}

type Server struct {
	srv *http.Server
	log logrus.FieldLogger
}

func NewServer(addr string, deps ServerDeps) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: deps.Log,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.srv.Addr).Info("http server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
