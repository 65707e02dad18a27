// README: Entry point; loads config, wires stores and services, seeds the catalog and starts the HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"garagehub/internal/ai"
	"garagehub/internal/config"
	httptransport "garagehub/internal/http"
	"garagehub/internal/infra"
	"garagehub/internal/maps"
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

type stores struct {
	shops        garage.ShopRepository
	issues       garage.IssueRepository
	users        user.Repository
	vehicles     vehicle.Repository
	repairs      repair.Repository
	rides        ride.Repository
	appointments appointment.Repository
	usage        aiusage.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	log := infra.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStores := openStores(ctx, cfg, log)
	defer closeStores()

	var (
		index location.Index
		board user.Leaderboard
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.WithError(err).Fatal("redis init")
		}
		defer redisClient.Close()
		index = location.NewStore(redisClient)
		board = user.NewRedisLeaderboard(redisClient)
	} else {
		log.Info("redis not configured, using in-process geo index and leaderboard")
		index = location.NewMemoryIndex()
		board = user.NewMemoryLeaderboard()
	}

	var (
		geocoder location.Geocoder
		routes   location.RouteEstimator
	)
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.WithError(err).Fatal("geocoder init")
		}
		r, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.WithError(err).Fatal("route service init")
		}
		geocoder, routes = g, r
	}

	var extractor matching.SymptomExtractor
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.WithError(err).Fatal("gemini init")
		}
		defer provider.Close()
		extractor = ai.NewSymptomExtractor(provider)
	}

	garageSvc := garage.NewService(st.shops, st.issues, index, log)
	userSvc := user.NewService(st.users, board, log)

	if cfg.Seed {
		if err := garageSvc.Seed(ctx); err != nil {
			log.WithError(err).Fatal("seed catalog")
		}
	}
	if n, err := garageSvc.Reindex(ctx); err != nil {
		log.WithError(err).Fatal("reindex shops")
	} else {
		log.WithField("shops", n).Info("geo index rebuilt")
	}
	if err := userSvc.RebuildLeaderboard(ctx); err != nil {
		log.WithError(err).Fatal("rebuild leaderboard")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.ServerDeps{
		Garage:         garageSvc,
		Matching:       matching.NewService(st.shops, st.issues, st.vehicles, index, extractor, log),
		Location:       location.NewService(geocoder, routes, log),
		Users:          userSvc,
		Vehicles:       vehicle.NewService(st.vehicles, log),
		Repairs:        repair.NewService(st.repairs, userSvc, st.vehicles, log),
		Rides:          ride.NewService(st.rides, userSvc, log),
		Appointments:   appointment.NewService(st.appointments, userSvc, st.vehicles, log),
		Quota:          aiusage.NewService(st.usage, cfg.AI.MonthlyDiagnoses),
		Log:            log,
		Registry:       reg,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SearchRadiusKm: cfg.Search.RadiusKm,
	})

	if err := server.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Config, log *logrus.Logger) (stores, func()) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("memory storage selected, data is lost on restart")
		return stores{
			shops:        garage.NewMemoryShopStore(),
			issues:       garage.NewMemoryIssueStore(),
			users:        user.NewMemoryStore(),
			vehicles:     vehicle.NewMemoryStore(),
			repairs:      repair.NewMemoryStore(),
			rides:        ride.NewMemoryStore(),
			appointments: appointment.NewMemoryStore(),
			usage:        aiusage.NewMemoryStore(),
		}, func() {}
	}

	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("db init")
	}
	if err := infra.Migrate(pool, cfg.DB.MigrationsDir); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	return stores{
		shops:        garage.NewShopStore(pool),
		issues:       garage.NewIssueStore(pool),
		users:        user.NewStore(pool),
		vehicles:     vehicle.NewStore(pool),
		repairs:      repair.NewStore(pool),
		rides:        ride.NewStore(pool),
		appointments: appointment.NewStore(pool),
		usage:        aiusage.NewStore(pool),
	}, pool.Close
}
