package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"transitplanner.dev/internal/app"
	"transitplanner.dev/internal/config"
	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
	"transitplanner.dev/internal/geocode"
	"transitplanner.dev/internal/logging"
	"transitplanner.dev/internal/metrics"
	"transitplanner.dev/internal/restapi"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Env == "development" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	} else {
		logger = logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	}

	store, err := feed.Load(cfg.GTFSPath)
	if err != nil {
		logging.LogError(logger, "failed to load GTFS feed", err,
			slog.String("path", cfg.GTFSPath))
		os.Exit(1)
	}
	logging.LogOperation(logger, "gtfs_feed_loaded",
		slog.String("path", cfg.GTFSPath),
		slog.Int("stops", store.StopCount()),
		slog.Int("trips", store.TripCount()))

	geoIndex := geo.NewIndex(geoCandidates(store))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	geocoder := geocode.NewClient(geocode.Config{
		BaseURL:     cfg.GeocoderBaseURL,
		APIKey:      cfg.GeocoderAPIKey,
		UserAgent:   cfg.GeocoderUserAgent,
		CacheHits:   m.GeocodeCacheHits,
		CacheMisses: m.GeocodeCacheMisses,
		Logger:      logger,
	})

	application := &app.Application{
		Config: app.Config{
			Port:      cfg.Port,
			Env:       cfg.Env,
			ApiKeys:   cfg.ApiKeys,
			RateLimit: cfg.RateLimit,
		},
		Logger:       logger,
		Store:        store,
		GeoIndex:     geoIndex,
		Geocoder:     geocoder,
		Metrics:      m,
		MaxTransfers: cfg.MaxTransfers,
		QueryBudget:  cfg.QueryBudget,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(registry),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.QueryBudget + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}

// geoCandidates projects every stop that carries coordinates into the Geo
// Index's input shape. Stops without coordinates can never be a walk or
// search target, so they are left out.
func geoCandidates(store *feed.Store) []geo.Candidate {
	stops := store.Stops()
	candidates := make([]geo.Candidate, 0, len(stops))
	for _, s := range stops {
		if !s.HasCoords {
			continue
		}
		candidates = append(candidates, geo.Candidate{
			StopID: s.ID,
			Point:  geo.Point{Lat: s.Lat, Lon: s.Lon},
		})
	}
	return candidates
}
