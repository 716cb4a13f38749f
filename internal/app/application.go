package app

import (
	"log/slog"
	"time"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
	"transitplanner.dev/internal/geocode"
	"transitplanner.dev/internal/metrics"
)

// Application holds the dependencies shared by every HTTP handler and
// middleware: the immutable Feed Store and Geo Index built once at
// startup, the Geocoder Client, and the process logger.
type Application struct {
	Config   Config
	Logger   *slog.Logger
	Store    *feed.Store
	GeoIndex *geo.Index
	Geocoder *geocode.Client
	Metrics  *metrics.Metrics

	MaxTransfers int
	QueryBudget  time.Duration
}

// Config holds the settings our HTTP handlers and middleware consult
// directly. It is the subset of internal/config.Config relevant to the
// request path; the rest (GTFS path, geocoder credentials) is only needed
// once, at startup, to build the Application.
type Config struct {
	Port      int
	Env       string
	ApiKeys   []string
	RateLimit int
}
