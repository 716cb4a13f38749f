package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
	"transitplanner.dev/internal/geocode"
	"transitplanner.dev/internal/metrics"
)

var validate = validator.New()

// Query is one planner request: a fixed source stop, a free-text
// destination the Geocoder Client resolves, and the optional service-day
// and search filters.
type Query struct {
	SourceStopID    string `validate:"required"`
	DestinationText string `validate:"required"`
	EarliestTime    feed.ServiceSeconds
	Date            feed.ServiceDate `validate:"required"`
	RouteTypeFilter *feed.RouteType  `validate:"omitempty,min=0,max=7"`
	MaxTransfers    *int             `validate:"omitempty,min=0,max=2"`
}

// QueryResult is the planner's external output: either a Journey
// with its derived totals, or a Reason explaining why none was found. A
// QueryResult with a non-empty Reason is a successful query, not an error.
// Partial marks a best-so-far Journey returned after a timeout or an
// iteration-cap hit.
type QueryResult struct {
	RequestID    string
	Journey      Journey
	TotalMinutes int
	Transfers    int
	FinalStopID  string
	Reason       Reason
	Partial      bool
}

// Orchestrator ties the Geocoder Client, Geo Index, Service-Day Filter,
// Trip Index, Best-First Search, and Walk-Fallback Orchestrator together
// for one query.
type Orchestrator struct {
	Store       *feed.Store
	GeoIndex    *geo.Index
	Geocoder    *geocode.Client
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	QueryBudget time.Duration
}

// Run executes one query end to end, enforcing the wall-clock budget
// via context.WithTimeout. Geocoder failures abort the query and are
// returned as errors; everything downstream of geocoding surfaces as
// a Reason on the result instead.
func (o *Orchestrator) Run(ctx context.Context, q Query) (QueryResult, error) {
	requestID := uuid.NewString()
	logger := o.Logger
	if logger != nil {
		logger = logger.With(slog.String("request_id", requestID))
	}

	result := QueryResult{RequestID: requestID}

	if err := validate.Struct(q); err != nil {
		return result, fmt.Errorf("invalid query: %w", err)
	}

	budget := o.QueryBudget
	if budget <= 0 {
		budget = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	start := time.Now()
	defer func() {
		if o.Metrics != nil {
			o.Metrics.QueryDuration.Observe(time.Since(start).Seconds())
		}
	}()

	geocoded, err := o.Geocoder.Geocode(ctx, q.DestinationText)
	if err != nil {
		if logger != nil {
			logger.Warn("geocode failed", slog.String("place", q.DestinationText), slog.Any("error", err))
		}
		return result, err
	}
	destination := geo.Point{Lat: geocoded.Lat, Lon: geocoded.Lon}

	maxTransfers := DefaultMaxTransfers
	if q.MaxTransfers != nil {
		maxTransfers = *q.MaxTransfers
	}

	idx, err := o.Store.TripIndexFor(q.Date, q.RouteTypeFilter)
	if err != nil {
		return result, fmt.Errorf("building trip index: %w", err)
	}
	if len(idx.Trips) == 0 {
		result.Reason = ReasonNoServiceOnDate
		return result, nil
	}

	journey, reason := RunWalkFallback(ctx, logger, o.Metrics, o.Store, o.GeoIndex, idx, q.SourceStopID, destination, q.EarliestTime, maxTransfers)

	switch reason {
	case ReasonIterationCap:
		if o.Metrics != nil {
			o.Metrics.IterationCapHits.Inc()
		}
		result.Partial = true
	case ReasonTimeout:
		if logger != nil {
			logger.Warn("query exceeded wall-clock budget", slog.Duration("budget", budget))
		}
		result.Partial = true
	}

	result.Reason = reason
	if reason == ReasonNoServiceOnDate || reason == ReasonNoJourney {
		return result, nil
	}
	if journey.FinalStopID == "" && len(journey.Legs) == 0 && journey.Walk == nil && reason != ReasonNone {
		// Truncated search with no candidate at all: same surface as NoJourney.
		return result, nil
	}

	result.Journey = journey
	result.TotalMinutes = journey.TotalMinutes()
	result.Transfers = journey.Transfers()
	result.FinalStopID = journey.FinalStopID
	return result, nil
}
