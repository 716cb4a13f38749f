package restapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geocode"
	"transitplanner.dev/internal/logging"
	"transitplanner.dev/internal/models"
	"transitplanner.dev/internal/planner"
	"transitplanner.dev/internal/utils"
)

// planHandler serves GET /api/plan/:stopId: the full per-query contract of
// the planner: source stop in the path, destination place plus the
// optional time, date, routeType and maxTransfers filters as query
// parameters, the Journey envelope (or a reason code) as the response.
func (api *RestAPI) planHandler(w http.ResponseWriter, r *http.Request) {
	stopID := utils.ExtractIDFromParams(r, "stopId")
	if err := utils.ValidateID(stopID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"stopId": {err.Error()}})
		return
	}
	if _, ok := api.Store.Stop(stopID); !ok {
		api.sendNotFound(w, r)
		return
	}

	place, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("place"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"place": {err.Error()}})
		return
	}
	if place == "" {
		api.validationErrorResponse(w, r, map[string][]string{"place": {"place is required"}})
		return
	}

	query := planner.Query{
		SourceStopID:    stopID,
		DestinationText: place,
	}

	timeParam := r.URL.Query().Get("time")
	if timeParam == "" {
		timeParam = time.Now().Format("15:04:05")
	}
	earliest, err := feed.ParseServiceTime(timeParam)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"time": {"invalid time format, use HH:MM:SS"}})
		return
	}
	query.EarliestTime = earliest

	dateParam := r.URL.Query().Get("date")
	if err := utils.ValidateDate(dateParam); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"date": {err.Error()}})
		return
	}
	if dateParam == "" {
		query.Date = feed.NewServiceDate(time.Now())
	} else {
		parsed, _ := time.Parse("2006-01-02", dateParam)
		query.Date = feed.NewServiceDate(parsed)
	}

	if v := r.URL.Query().Get("routeType"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 7 {
			api.validationErrorResponse(w, r, map[string][]string{"routeType": {"routeType must be an integer between 0 and 7"}})
			return
		}
		rt := feed.RouteType(n)
		query.RouteTypeFilter = &rt
	}

	maxTransfers := api.MaxTransfers
	if v := r.URL.Query().Get("maxTransfers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > planner.MaxMaxTransfers {
			api.validationErrorResponse(w, r, map[string][]string{"maxTransfers": {"maxTransfers must be an integer between 0 and 2"}})
			return
		}
		maxTransfers = n
	}
	query.MaxTransfers = &maxTransfers

	orchestrator := &planner.Orchestrator{
		Store:       api.Store,
		GeoIndex:    api.GeoIndex,
		Geocoder:    api.Geocoder,
		Logger:      logging.FromContext(r.Context()),
		Metrics:     api.Metrics,
		QueryBudget: api.QueryBudget,
	}

	result, err := orchestrator.Run(r.Context(), query)
	if err != nil {
		var geoErr *geocode.Error
		if errors.As(err, &geoErr) {
			if geoErr.Reason == geocode.NoResults {
				api.validationErrorResponse(w, r, map[string][]string{"place": {"no geocoding results for place"}})
				return
			}
			api.sendUpstreamError(w, r, "geocoding service unavailable")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewResponse(models.NewJourneyResponse(result)))
}
