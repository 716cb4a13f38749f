package models

import "transitplanner.dev/internal/planner"

// WalkLeg is the API shape of the optional leading walk of a journey.
type WalkLeg struct {
	FromStopID     string  `json:"fromStopId"`
	ToStopID       string  `json:"toStopId"`
	DistanceMeters float64 `json:"distanceMeters"`
	DurationMin    int     `json:"durationMinutes"`
	Bearing        float64 `json:"bearing"`
	Compass        string  `json:"compass"`
}

// TransitLeg is the API shape of one on-vehicle segment.
type TransitLeg struct {
	FromStopID    string `json:"fromStopId"`
	ToStopID      string `json:"toStopId"`
	TripID        string `json:"tripId"`
	RouteID       string `json:"routeId"`
	Headsign      string `json:"headsign"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

// JourneyResponse is the data payload of a planning query: the journey, its
// totals, and the reason code when no journey was found.
type JourneyResponse struct {
	RequestID       string       `json:"requestId"`
	Walk            *WalkLeg     `json:"walk,omitempty"`
	Legs            []TransitLeg `json:"legs"`
	TotalMinutes    int          `json:"totalMinutes"`
	Transfers       int          `json:"transfers"`
	FinalStopID     string       `json:"finalStopId,omitempty"`
	FinalDistanceKm float64      `json:"finalDistanceKm"`
	Reason          string       `json:"reason,omitempty"`
	Partial         bool         `json:"partial,omitempty"`
}

// NewJourneyResponse converts a planner result into its API shape.
func NewJourneyResponse(result planner.QueryResult) JourneyResponse {
	legs := make([]TransitLeg, 0, len(result.Journey.Legs))
	for _, l := range result.Journey.Legs {
		legs = append(legs, TransitLeg{
			FromStopID:    l.FromStopID,
			ToStopID:      l.ToStopID,
			TripID:        l.TripID,
			RouteID:       l.RouteID,
			Headsign:      l.Headsign,
			DepartureTime: l.Departure.String(),
			ArrivalTime:   l.Arrival.String(),
		})
	}

	var walk *WalkLeg
	if w := result.Journey.Walk; w != nil {
		walk = &WalkLeg{
			FromStopID:     w.FromStopID,
			ToStopID:       w.ToStopID,
			DistanceMeters: w.DistanceMeters,
			DurationMin:    w.DurationMin,
			Bearing:        w.BearingDegrees,
			Compass:        w.Compass,
		}
	}

	return JourneyResponse{
		RequestID:       result.RequestID,
		Walk:            walk,
		Legs:            legs,
		TotalMinutes:    result.TotalMinutes,
		Transfers:       result.Transfers,
		FinalStopID:     result.FinalStopID,
		FinalDistanceKm: result.Journey.DistanceToDestinationKm,
		Reason:          string(result.Reason),
		Partial:         result.Partial,
	}
}
