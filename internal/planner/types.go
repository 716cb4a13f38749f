package planner

import (
	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
)

// TargetStop is one member of the target stop set (GLOSSARY): a stop near
// the geocoded destination, tagged with its distance to that destination
// so the search can prioritize by closeness.
type TargetStop struct {
	StopID                  string
	Point                   geo.Point
	DistanceToDestinationKm float64
}

// Leg is a single on-vehicle segment of a Journey.
type Leg struct {
	FromStopID       string
	FromStopSequence int
	ToStopID         string
	ToStopSequence   int
	TripID           string
	RouteID          string
	Headsign         string
	Departure        feed.ServiceSeconds
	Arrival          feed.ServiceSeconds
}

// Walk is the optional leading leg of a Journey.
type Walk struct {
	FromStopID     string
	ToStopID       string
	DistanceMeters float64
	DurationMin    int
	BearingDegrees float64
	Compass        string
}

// Journey is the planner's result entity: an ordered sequence of Legs,
// optionally preceded by one Walk.
type Journey struct {
	Walk *Walk
	Legs []Leg

	FinalStopID             string
	DistanceToDestinationKm float64
}

// Transfers is the number of distinct trip_ids in the journey minus one,
// so a journey that rides the same trip across a gap is not charged twice.
func (j Journey) Transfers() int {
	if len(j.Legs) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(j.Legs))
	for _, l := range j.Legs {
		seen[l.TripID] = true
	}
	return len(seen) - 1
}

// TotalMinutes is the walk-fallback scoring rule's notion of total journey
// time: walk minutes, if any, plus the span between the
// first leg's departure and the last leg's arrival. A Journey with no legs
// (the source stop already counts as arrival) has zero transit minutes.
func (j Journey) TotalMinutes() int {
	total := 0
	if j.Walk != nil {
		total += j.Walk.DurationMin
	}
	if len(j.Legs) > 0 {
		first := j.Legs[0]
		last := j.Legs[len(j.Legs)-1]
		total += (last.Arrival - first.Departure).Minutes()
	}
	return total
}

// Score is the walk-fallback selection rule: total minutes
// plus a flat per-transfer penalty.
func (j Journey) Score() int {
	return j.TotalMinutes() + TransferScorePenaltyMinutes*j.Transfers()
}
