package planner

import "transitplanner.dev/internal/feed"

// Connection is one onward hop the Connection Expander yields: riding
// trip_id from s to next_stop.
type Connection struct {
	NextStopID       string
	NextStopSequence int
	FromStopSequence int
	Arrival          feed.ServiceSeconds
	DepartureFromS   feed.ServiceSeconds
	TripID           string
	RouteID          string
	Headsign         string
}

// Expand implements the Connection Expander: every stop that
// succeeds s on a valid trip whose departure from s is strictly later
// than t, one entry per later stop on that trip (no deduplication across
// trips). It never errors; an empty slice means no onward connections.
func Expand(idx *feed.TripIndex, s string, t feed.ServiceSeconds) []Connection {
	var out []Connection

	for _, visit := range idx.VisitsAt(s) {
		sts := idx.StopTimesFor(visit.TripID)
		from := sts[visit.Position]
		if from.Departure <= t {
			continue
		}

		meta := idx.Trips[visit.TripID]
		for pos := visit.Position + 1; pos < len(sts); pos++ {
			next := sts[pos]
			out = append(out, Connection{
				NextStopID:       next.StopID,
				NextStopSequence: next.StopSequence,
				FromStopSequence: from.StopSequence,
				Arrival:          next.Arrival,
				DepartureFromS:   from.Departure,
				TripID:           visit.TripID,
				RouteID:          meta.RouteID,
				Headsign:         meta.Headsign,
			})
		}
	}

	return out
}
