package planner

import (
	"transitplanner.dev/internal/feed"
)

// FindDirect implements the Direct-Trip Finder: given a source
// stop, a target stop set, and an earliest departure, it returns the best
// single-trip connection to any target, or false if none exists. It never
// errors: an empty result is "none found", not a failure.
//
// Eligibility: the trip visits source with departure > earliest, and
// visits some target at a strictly later stop_sequence. Among all eligible
// (trip, target) pairs, the selection rule is smaller destination distance
// first, then earlier departure.
func FindDirect(idx *feed.TripIndex, sourceStopID string, targets []TargetStop, earliest feed.ServiceSeconds) (Leg, bool) {
	targetByID := make(map[string]TargetStop, len(targets))
	for _, t := range targets {
		targetByID[t.StopID] = t
	}

	var best Leg
	var bestDistance float64
	found := false

	for _, visit := range idx.VisitsAt(sourceStopID) {
		sts := idx.StopTimesFor(visit.TripID)
		from := sts[visit.Position]
		if from.Departure <= earliest {
			continue
		}

		for pos := visit.Position + 1; pos < len(sts); pos++ {
			to := sts[pos]
			target, isTarget := targetByID[to.StopID]
			if !isTarget {
				continue
			}

			candidate := buildLeg(idx, visit.TripID, from, to)
			if !found ||
				target.DistanceToDestinationKm < bestDistance ||
				(target.DistanceToDestinationKm == bestDistance && candidate.Departure < best.Departure) {
				best = candidate
				bestDistance = target.DistanceToDestinationKm
				found = true
			}
		}
	}

	return best, found
}

func buildLeg(idx *feed.TripIndex, tripID string, from, to feed.StopTime) Leg {
	meta := idx.Trips[tripID]
	return Leg{
		FromStopID:       from.StopID,
		FromStopSequence: from.StopSequence,
		ToStopID:         to.StopID,
		ToStopSequence:   to.StopSequence,
		TripID:           tripID,
		RouteID:          meta.RouteID,
		Headsign:         meta.Headsign,
		Departure:        from.Departure,
		Arrival:          to.Arrival,
	}
}
