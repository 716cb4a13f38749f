package planner

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
	"transitplanner.dev/internal/metrics"
)

// walkCandidate is one walk-fallback candidate: walk from the source to a
// nearby stop, then the search result obtained from there.
type walkCandidate struct {
	walk   Walk
	result SearchResult
}

// RunWalkFallback implements the Walk-Fallback Orchestrator: build
// the nearest-TargetSetSize target set, search directly from the source,
// and if that search did not land a zero-transfer journey, fan out to every
// stop walkable within WalkRadiusKm (capped at MaxWalkCandidates) and
// search from each in parallel, selecting the lowest-scoring journey
// overall. Ties are broken by the lower stop_id of the intermediate
// walk-target, with the walk-free source result winning over any walk.
func RunWalkFallback(ctx context.Context, logger *slog.Logger, m *metrics.Metrics, store *feed.Store, geoIdx *geo.Index, idx *feed.TripIndex, sourceStopID string, destination geo.Point, earliest feed.ServiceSeconds, maxTransfers int) (Journey, Reason) {
	nearest := geoIdx.Nearest(destination, TargetSetSize)
	if len(nearest) == 0 {
		return Journey{}, ReasonNoJourney
	}

	targets := make([]TargetStop, len(nearest))
	targetByID := make(map[string]TargetStop, len(nearest))
	for i, n := range nearest {
		t := TargetStop{StopID: n.StopID, Point: n.Point, DistanceToDestinationKm: n.Distance}
		targets[i] = t
		targetByID[n.StopID] = t
	}

	// The source itself may already be near enough to the destination to
	// count as arrival; the journey is then empty of legs.
	if t, ok := targetByID[sourceStopID]; ok {
		return Journey{
			FinalStopID:             sourceStopID,
			DistanceToDestinationKm: t.DistanceToDestinationKm,
		}, ReasonNone
	}

	// A single-trip connection straight to a target needs no frontier at
	// all; it is by construction a zero-transfer journey, so it is
	// returned immediately.
	if leg, ok := FindDirect(idx, sourceStopID, targets, earliest); ok {
		return Journey{
			Legs:                    []Leg{leg},
			FinalStopID:             leg.ToStopID,
			DistanceToDestinationKm: targetByID[leg.ToStopID].DistanceToDestinationKm,
		}, ReasonNone
	}

	direct := Search(ctx, logger, store, idx, sourceStopID, targets, earliest, maxTransfers)
	if direct.Found && direct.Journey.Transfers() == 0 {
		return direct.Journey, searchReason(direct)
	}

	sourcePoint, hasSourcePoint := stopPoint(store, sourceStopID)
	var walkable []geo.StopDistance
	if hasSourcePoint {
		for _, w := range geoIdx.Within(sourcePoint, WalkRadiusKm, MaxWalkCandidates+1) {
			if w.StopID == sourceStopID {
				continue
			}
			walkable = append(walkable, w)
			if len(walkable) == MaxWalkCandidates {
				break
			}
		}
	}

	candidates := make([]walkCandidate, len(walkable))
	var wg sync.WaitGroup
	for i, w := range walkable {
		if m != nil {
			m.WalkFallbackRuns.Inc()
		}
		wg.Add(1)
		go func(i int, w geo.StopDistance) {
			defer wg.Done()
			res := Search(ctx, logger, store, idx, w.StopID, targets, earliest, maxTransfers)
			candidates[i] = walkCandidate{
				walk:   buildWalk(sourceStopID, sourcePoint, w),
				result: res,
			}
		}(i, w)
	}
	wg.Wait()

	best := direct
	var bestWalk *Walk

	found := make([]walkCandidate, 0, len(candidates))
	timedOut := direct.TimedOut
	for _, c := range candidates {
		timedOut = timedOut || c.result.TimedOut
		if c.result.Found {
			found = append(found, c)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		si := scoreWithWalk(found[i])
		sj := scoreWithWalk(found[j])
		if si != sj {
			return si < sj
		}
		return found[i].walk.ToStopID < found[j].walk.ToStopID
	})

	bestScore := maxInt
	if direct.Found {
		bestScore = direct.Journey.Score()
	}
	if len(found) > 0 && scoreWithWalk(found[0]) < bestScore {
		best = found[0].result
		w := found[0].walk
		bestWalk = &w
	}

	if logger != nil {
		logger.Debug("walk-fallback completed",
			slog.String("source", sourceStopID),
			slog.Int("walkable_candidates", len(walkable)),
			slog.Bool("found", best.Found))
	}

	if !best.Found {
		if timedOut {
			return Journey{}, ReasonTimeout
		}
		return Journey{}, ReasonNoJourney
	}

	best.TimedOut = best.TimedOut || timedOut
	journey := best.Journey
	journey.Walk = bestWalk
	return journey, searchReason(best)
}

// searchReason maps a truncated exploration to its query-result surface: a timeout
// and an iteration-cap hit read the same on the query result, the journey
// carried alongside is the best-so-far candidate.
func searchReason(r SearchResult) Reason {
	switch {
	case r.TimedOut:
		return ReasonTimeout
	case r.HitIterationCap:
		return ReasonIterationCap
	default:
		return ReasonNone
	}
}

func scoreWithWalk(c walkCandidate) int {
	j := c.result.Journey
	j.Walk = &c.walk
	return j.Score()
}

func stopPoint(store *feed.Store, stopID string) (geo.Point, bool) {
	stop, ok := store.Stop(stopID)
	if !ok || !stop.HasCoords {
		return geo.Point{}, false
	}
	return geo.Point{Lat: stop.Lat, Lon: stop.Lon}, true
}

// buildWalk constructs the leading Walk leg for a fallback candidate: the
// distance and duration (ceil(meters/80) minutes at walking pace) from source
// to the walkable stop, annotated with heading.
func buildWalk(sourceStopID string, source geo.Point, target geo.StopDistance) Walk {
	meters := target.Distance * 1000
	duration := int(math.Ceil(meters / WalkSpeedMetersPerMinute))
	bearing := geo.BearingDegrees(source, target.Point)
	return Walk{
		FromStopID:     sourceStopID,
		ToStopID:       target.StopID,
		DistanceMeters: meters,
		DurationMin:    duration,
		BearingDegrees: bearing,
		Compass:        geo.Compass(bearing),
	}
}
