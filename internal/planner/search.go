package planner

import (
	"container/heap"
	"context"
	"log/slog"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
)

// searchNode is one search state on the Best-First Search frontier:
// (current_stop, current_time, path_so_far, transfers_used,
// distance_to_nearest_target), plus bookkeeping the heap needs.
type searchNode struct {
	stopID      string
	currentTime feed.ServiceSeconds
	legs        []Leg
	transfers   int
	distanceKm  float64
	seq         int // insertion order, the stable tie-break among equal priority
	index       int // heap.Interface bookkeeping
}

// frontier orders search states lexicographically by (transfers, distance),
// with insertion order as the final tie-break, so equal-priority states
// expand in the order they were discovered.
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].transfers != f[j].transfers {
		return f[i].transfers < f[j].transfers
	}
	if f[i].distanceKm != f[j].distanceKm {
		return f[i].distanceKm < f[j].distanceKm
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index, f[j].index = i, j
}

func (f *frontier) Push(x any) {
	n := len(*f)
	node := x.(*searchNode)
	node.index = n
	*f = append(*f, node)
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*f = old[:n-1]
	return node
}

// SearchResult is the outcome of one Best-First Search invocation.
// HitIterationCap and TimedOut mark a best-so-far result from a truncated
// exploration; Journey is still the best candidate seen.
type SearchResult struct {
	Journey         Journey
	Found           bool
	HitIterationCap bool
	TimedOut        bool
}

// Search runs the Best-First Search: explores journeys up to
// maxTransfers transfers from source, prioritized by (transfers,
// distance-to-nearest-target), terminating early on a direct hit or a
// "good enough" target distance. The context carries the query's
// wall-clock budget; on expiry the best candidate seen so far is
// returned with TimedOut set.
func Search(ctx context.Context, logger *slog.Logger, store *feed.Store, idx *feed.TripIndex, source string, targets []TargetStop, earliest feed.ServiceSeconds, maxTransfers int) SearchResult {
	targetByID := make(map[string]TargetStop, len(targets))
	for _, t := range targets {
		targetByID[t.StopID] = t
	}

	var best SearchResult
	seq := 0

	recordCandidate := func(stopID string, legs []Leg, transfers int) (stop bool) {
		target, ok := targetByID[stopID]
		if !ok {
			return false
		}
		better := !best.Found
		if best.Found {
			bestTransfers := candidateTransferCount(best)
			if transfers < bestTransfers {
				better = true
			} else if transfers == bestTransfers && target.DistanceToDestinationKm < best.Journey.DistanceToDestinationKm {
				better = true
			}
		}
		if better {
			best = SearchResult{
				Journey: Journey{
					Legs:                    append([]Leg{}, legs...),
					FinalStopID:             stopID,
					DistanceToDestinationKm: target.DistanceToDestinationKm,
				},
				Found: true,
			}
		}
		return transfers == 0 || target.DistanceToDestinationKm < EarlyTerminationDistanceKm
	}

	fr := &frontier{}
	heap.Init(fr)
	heap.Push(fr, &searchNode{
		stopID:      source,
		currentTime: earliest,
		transfers:   0,
		distanceKm:  nearestTargetDistance(store, source, targets),
		seq:         seq,
	})
	seq++

	visitedBestTransfers := map[string]int{source: 0}

	if recordCandidate(source, nil, 0) {
		return best
	}

	iterations := 0
	for fr.Len() > 0 {
		if ctx != nil && ctx.Err() != nil {
			best.TimedOut = true
			return best
		}

		iterations++
		if iterations > IterationCap {
			if logger != nil {
				logger.Warn("best-first search hit iteration cap",
					slog.String("source", source), slog.Int("cap", IterationCap))
			}
			best.HitIterationCap = true
			return best
		}

		node := heap.Pop(fr).(*searchNode)

		if recorded, ok := visitedBestTransfers[node.stopID]; ok && node.transfers > recorded {
			continue
		}

		if best.Found && candidateTransferCount(best) == 0 {
			continue
		}

		tNext := node.currentTime
		if len(node.legs) > 0 {
			tNext += TransferBuffer
		}

		for _, conn := range Expand(idx, node.stopID, tNext) {
			isTransfer := false
			if len(node.legs) > 0 {
				last := node.legs[len(node.legs)-1]
				isTransfer = conn.TripID != last.TripID || conn.RouteID != last.RouteID
			}

			newTransfers := node.transfers
			if isTransfer {
				newTransfers++
			}
			if newTransfers > maxTransfers {
				continue
			}

			newLeg := Leg{
				FromStopID:       node.stopID,
				FromStopSequence: conn.FromStopSequence,
				ToStopID:         conn.NextStopID,
				ToStopSequence:   conn.NextStopSequence,
				TripID:           conn.TripID,
				RouteID:          conn.RouteID,
				Headsign:         conn.Headsign,
				Departure:        conn.DepartureFromS,
				Arrival:          conn.Arrival,
			}
			newLegs := append(append([]Leg{}, node.legs...), newLeg)

			if _, isTarget := targetByID[conn.NextStopID]; isTarget {
				if recordCandidate(conn.NextStopID, newLegs, newTransfers) {
					return best
				}
				continue
			}

			if recorded, ok := visitedBestTransfers[conn.NextStopID]; ok && newTransfers > recorded {
				continue
			}
			visitedBestTransfers[conn.NextStopID] = newTransfers

			heap.Push(fr, &searchNode{
				stopID:      conn.NextStopID,
				currentTime: conn.Arrival,
				legs:        newLegs,
				transfers:   newTransfers,
				distanceKm:  nearestTargetDistance(store, conn.NextStopID, targets),
				seq:         seq,
			})
			seq++
		}
	}

	return best
}

// candidateTransferCount returns the transfer count of the best candidate
// recorded so far, or a sentinel above any real transfer count when none
// has been recorded yet.
func candidateTransferCount(r SearchResult) int {
	if !r.Found {
		return maxInt
	}
	return r.Journey.Transfers()
}

const maxInt = int(^uint(0) >> 1)

// nearestTargetDistance is the state's distance_to_nearest_target:
// the smallest great-circle distance from stopID's coordinates to any
// target's point. Stops without coordinates get the farthest target's
// distance, keeping them at the back of the frontier without breaking
// the search.
func nearestTargetDistance(store *feed.Store, stopID string, targets []TargetStop) float64 {
	if len(targets) == 0 {
		return 0
	}

	stop, ok := store.Stop(stopID)
	if !ok || !stop.HasCoords {
		max := 0.0
		for _, t := range targets {
			if t.DistanceToDestinationKm > max {
				max = t.DistanceToDestinationKm
			}
		}
		return max
	}

	p := geo.Point{Lat: stop.Lat, Lon: stop.Lon}
	min := -1.0
	for _, t := range targets {
		d := geo.HaversineKm(p, t.Point)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}
