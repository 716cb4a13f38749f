package geo

import "sort"

// Candidate is one stop the Geo Index knows about: an identifier, a
// coordinate, and the caller associates distance separately via Nearest.
type Candidate struct {
	StopID string
	Point  Point
}

// StopDistance pairs a candidate with its precomputed distance to a query point.
type StopDistance struct {
	StopID   string
	Point    Point
	Distance float64 // kilometers
}

// Index answers nearest-stop queries by great-circle distance. A
// linear scan is acceptable at the stop counts GTFS feeds have (low
// thousands); this does exactly that, scanning candidates once per query.
type Index struct {
	candidates []Candidate
}

// NewIndex builds a Geo Index over a copy of candidates, taken as given.
// It does not filter them: callers pass only stops that have coordinates,
// since stops without lat/lon can never be a walk or search target.
func NewIndex(candidates []Candidate) *Index {
	cp := make([]Candidate, len(candidates))
	copy(cp, candidates)
	return &Index{candidates: cp}
}

// Nearest returns the N closest stops to p, sorted by ascending distance
// with ties broken by stop_id ascending.
func (idx *Index) Nearest(p Point, n int) []StopDistance {
	results := make([]StopDistance, 0, len(idx.candidates))
	for _, c := range idx.candidates {
		results = append(results, StopDistance{
			StopID:   c.StopID,
			Point:    c.Point,
			Distance: HaversineKm(p, c.Point),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].StopID < results[j].StopID
	})

	if n < len(results) {
		results = results[:n]
	}
	return results
}

// Within returns every stop within radiusKm of p, sorted by ascending
// distance with the same stop_id tie-break, capped at maxCount entries.
// Used by the walk-fallback to find walkable stops near the source.
func (idx *Index) Within(p Point, radiusKm float64, maxCount int) []StopDistance {
	all := idx.Nearest(p, len(idx.candidates))
	results := make([]StopDistance, 0, maxCount)
	for _, r := range all {
		if r.Distance > radiusKm {
			break
		}
		results = append(results, r)
		if len(results) >= maxCount {
			break
		}
	}
	return results
}
