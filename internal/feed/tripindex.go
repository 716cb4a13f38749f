package feed

import "sort"

// StopVisit locates one stop-time within its trip's ordered stop-time list,
// letting the Connection Expander jump straight to a stop's position in a
// trip instead of scanning the list.
type StopVisit struct {
	TripID   string
	Position int
}

// TripIndex is the per-query, service-day-filtered view of the feed:
// an ordered stop-time list per valid trip, plus the secondary
// stop_id -> []StopVisit index that the Connection Expander uses to
// locate a stop within every trip that touches it. Both maps are built once
// and never mutated afterward.
type TripIndex struct {
	Trips     map[string]TripMeta
	StopTimes map[string][]StopTime // trip_id -> ordered stop-times
	byStop    map[string][]StopVisit
}

// BuildTripIndex builds a TripIndex over exactly the trips in valid. The
// secondary index is filled in trip_id order, not map order, so two builds
// over the same feed produce identical visit lists; that ordering is what
// the search's insertion-order tie-break ultimately rests on.
func (s *Store) BuildTripIndex(valid map[string]TripMeta) *TripIndex {
	idx := &TripIndex{
		Trips:     valid,
		StopTimes: make(map[string][]StopTime, len(valid)),
		byStop:    make(map[string][]StopVisit),
	}

	tripIDs := make([]string, 0, len(valid))
	for tripID := range valid {
		tripIDs = append(tripIDs, tripID)
	}
	sort.Strings(tripIDs)

	for _, tripID := range tripIDs {
		sts := s.stopTimes[tripID]
		if len(sts) == 0 {
			continue
		}
		idx.StopTimes[tripID] = sts
		for pos, st := range sts {
			idx.byStop[st.StopID] = append(idx.byStop[st.StopID], StopVisit{TripID: tripID, Position: pos})
		}
	}

	return idx
}

// VisitsAt returns every (trip, position) at which stopID is visited among
// the valid trips, for the Connection Expander and Direct-Trip Finder to
// walk forward from.
func (idx *TripIndex) VisitsAt(stopID string) []StopVisit {
	return idx.byStop[stopID]
}

// StopTimesFor returns the ordered stop-time list for a trip, or nil if the
// trip is not in this index (not valid for the query's service day/route filter).
func (idx *TripIndex) StopTimesFor(tripID string) []StopTime {
	return idx.StopTimes[tripID]
}
