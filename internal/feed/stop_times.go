package feed

import (
	"fmt"
	"sort"
)

// StopTime is an immutable GTFS stop_times row, with its times normalized
// to ServiceSeconds (see servicetime.go) instead of kept as raw HH:MM:SS
// strings.
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence int
	Arrival      ServiceSeconds
	Departure    ServiceSeconds
}

// tripSequenceKey is the table's composite primary key: one row per
// (trip_id, stop_sequence).
type tripSequenceKey struct {
	tripID string
	seq    int
}

func parseStopTimes(t *table, trips map[string]Trip, stops map[string]Stop) (map[string][]StopTime, error) {
	byTrip := make(map[string][]StopTime)
	seen := make(map[tripSequenceKey]bool)

	for i, row := range t.rows {
		line := i + 2

		tripID := t.get(row, "trip_id")
		if _, ok := trips[tripID]; !ok {
			return nil, errMalformed(t.name, line, errDanglingRef("trip_id", tripID))
		}
		stopID := t.get(row, "stop_id")
		if _, ok := stops[stopID]; !ok {
			return nil, errMalformed(t.name, line, errDanglingRef("stop_id", stopID))
		}

		seq, err := t.getInt(row, "stop_sequence", line)
		if err != nil {
			return nil, err
		}
		key := tripSequenceKey{tripID: tripID, seq: seq}
		if seen[key] {
			return nil, errMalformed(t.name, line, errDuplicateKey("trip_id/stop_sequence", fmt.Sprintf("%s/%d", tripID, seq)))
		}
		seen[key] = true

		arr, err := ParseServiceTime(t.get(row, "arrival_time"))
		if err != nil {
			return nil, errMalformed(t.name, line, err)
		}
		dep, err := ParseServiceTime(t.get(row, "departure_time"))
		if err != nil {
			return nil, errMalformed(t.name, line, err)
		}
		if dep < arr {
			return nil, errMalformed(t.name, line, errInvalidValue("departure_time", row))
		}

		byTrip[tripID] = append(byTrip[tripID], StopTime{
			TripID:       tripID,
			StopID:       stopID,
			StopSequence: seq,
			Arrival:      arr,
			Departure:    dep,
		})
	}

	for tripID, sts := range byTrip {
		sort.Slice(sts, func(i, j int) bool {
			return sts[i].StopSequence < sts[j].StopSequence
		})
		byTrip[tripID] = sts
	}

	return byTrip, nil
}
