package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandYieldsEveryLaterStop(t *testing.T) {
	store, _ := loadFixture(t)
	idx := mondayIndex(t, store)

	conns := Expand(idx, "S1", mustTime(t, "07:30:00"))
	require.Len(t, conns, 2)

	assert.Equal(t, "S2", conns[0].NextStopID)
	assert.Equal(t, "S3", conns[1].NextStopID)
	for _, c := range conns {
		assert.Equal(t, "T1", c.TripID)
		assert.Equal(t, "R", c.RouteID)
		assert.Equal(t, mustTime(t, "08:00:00"), c.DepartureFromS)
		assert.Greater(t, c.NextStopSequence, c.FromStopSequence)
	}
}

func TestExpandRequiresStrictlyLaterDeparture(t *testing.T) {
	store, _ := loadFixture(t)
	idx := mondayIndex(t, store)

	assert.Empty(t, Expand(idx, "S1", mustTime(t, "08:00:00")))
	assert.Len(t, Expand(idx, "S1", mustTime(t, "07:59:59")), 2)
}

func TestExpandDoesNotDeduplicateAcrossTrips(t *testing.T) {
	store, _ := loadFixture(t)
	idx := mondayIndex(t, store)

	// S3 is reachable from S2 on both T1 and T2; both entries are emitted.
	conns := Expand(idx, "S2", mustTime(t, "07:30:00"))
	require.Len(t, conns, 2)

	tripIDs := map[string]bool{}
	for _, c := range conns {
		assert.Equal(t, "S3", c.NextStopID)
		tripIDs[c.TripID] = true
	}
	assert.Len(t, tripIDs, 2)
}

func TestExpandUnknownStop(t *testing.T) {
	store, _ := loadFixture(t)
	idx := mondayIndex(t, store)

	assert.Empty(t, Expand(idx, "nope", mustTime(t, "07:30:00")))
	assert.Empty(t, Expand(idx, "W", mustTime(t, "07:30:00")))
}
