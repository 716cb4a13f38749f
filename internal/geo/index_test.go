package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return NewIndex([]Candidate{
		{StopID: "S1", Point: Point{Lat: 0, Lon: 0}},
		{StopID: "S2", Point: Point{Lat: 0, Lon: 0.01}},
		{StopID: "S3", Point: Point{Lat: 0, Lon: 0.02}},
		{StopID: "W", Point: Point{Lat: 0, Lon: 0.003}},
	})
}

func TestNearestOrdersByDistance(t *testing.T) {
	idx := testIndex()

	results := idx.Nearest(Point{Lat: 0, Lon: 0.021}, 3)
	require.Len(t, results, 3)

	assert.Equal(t, "S3", results[0].StopID)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

func TestNearestBreaksTiesByStopID(t *testing.T) {
	idx := NewIndex([]Candidate{
		{StopID: "B", Point: Point{Lat: 0, Lon: 0.01}},
		{StopID: "A", Point: Point{Lat: 0, Lon: 0.01}},
		{StopID: "C", Point: Point{Lat: 0, Lon: -0.01}},
	})

	results := idx.Nearest(Point{Lat: 0, Lon: 0}, 3)
	require.Len(t, results, 3)
	assert.Equal(t, "A", results[0].StopID)
	assert.Equal(t, "B", results[1].StopID)
	assert.Equal(t, "C", results[2].StopID)
}

func TestNearestCapsAtIndexSize(t *testing.T) {
	idx := testIndex()
	results := idx.Nearest(Point{Lat: 0, Lon: 0}, 50)
	assert.Len(t, results, 4)
}

func TestWithinRadius(t *testing.T) {
	idx := testIndex()

	// W is roughly 334m from S1; S2 is over a kilometer away.
	results := idx.Within(Point{Lat: 0, Lon: 0}, 0.5, 20)
	require.Len(t, results, 2)
	assert.Equal(t, "S1", results[0].StopID)
	assert.Equal(t, "W", results[1].StopID)
	assert.InDelta(t, 0.334, results[1].Distance, 0.01)
}

func TestWithinRespectsCap(t *testing.T) {
	idx := testIndex()
	results := idx.Within(Point{Lat: 0, Lon: 0}, 10, 2)
	assert.Len(t, results, 2)
}

func TestHaversineKm(t *testing.T) {
	// One hundredth of a degree of longitude at the equator is about 1.11 km.
	d := HaversineKm(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 0.01})
	assert.InDelta(t, 1.113, d, 0.005)

	assert.Equal(t, 0.0, HaversineKm(Point{Lat: 47.6, Lon: -122.3}, Point{Lat: 47.6, Lon: -122.3}))
	assert.InDelta(t, 1113.0, HaversineMeters(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 0.01}), 5)
}

func TestBearingAndCompass(t *testing.T) {
	north := BearingDegrees(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 0, north, 0.001)
	assert.Equal(t, "N", Compass(north))

	east := BearingDegrees(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1})
	assert.InDelta(t, 90, east, 0.001)
	assert.Equal(t, "E", Compass(east))

	assert.Equal(t, "NW", Compass(315))
	assert.Equal(t, "N", Compass(359))
}
