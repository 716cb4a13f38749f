package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"transitplanner.dev/internal/feed"
	"transitplanner.dev/internal/geo"
)

// The test network mirrors the minifeed fixture: a single bus route R with
// trips T1 (S1 08:00 -> S2 08:10 -> S3 08:20) and T2 (S2 08:20 -> S3 08:30),
// service C running Mondays, stop W 334m east of S1 with no service, and a
// cluster of stops around the harbor so the nearest-20 target set for the
// harbor destination holds S3 and the cluster but not S1, S2, or W.
const (
	monday  = feed.ServiceDate(20250901)
	tuesday = feed.ServiceDate(20250902)
)

var harbor = geo.Point{Lat: 0, Lon: 0.021}

type feedVariant struct {
	dropS3FromT1 bool // T1 terminates at S2, forcing a transfer onto T2
	walkTrip     bool // adds T3: W 08:30 -> S3 08:45
}

func writeVariantFeed(t *testing.T, v feedVariant) string {
	t.Helper()

	var stops strings.Builder
	stops.WriteString("stop_id,stop_name,stop_lat,stop_lon\n")
	stops.WriteString("S1,First Street,0,0\n")
	stops.WriteString("S2,Market Square,0,0.01\n")
	stops.WriteString("S3,Harbor Terminal,0,0.02\n")
	stops.WriteString("W,West Gate,0,0.003\n")
	for k := 1; k <= 19; k++ {
		fmt.Fprintf(&stops, "P%02d,Harbor District %d,0.%04d,0.021\n", k, k, k)
	}

	stopTimes := "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
		"T1,S1,1,08:00:00,08:00:00\n" +
		"T1,S2,2,08:10:00,08:10:30\n"
	if !v.dropS3FromT1 {
		stopTimes += "T1,S3,3,08:20:00,08:20:00\n"
	}
	stopTimes += "T2,S2,1,08:20:00,08:20:00\n" +
		"T2,S3,2,08:30:00,08:30:00\n"

	trips := "trip_id,route_id,service_id,trip_headsign\n" +
		"T1,R,C,\"Harbor, via Market\"\n" +
		"T2,R,C,Harbor\n"
	if v.walkTrip {
		trips += "T3,R,C,Harbor Express\n"
		stopTimes += "T3,W,1,08:30:00,08:30:00\n" +
			"T3,S3,2,08:45:00,08:45:00\n"
	}

	files := map[string]string{
		"stops.txt": stops.String(),
		"routes.txt": "route_id,route_type,route_short_name,route_long_name\n" +
			"R,3,10,\"Crosstown, via Market\"\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"C,1,0,0,0,0,0,0,20250101,20251231\n",
		"trips.txt":      trips,
		"stop_times.txt": stopTimes,
	}

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func loadVariant(t *testing.T, v feedVariant) (*feed.Store, *geo.Index) {
	t.Helper()

	store, err := feed.Load(writeVariantFeed(t, v))
	require.NoError(t, err)
	return store, geoIndexFor(store)
}

func loadFixture(t *testing.T) (*feed.Store, *geo.Index) {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", "minifeed"))
	require.NoError(t, err)
	store, err := feed.Load(path)
	require.NoError(t, err)
	return store, geoIndexFor(store)
}

func geoIndexFor(store *feed.Store) *geo.Index {
	var candidates []geo.Candidate
	for _, s := range store.Stops() {
		if !s.HasCoords {
			continue
		}
		candidates = append(candidates, geo.Candidate{
			StopID: s.ID,
			Point:  geo.Point{Lat: s.Lat, Lon: s.Lon},
		})
	}
	return geo.NewIndex(candidates)
}

func mondayIndex(t *testing.T, store *feed.Store) *feed.TripIndex {
	t.Helper()

	idx, err := store.TripIndexFor(monday, nil)
	require.NoError(t, err)
	return idx
}

func harborTargets(geoIdx *geo.Index) []TargetStop {
	nearest := geoIdx.Nearest(harbor, TargetSetSize)
	targets := make([]TargetStop, len(nearest))
	for i, n := range nearest {
		targets[i] = TargetStop{StopID: n.StopID, Point: n.Point, DistanceToDestinationKm: n.Distance}
	}
	return targets
}

func mustTime(t *testing.T, s string) feed.ServiceSeconds {
	t.Helper()

	ss, err := feed.ParseServiceTime(s)
	require.NoError(t, err)
	return ss
}
