package feed

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePath(t *testing.T) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "minifeed"))
	require.NoError(t, err)
	return absPath
}

// baseFeed is the minifeed fixture's content, inlined so individual tests
// can override single tables to provoke parse failures.
var baseFeed = map[string]string{
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,First Street,0,0\n" +
		"S2,Market Square,0,0.01\n" +
		"S3,Harbor Terminal,0,0.02\n",
	"routes.txt": "route_id,route_type,route_short_name,route_long_name\n" +
		"R,3,10,\"Crosstown, via Market\"\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"C,1,0,0,0,0,0,0,20250101,20251231\n",
	"trips.txt": "trip_id,route_id,service_id,trip_headsign\n" +
		"T1,R,C,Harbor\n",
	"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
		"T1,S1,1,08:00:00,08:00:00\n" +
		"T1,S3,3,08:20:00,08:20:00\n" +
		"T1,S2,2,08:10:00,08:10:30\n",
}

func writeFeedDir(t *testing.T, overrides map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range baseFeed {
		if replacement, ok := overrides[name]; ok {
			content = replacement
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	for name, content := range overrides {
		if _, ok := baseFeed[name]; !ok {
			if content == "" {
				require.NoError(t, os.Remove(filepath.Join(dir, name)))
				continue
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		}
	}
	return dir
}

func TestLoadFromDirectory(t *testing.T) {
	store, err := Load(fixturePath(t))
	require.NoError(t, err)

	assert.Equal(t, 23, store.StopCount())
	assert.Equal(t, 2, store.TripCount())

	s1, ok := store.Stop("S1")
	require.True(t, ok)
	assert.Equal(t, "First Street", s1.Name)
	assert.True(t, s1.HasCoords)
	assert.Equal(t, 0.0, s1.Lat)

	route, ok := store.Route("R")
	require.True(t, ok)
	assert.Equal(t, RouteTypeBus, route.Type)
	assert.Equal(t, "Crosstown, via Market", route.LongName)

	trip, ok := store.Trip("T1")
	require.True(t, ok)
	assert.Equal(t, "Harbor, via Market", trip.Headsign)
	assert.Equal(t, "R", trip.RouteID)
	assert.Equal(t, "C", trip.ServiceID)
}

func TestLoadFromZip(t *testing.T) {
	dir := fixturePath(t)
	zipPath := filepath.Join(t.TempDir(), "minifeed.zip")

	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		w, err := zw.Create(e.Name())
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	store, err := Load(zipPath)
	require.NoError(t, err)
	assert.Equal(t, 23, store.StopCount())
	assert.Equal(t, 2, store.TripCount())
}

func TestLoadIsIdempotent(t *testing.T) {
	first, err := Load(fixturePath(t))
	require.NoError(t, err)
	second, err := Load(fixturePath(t))
	require.NoError(t, err)

	assert.Equal(t, first.stops, second.stops)
	assert.Equal(t, first.routes, second.routes)
	assert.Equal(t, first.services, second.services)
	assert.Equal(t, first.trips, second.trips)
	assert.Equal(t, first.stopTimes, second.stopTimes)
}

func TestLoadMissingRequiredTable(t *testing.T) {
	dir := t.TempDir()
	for name, content := range baseFeed {
		if name == "stop_times.txt" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	_, err := Load(dir)
	require.Error(t, err)

	var missing *MissingTableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "stop_times.txt", missing.Table)
}

func TestLoadDuplicatePrimaryKey(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"S1,First Street,0,0\n" +
			"S1,First Street Again,0,0\n" +
			"S2,Market Square,0,0.01\n" +
			"S3,Harbor Terminal,0,0.02\n",
	})

	_, err := Load(dir)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "stops.txt", malformed.Table)
	assert.Equal(t, 3, malformed.Line)
}

func TestLoadDanglingReference(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
			"T9,S1,1,08:00:00,08:00:00\n",
	})

	_, err := Load(dir)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "stop_times.txt", malformed.Table)
}

func TestLoadDuplicateStopTimeSequence(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
			"T1,S1,1,08:00:00,08:00:00\n" +
			"T1,S2,2,08:10:00,08:10:30\n" +
			"T1,S3,2,08:20:00,08:20:00\n",
	})

	_, err := Load(dir)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "stop_times.txt", malformed.Table)
	assert.Equal(t, 4, malformed.Line)
}

func TestLoadRejectsDepartureBeforeArrival(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
			"T1,S1,1,08:10:00,08:00:00\n",
	})

	_, err := Load(dir)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
}

func TestStopTimesSortedByStopSequence(t *testing.T) {
	dir := writeFeedDir(t, nil)
	store, err := Load(dir)
	require.NoError(t, err)

	sts := store.stopTimes["T1"]
	require.Len(t, sts, 3)
	assert.Equal(t, []string{"S1", "S2", "S3"}, []string{sts[0].StopID, sts[1].StopID, sts[2].StopID})
	assert.True(t, sts[0].StopSequence < sts[1].StopSequence)
	assert.True(t, sts[1].StopSequence < sts[2].StopSequence)
}

func TestLoadParsesOptionalTables(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"transfers.txt": "from_stop_id,to_stop_id,transfer_type,min_transfer_time\n" +
			"S1,S2,2,300\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"SH1,0,0.01,2\n" +
			"SH1,0,0,1\n",
	})

	store, err := Load(dir)
	require.NoError(t, err)

	transfers := store.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, "S1", transfers[0].FromStopID)
	assert.Equal(t, 300, transfers[0].MinTransferTime)

	shape := store.Shapes()["SH1"]
	require.Len(t, shape, 2)
	assert.Equal(t, 1, shape[0].Sequence)
	assert.Equal(t, 2, shape[1].Sequence)
}
