package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	monday  = ServiceDate(20250901)
	tuesday = ServiceDate(20250902)
)

func TestValidTripsOnActiveWeekday(t *testing.T) {
	store, err := Load(writeFeedDir(t, nil))
	require.NoError(t, err)

	valid, err := store.ValidTrips(monday, nil)
	require.NoError(t, err)

	require.Contains(t, valid, "T1")
	assert.Equal(t, TripMeta{RouteID: "R", Headsign: "Harbor"}, valid["T1"])
}

func TestValidTripsEmptyOnInactiveWeekday(t *testing.T) {
	store, err := Load(writeFeedDir(t, nil))
	require.NoError(t, err)

	valid, err := store.ValidTrips(tuesday, nil)
	require.NoError(t, err)
	assert.Empty(t, valid)
}

func TestValidTripsOutsideDateRange(t *testing.T) {
	store, err := Load(writeFeedDir(t, nil))
	require.NoError(t, err)

	// 2026-01-05 is a Monday but past the calendar's end_date.
	valid, err := store.ValidTrips(ServiceDate(20260105), nil)
	require.NoError(t, err)
	assert.Empty(t, valid)
}

func TestValidTripsRouteTypeFilter(t *testing.T) {
	store, err := Load(writeFeedDir(t, nil))
	require.NoError(t, err)

	bus := RouteTypeBus
	valid, err := store.ValidTrips(monday, &bus)
	require.NoError(t, err)
	assert.Contains(t, valid, "T1")

	metro := RouteTypeMetro
	valid, err = store.ValidTrips(monday, &metro)
	require.NoError(t, err)
	assert.Empty(t, valid)
}

func TestValidTripsHonorsCalendarDateExceptions(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"calendar_dates.txt": "service_id,date,exception_type\n" +
			"C,20250901,2\n" +
			"C,20250902,1\n",
	})
	store, err := Load(dir)
	require.NoError(t, err)

	// The weekly calendar says Monday runs and Tuesday does not; the
	// exceptions invert both days.
	valid, err := store.ValidTrips(monday, nil)
	require.NoError(t, err)
	assert.Empty(t, valid)

	valid, err = store.ValidTrips(tuesday, nil)
	require.NoError(t, err)
	assert.Contains(t, valid, "T1")
}

func TestValidTripsRejectsBadExceptionType(t *testing.T) {
	dir := writeFeedDir(t, map[string]string{
		"calendar_dates.txt": "service_id,date,exception_type\n" +
			"C,20250901,3\n",
	})
	_, err := Load(dir)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "calendar_dates.txt", malformed.Table)
}
