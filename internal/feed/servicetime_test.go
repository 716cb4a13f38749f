package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceTime(t *testing.T) {
	testCases := []struct {
		input string
		want  ServiceSeconds
	}{
		{"00:00:00", 0},
		{"08:10:30", 8*3600 + 10*60 + 30},
		{"23:59:59", 23*3600 + 59*60 + 59},
		// GTFS allows hours past 23 for service running into the next
		// calendar day; a night bus at 25:30 is 1:30am the following day.
		{"25:30:00", 25*3600 + 30*60},
		{"47:00:00", 47 * 3600},
		{" 08:00:00 ", 8 * 3600},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseServiceTime(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseServiceTimeRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "8:00", "08:60:00", "08:00:61", "-1:00:00", "ab:cd:ef", "08.00.00"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseServiceTime(input)
			assert.Error(t, err)
		})
	}
}

func TestServiceSecondsString(t *testing.T) {
	assert.Equal(t, "08:10:30", ServiceSeconds(8*3600+10*60+30).String())
	assert.Equal(t, "25:30:00", ServiceSeconds(25*3600+30*60).String())
}

func TestServiceSecondsMinutes(t *testing.T) {
	assert.Equal(t, 490, ServiceSeconds(8*3600+10*60+30).Minutes())
}

func TestServiceDateWeekdayIndex(t *testing.T) {
	// 2025-09-01 is a Monday, 2025-09-07 a Sunday.
	assert.Equal(t, 0, ServiceDate(20250901).WeekdayIndex())
	assert.Equal(t, 6, ServiceDate(20250907).WeekdayIndex())
}
