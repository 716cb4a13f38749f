package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// ServiceSeconds is a wall-clock time expressed as seconds since midnight of
// the service day it belongs to. GTFS allows HH to exceed 23 to denote
// service that runs past midnight into the next calendar day (a night bus
// departing at "25:30:00"); representing times this way lets every
// comparison in the planner be a plain integer comparison instead of a
// lexicographic string comparison, which only happens to work for HH < 24.
type ServiceSeconds int

// ParseServiceTime parses a GTFS "HH:MM:SS" string, where HH may be >= 24.
func ParseServiceTime(s string) (ServiceSeconds, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid second in %q: %w", s, err)
	}
	if m < 0 || m > 59 || sec < 0 || sec > 59 || h < 0 {
		return 0, fmt.Errorf("invalid time %q: components out of range", s)
	}

	return ServiceSeconds(h*3600 + m*60 + sec), nil
}

// Minutes reports the time as whole minutes since midnight of the service day.
func (s ServiceSeconds) Minutes() int {
	return int(s) / 60
}

func (s ServiceSeconds) String() string {
	h := int(s) / 3600
	m := (int(s) % 3600) / 60
	sec := int(s) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
