package feed

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// requiredTables are the five GTFS files the planner cannot operate
// without. The rest are read if present and ignored otherwise.
var requiredTables = []string{"stops.txt", "routes.txt", "calendar.txt", "trips.txt", "stop_times.txt"}

// Store holds parsed GTFS tables as immutable in-memory structures.
// All accessors are read-only; nothing mutates a Store after Load returns.
type Store struct {
	stops     map[string]Stop
	routes    map[string]Route
	services  map[string]ServiceCalendarEntry
	trips     map[string]Trip
	stopTimes map[string][]StopTime // trip_id -> ordered stop-times
	transfers []Transfer
	shapes    map[string][]ShapePoint

	exceptions map[string][]calendarException // service_id -> calendar_dates.txt exceptions

	cache *tripIndexCache
}

// Load reads a GTFS feed from path, which may be either a directory
// containing the *.txt files or a .zip archive of them. Downloading or
// validating feeds at rest is out of scope; this only reads what is
// already on disk.
func Load(path string) (*Store, error) {
	files, closeAll, err := openFeedFiles(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	tables := make(map[string]*table, len(files))
	for name, open := range files {
		rc, err := open()
		if err != nil {
			return nil, fmt.Errorf("gtfs feed: opening %q: %w", name, err)
		}
		t, err := readTable(name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}

	for _, required := range requiredTables {
		if _, ok := tables[required]; !ok {
			return nil, errMissing(required)
		}
	}

	stops, err := parseStops(tables["stops.txt"])
	if err != nil {
		return nil, err
	}
	routes, err := parseRoutes(tables["routes.txt"])
	if err != nil {
		return nil, err
	}
	services, err := parseCalendar(tables["calendar.txt"])
	if err != nil {
		return nil, err
	}
	trips, err := parseTrips(tables["trips.txt"], routes, services)
	if err != nil {
		return nil, err
	}
	stopTimes, err := parseStopTimes(tables["stop_times.txt"], trips, stops)
	if err != nil {
		return nil, err
	}

	exceptionRows, err := parseCalendarDates(tables["calendar_dates.txt"])
	if err != nil {
		return nil, err
	}
	exceptions := make(map[string][]calendarException)
	for _, exc := range exceptionRows {
		exceptions[exc.ServiceID] = append(exceptions[exc.ServiceID], exc)
	}

	transfers, err := parseTransfers(tables["transfers.txt"])
	if err != nil {
		return nil, err
	}
	shapes, err := parseShapes(tables["shapes.txt"])
	if err != nil {
		return nil, err
	}

	return &Store{
		stops:      stops,
		routes:     routes,
		services:   services,
		trips:      trips,
		stopTimes:  stopTimes,
		transfers:  transfers,
		shapes:     shapes,
		exceptions: exceptions,
		cache:      newTripIndexCache(),
	}, nil
}

// openFeedFiles returns, for each .txt file present in path (keyed by base
// name), a function that opens a fresh reader for it, plus a cleanup function
// that releases any archive handle. The optional tables are only included
// when present; required tables are checked for by the caller.
func openFeedFiles(path string) (map[string]func() (io.ReadCloser, error), func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gtfs feed: %w", err)
	}

	if info.IsDir() {
		files := make(map[string]func() (io.ReadCloser, error))
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, nil, fmt.Errorf("gtfs feed: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
				continue
			}
			name := e.Name()
			full := filepath.Join(path, name)
			files[name] = func() (io.ReadCloser, error) {
				return os.Open(full)
			}
		}
		return files, func() {}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gtfs feed: opening zip: %w", err)
	}

	files := make(map[string]func() (io.ReadCloser, error))
	for _, f := range zr.File {
		if filepath.Ext(f.Name) != ".txt" {
			continue
		}
		zf := f
		files[filepath.Base(zf.Name)] = func() (io.ReadCloser, error) {
			return zf.Open()
		}
	}

	return files, func() { _ = zr.Close() }, nil
}

func (s *Store) Stop(id string) (Stop, bool) {
	st, ok := s.stops[id]
	return st, ok
}

func (s *Store) Stops() map[string]Stop {
	return s.stops
}

func (s *Store) Route(id string) (Route, bool) {
	r, ok := s.routes[id]
	return r, ok
}

func (s *Store) Trip(id string) (Trip, bool) {
	t, ok := s.trips[id]
	return t, ok
}

func (s *Store) Transfers() []Transfer {
	return s.transfers
}

func (s *Store) Shapes() map[string][]ShapePoint {
	return s.shapes
}

func (s *Store) StopCount() int {
	return len(s.stops)
}

func (s *Store) TripCount() int {
	return len(s.trips)
}
