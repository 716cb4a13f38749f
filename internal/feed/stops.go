package feed

// Stop is an immutable GTFS stop, loaded once per feed and never mutated
// afterward. Coordinates are optional: stations and certain entrances in
// the wild omit stop_lat/stop_lon.
type Stop struct {
	ID         string
	Name       string
	Lat        float64
	Lon        float64
	HasCoords  bool
}

func parseStops(t *table) (map[string]Stop, error) {
	stops := make(map[string]Stop, len(t.rows))

	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "stop_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("stop_id"))
		}
		if _, dup := stops[id]; dup {
			return nil, errMalformed(t.name, line, errDuplicateKey("stop_id", id))
		}

		lat, hasLat, err := t.getFloat(row, "stop_lat", line)
		if err != nil {
			return nil, err
		}
		lon, hasLon, err := t.getFloat(row, "stop_lon", line)
		if err != nil {
			return nil, err
		}

		stops[id] = Stop{
			ID:        id,
			Name:      t.get(row, "stop_name"),
			Lat:       lat,
			Lon:       lon,
			HasCoords: hasLat && hasLon,
		}
	}

	return stops, nil
}
