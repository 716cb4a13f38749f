package feed

// Trip is an immutable GTFS trip.
type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

func parseTrips(t *table, routes map[string]Route, services map[string]ServiceCalendarEntry) (map[string]Trip, error) {
	trips := make(map[string]Trip, len(t.rows))

	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "trip_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("trip_id"))
		}
		if _, dup := trips[id]; dup {
			return nil, errMalformed(t.name, line, errDuplicateKey("trip_id", id))
		}

		routeID := t.get(row, "route_id")
		if _, ok := routes[routeID]; !ok {
			return nil, errMalformed(t.name, line, errDanglingRef("route_id", routeID))
		}
		serviceID := t.get(row, "service_id")
		if _, ok := services[serviceID]; !ok {
			return nil, errMalformed(t.name, line, errDanglingRef("service_id", serviceID))
		}

		trips[id] = Trip{
			ID:        id,
			RouteID:   routeID,
			ServiceID: serviceID,
			Headsign:  t.get(row, "trip_headsign"),
		}
	}

	return trips, nil
}
