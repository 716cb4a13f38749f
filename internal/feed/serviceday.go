package feed

// TripMeta is the quick-lookup value the Service-Day Filter produces
// alongside the valid-trip set: enough to label a leg without
// walking back through the full Trip map.
type TripMeta struct {
	RouteID  string
	Headsign string
}

// ValidTrips selects the trip_ids active on date, optionally restricted to
// a single route_type: filter routes by type, filter
// services by date, intersect on trips. An empty result (no service that
// day, or the filter excludes every route) is a valid, non-error outcome;
// the caller surfaces "no trips today" rather than the Filter raising.
func (s *Store) ValidTrips(date ServiceDate, routeType *RouteType) (map[string]TripMeta, error) {
	weekday := date.WeekdayIndex()

	activeServices := make(map[string]bool, len(s.services))
	for id, entry := range s.services {
		active := entry.ActiveOn(date, weekday)
		for _, exc := range s.exceptions[id] {
			if exc.Date != date {
				continue
			}
			switch exc.Type {
			case ExceptionAdded:
				active = true
			case ExceptionRemoved:
				active = false
			}
		}
		if active {
			activeServices[id] = true
		}
	}

	matchingRoutes := make(map[string]bool, len(s.routes))
	for id, r := range s.routes {
		if routeType == nil || r.Type == *routeType {
			matchingRoutes[id] = true
		}
	}

	valid := make(map[string]TripMeta)
	for id, t := range s.trips {
		if !activeServices[t.ServiceID] {
			continue
		}
		if !matchingRoutes[t.RouteID] {
			continue
		}
		valid[id] = TripMeta{RouteID: t.RouteID, Headsign: t.Headsign}
	}

	return valid, nil
}
