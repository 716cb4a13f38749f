package feed

// RouteType is the GTFS route_type enumeration: 0=Tram, 1=Metro,
// 2=Rail, 3=Bus, 4=Ferry, 5-7 other (cable car, gondola, funicular).
type RouteType int

const (
	RouteTypeTram    RouteType = 0
	RouteTypeMetro   RouteType = 1
	RouteTypeRail    RouteType = 2
	RouteTypeBus     RouteType = 3
	RouteTypeFerry   RouteType = 4
	RouteTypeCable   RouteType = 5
	RouteTypeGondola RouteType = 6
	RouteTypeFunic   RouteType = 7
)

// Route is an immutable GTFS route.
type Route struct {
	ID        string
	Type      RouteType
	ShortName string
	LongName  string
}

func parseRoutes(t *table) (map[string]Route, error) {
	routes := make(map[string]Route, len(t.rows))

	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "route_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("route_id"))
		}
		if _, dup := routes[id]; dup {
			return nil, errMalformed(t.name, line, errDuplicateKey("route_id", id))
		}

		routeType, err := t.getInt(row, "route_type", line)
		if err != nil {
			return nil, err
		}

		routes[id] = Route{
			ID:        id,
			Type:      RouteType(routeType),
			ShortName: t.get(row, "route_short_name"),
			LongName:  t.get(row, "route_long_name"),
		}
	}

	return routes, nil
}
