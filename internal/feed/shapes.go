package feed

import "sort"

// ShapePoint is an optional GTFS shapes.txt row, parsed for ingestion
// completeness. The planner does not route along shapes; journeys are
// stop-to-stop.
type ShapePoint struct {
	ShapeID  string
	Lat      float64
	Lon      float64
	Sequence int
}

func parseShapes(t *table) (map[string][]ShapePoint, error) {
	if t == nil {
		return nil, nil
	}

	byShape := make(map[string][]ShapePoint)
	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "shape_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("shape_id"))
		}

		lat, _, err := t.getFloat(row, "shape_pt_lat", line)
		if err != nil {
			return nil, err
		}
		lon, _, err := t.getFloat(row, "shape_pt_lon", line)
		if err != nil {
			return nil, err
		}
		seq, err := t.getInt(row, "shape_pt_sequence", line)
		if err != nil {
			return nil, err
		}

		byShape[id] = append(byShape[id], ShapePoint{
			ShapeID:  id,
			Lat:      lat,
			Lon:      lon,
			Sequence: seq,
		})
	}

	for id, pts := range byShape {
		sort.Slice(pts, func(i, j int) bool {
			return pts[i].Sequence < pts[j].Sequence
		})
		byShape[id] = pts
	}

	return byShape, nil
}
