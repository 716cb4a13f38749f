package geo

import "math"

// BearingDegrees returns the initial compass bearing in degrees [0, 360)
// from a to b, used to annotate a Walk leg's heading.
func BearingDegrees(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaLambda := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	theta := math.Atan2(y, x)
	return math.Mod(theta*180/math.Pi+360, 360)
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass converts a bearing in degrees to an 8-point compass direction.
func Compass(bearingDegrees float64) string {
	index := int((bearingDegrees+22.5)/45.0) % len(compassPoints)
	return compassPoints[index]
}
