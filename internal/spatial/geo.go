package spatial

import "math"

// EarthRadius in metres.
const EarthRadius = 6371e3

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `yaml:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `yaml:"lon" json:"lon" validate:"gte=-180,lte=180"`
}

// Distance returns the great-circle distance in metres (haversine).
func Distance(a, b GeoPoint) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
