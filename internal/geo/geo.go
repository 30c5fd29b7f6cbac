// Package geo computes great-circle distances for the check-in geofence.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	sLat := math.Sin(dLat / 2)
	sLng := math.Sin(dLng / 2)
	h := sLat*sLat + math.Cos(lat1)*math.Cos(lat2)*sLng*sLng
	if h > 1 {
		h = 1
	}
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Fence is a circular boundary around Center.
type Fence struct {
	Center   Point
	RadiusKm float64
}

// Contains returns the distance from the fence center to p and whether p
// is inside. A point exactly on the boundary is inside.
func (f Fence) Contains(p Point) (float64, bool) {
	d := Distance(f.Center, p)
	return d, d <= f.RadiusKm
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
