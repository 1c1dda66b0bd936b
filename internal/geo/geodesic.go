package geo

import (
	"fmt"
	"math"

	"github.com/tidwall/geodesic"
)

// Destination returns the point reached by traveling dist meters from p
// along the given azimuth (decimal degrees, 0 = north, clockwise) over the
// WGS84 ellipsoid, using Karney's direct geodesic solution.
//
// The direct solution is closed-form and does not iterate, so the only
// failure mode is a non-finite result from a degenerate input.
func Destination(p NamedPoint, azimuth, dist float64, name string) (NamedPoint, error) {
	var lat, lon float64
	geodesic.WGS84.Direct(p.Lat, p.Lon, azimuth, dist, &lat, &lon, nil)

	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return NamedPoint{}, fmt.Errorf(
			"geodesic destination from (%v, %v) az %v dist %v is not finite",
			p.Lat, p.Lon, azimuth, dist)
	}

	return NamedPoint{Name: name, Lat: lat, Lon: lon}, nil
}

// Inverse solves the inverse geodesic problem between two points, returning
// the distance in meters and the forward azimuth at a in decimal degrees.
func Inverse(a, b NamedPoint) (dist, azimuth float64) {
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &dist, &azimuth, nil)
	return dist, azimuth
}
