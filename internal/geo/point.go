// Package geo handles geographic values and bearing/azimuth conversions.
package geo

// NamedPoint is a geographic coordinate paired with a human-readable label,
// typically a corner-monument identifier from the survey.
type NamedPoint struct {
	Name string
	Lat  float64
	Lon  float64
}

// NewNamedPoint constructs a labeled point from decimal-degree coordinates.
func NewNamedPoint(lat, lon float64, name string) NamedPoint {
	return NamedPoint{Name: name, Lat: lat, Lon: lon}
}

// X returns the longitude in decimal degrees.
func (p NamedPoint) X() float64 {
	return p.Lon
}

// Y returns the latitude in decimal degrees.
func (p NamedPoint) Y() float64 {
	return p.Lat
}
