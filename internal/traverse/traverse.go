// Package traverse walks a parcel boundary from survey legs and validates
// that the walked path closes back on its starting point.
package traverse

import (
	"fmt"

	"github.com/landsurv/parcelkml/internal/geo"
	"github.com/landsurv/parcelkml/internal/records"

	"github.com/rs/zerolog/log"
)

// CloseTolerance is the per-axis closure tolerance in decimal degrees,
// roughly 0.1 m at mid-latitudes.
const CloseTolerance = 1e-6

// Traverse is the ordered boundary of one parcel. After Close it holds no
// duplicate of the starting point; the polygon's closing edge is implicit
// from the last element back to the first.
type Traverse []geo.NamedPoint

// GeodesicError reports a leg whose geodesic destination could not be
// computed. Leg is the 0-based index into the input legs.
type GeodesicError struct {
	Leg int
	Err error
}

func (e *GeodesicError) Error() string {
	return fmt.Sprintf("leg %d: geodesic computation failed: %v", e.Leg, e.Err)
}

func (e *GeodesicError) Unwrap() error {
	return e.Err
}

// ClosureError reports a traverse whose final point does not coincide with
// its first within CloseTolerance on the named axis.
type ClosureError struct {
	Axis  string // "latitude" or "longitude"
	Delta float64
}

func (e *ClosureError) Error() string {
	return fmt.Sprintf("traverse does not close: %s differs by %g degrees", e.Axis, e.Delta)
}

// Walk computes the boundary points reached by walking each leg from the
// point the previous leg arrived at. The result starts with start and gains
// one point per leg, so a closed traverse ends with a near-duplicate of
// start that Close trims.
func Walk(start geo.NamedPoint, legs []records.Leg) (Traverse, error) {
	bounds := make(Traverse, 0, len(legs)+1)
	bounds = append(bounds, start)

	for i, leg := range legs {
		point, err := geo.Destination(bounds[i], leg.Azimuth, leg.Dist, leg.Name)
		if err != nil {
			return nil, &GeodesicError{Leg: i, Err: err}
		}
		bounds = append(bounds, point)
	}

	return bounds, nil
}

// Close validates that the walked traverse returns to its starting point and
// drops the redundant final point.
//
// The tolerance is applied to the raw latitude and longitude deltas
// independently, not to geodesic distance, so the physical tolerance it
// implies shrinks with latitude on the east-west axis. Kept as-is for
// compatibility with existing survey data.
func Close(bounds Traverse) (Traverse, error) {
	if len(bounds) < 2 {
		return nil, fmt.Errorf("traverse has %d points, want at least 2", len(bounds))
	}

	first := bounds[0]
	last := bounds[len(bounds)-1]

	if delta := abs(last.Lat - first.Lat); delta >= CloseTolerance {
		return nil, &ClosureError{Axis: "latitude", Delta: delta}
	}
	if delta := abs(last.Lon - first.Lon); delta >= CloseTolerance {
		return nil, &ClosureError{Axis: "longitude", Delta: delta}
	}

	trimmed := bounds[:len(bounds)-1]

	log.Trace().Int("points", len(trimmed)).Msg("Traverse closed")
	for _, b := range trimmed {
		log.Trace().
			Float64("lat", b.Lat).
			Float64("lon", b.Lon).
			Str("name", b.Name).
			Msg("Boundary point")
	}

	return trimmed, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
