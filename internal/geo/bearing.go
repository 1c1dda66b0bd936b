package geo

import "fmt"

// Face is the meridian a surveyor's bearing is measured from.
type Face int

// Turn is the direction the bearing angle rotates toward.
type Turn int

const (
	FaceNorth Face = iota
	FaceSouth
)

const (
	TurnEast Turn = iota
	TurnWest
)

// InvalidDirectionError reports a face or turn token that is not one of the
// accepted single-letter literals.
type InvalidDirectionError struct {
	Axis  string // "face" or "turn"
	Token string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid %s direction %q", e.Axis, e.Token)
}

// ParseFace accepts exactly "N" or "S".
func ParseFace(s string) (Face, error) {
	switch s {
	case "N":
		return FaceNorth, nil
	case "S":
		return FaceSouth, nil
	default:
		return 0, &InvalidDirectionError{Axis: "face", Token: s}
	}
}

// ParseTurn accepts exactly "E" or "W".
func ParseTurn(s string) (Turn, error) {
	switch s {
	case "E":
		return TurnEast, nil
	case "W":
		return TurnWest, nil
	default:
		return 0, &InvalidDirectionError{Axis: "turn", Token: s}
	}
}

func (f Face) String() string {
	if f == FaceSouth {
		return "S"
	}
	return "N"
}

func (t Turn) String() string {
	if t == TurnWest {
		return "W"
	}
	return "E"
}

// BearingToAzimuth converts a surveyor's quadrant bearing
// (e.g. S 78°03'13" E) to a navigational azimuth in decimal degrees,
// normalized to [0, 360).
func BearingToAzimuth(face Face, deg, min, sec float64, turn Turn) float64 {
	angle := deg + min/60.0 + sec/3600.0

	var az float64
	switch {
	case face == FaceNorth && turn == TurnEast:
		az = angle
	case face == FaceNorth && turn == TurnWest:
		az = -angle
	case face == FaceSouth && turn == TurnEast:
		az = 180.0 - angle
	default: // south, west
		az = 180.0 + angle
	}

	if az < 0 {
		az += 360.0
	}

	return az
}
