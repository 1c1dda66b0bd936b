// Package records parses survey traverse input files: a one-line starting
// location record and a bearing/distance record per traverse leg.
package records

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/landsurv/parcelkml/internal/geo"

	"github.com/rs/zerolog/log"
)

// feetToMeters is the exact international foot definition.
const feetToMeters = 0.3048

// Leg is one resolved traverse call: the azimuth to walk, the distance in
// meters, and the label of the corner the leg arrives at.
type Leg struct {
	Name    string
	Azimuth float64
	Dist    float64
}

// MalformedRecordError reports a record that could not be split or whose
// field failed to parse. Line is 1-based; zero means a single-line record.
type MalformedRecordError struct {
	Field string
	Raw   string
	Line  int
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: malformed %s field %q: %v", e.Line, e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed %s field %q: %v", e.Field, e.Raw, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// SplitN splits data into at most n whitespace-delimited tokens, where the
// final token is the remainder of the line with leading whitespace stripped.
// Labels keep their internal whitespace this way. Returns fewer than n
// tokens when the data runs out first.
func SplitN(data string, n int) []string {
	tokens := make([]string, 0, n)
	rest := strings.TrimSpace(data)

	for len(tokens) < n && rest != "" {
		if len(tokens) == n-1 {
			tokens = append(tokens, rest)
			break
		}
		end := strings.IndexFunc(rest, isSpace)
		if end < 0 {
			tokens = append(tokens, rest)
			break
		}
		tokens = append(tokens, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], isSpace)
	}

	return tokens
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f' || r == '\v'
}

// ParseStart parses a starting-location record: latitude, longitude and a
// label that may contain whitespace.
func ParseStart(line string) (geo.NamedPoint, error) {
	parts := SplitN(line, 3)
	if len(parts) != 3 {
		return geo.NamedPoint{}, &MalformedRecordError{
			Field: "start record", Raw: strings.TrimSpace(line),
			Err: fmt.Errorf("want 3 fields, got %d", len(parts)),
		}
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geo.NamedPoint{}, &MalformedRecordError{Field: "latitude", Raw: parts[0], Err: err}
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geo.NamedPoint{}, &MalformedRecordError{Field: "longitude", Raw: parts[1], Err: err}
	}

	return geo.NewNamedPoint(lat, lon, parts[2]), nil
}

// ParseBearing parses one bearing/distance record into a resolved Leg.
// Example record: "S 78 03 13 E 171.48 Corner 18". The distance field is in
// feet and is converted to meters here. lineNum is used for error context.
func ParseBearing(line string, lineNum int) (Leg, error) {
	parts := SplitN(line, 7)
	if len(parts) != 7 {
		return Leg{}, &MalformedRecordError{
			Field: "bearing record", Raw: strings.TrimSpace(line), Line: lineNum,
			Err: fmt.Errorf("want 7 fields, got %d", len(parts)),
		}
	}

	face, err := geo.ParseFace(parts[0])
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "face", Raw: parts[0], Line: lineNum, Err: err}
	}
	deg, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "degrees", Raw: parts[1], Line: lineNum, Err: err}
	}
	min, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "minutes", Raw: parts[2], Line: lineNum, Err: err}
	}
	sec, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "seconds", Raw: parts[3], Line: lineNum, Err: err}
	}
	turn, err := geo.ParseTurn(parts[4])
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "turn", Raw: parts[4], Line: lineNum, Err: err}
	}
	distFt, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return Leg{}, &MalformedRecordError{Field: "distance", Raw: parts[5], Line: lineNum, Err: err}
	}

	leg := Leg{
		Name:    parts[6],
		Azimuth: geo.BearingToAzimuth(face, deg, min, sec, turn),
		Dist:    distFt * feetToMeters,
	}

	log.Trace().
		Str("bearing", fmt.Sprintf("%s %v %v %v %s", face, deg, min, sec, turn)).
		Float64("azimuth", leg.Azimuth).
		Float64("distance_m", leg.Dist).
		Str("name", leg.Name).
		Msg("Parsed bearing record")

	return leg, nil
}

// ReadStart reads the one-line starting-location file for a parcel.
func ReadStart(path string) (geo.NamedPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geo.NamedPoint{}, fmt.Errorf("read %q: %w", path, err)
	}

	start, err := ParseStart(string(data))
	if err != nil {
		return geo.NamedPoint{}, fmt.Errorf("parse %q: %w", path, err)
	}

	return start, nil
}

// ReadBearings reads a bearing/distance file, one leg per line.
// Blank and whitespace-only lines are skipped.
func ReadBearings(path string) ([]Leg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var legs []Leg
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			log.Debug().Str("path", path).Int("line", lineNum).Msg("Skipping blank line")
			continue
		}

		leg, err := ParseBearing(line, lineNum)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", path, err)
		}
		legs = append(legs, leg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return legs, nil
}
