package records

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/landsurv/parcelkml/internal/geo"
)

func TestSplitN(t *testing.T) {
	parts := SplitN("how now brown cow", 3)
	if len(parts) != 3 {
		t.Fatalf("got %d parts: %v", len(parts), parts)
	}
	if parts[0] != "how" || parts[1] != "now" || parts[2] != "brown cow" {
		t.Fatalf("parts = %v", parts)
	}
}

func TestSplitN_WhitespaceRuns(t *testing.T) {
	parts := SplitN("  S \t 78   03\t13  E  171.48   Corner 18 \n", 7)
	want := []string{"S", "78", "03", "13", "E", "171.48", "Corner 18"}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts: %v", len(parts), parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Fatalf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
}

func TestSplitN_TooFewFields(t *testing.T) {
	parts := SplitN("N 45 00", 7)
	if len(parts) != 3 {
		t.Fatalf("got %d parts: %v", len(parts), parts)
	}
}

func TestSplitN_Empty(t *testing.T) {
	if parts := SplitN("   \t  ", 3); len(parts) != 0 {
		t.Fatalf("got %v for whitespace-only input", parts)
	}
}

func TestParseStart(t *testing.T) {
	start, err := ParseStart("39.603480 -84.151764 Point of Beginning\n")
	if err != nil {
		t.Fatalf("ParseStart: %v", err)
	}
	if start.Lat != 39.603480 || start.Lon != -84.151764 {
		t.Fatalf("coordinates = (%v, %v)", start.Lat, start.Lon)
	}
	if start.Name != "Point of Beginning" {
		t.Fatalf("name = %q", start.Name)
	}
}

func TestParseStart_BadLatitude(t *testing.T) {
	_, err := ParseStart("north -84.151764 POB")
	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
	if recErr.Field != "latitude" || recErr.Raw != "north" {
		t.Fatalf("error context = %+v", recErr)
	}
}

func TestParseStart_MissingField(t *testing.T) {
	_, err := ParseStart("39.6 -84.1")
	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
}

func TestParseBearing(t *testing.T) {
	leg, err := ParseBearing("S 78 03 13 E 171.48 Corner 18", 1)
	if err != nil {
		t.Fatalf("ParseBearing: %v", err)
	}

	wantAz := 180 - (78 + 3.0/60 + 13.0/3600)
	if math.Abs(leg.Azimuth-wantAz) > 1e-12 {
		t.Fatalf("azimuth = %v, want %v", leg.Azimuth, wantAz)
	}
	if math.Abs(leg.Dist-171.48*0.3048) > 1e-12 {
		t.Fatalf("distance = %v m, want %v m", leg.Dist, 171.48*0.3048)
	}
	if leg.Name != "Corner 18" {
		t.Fatalf("name = %q", leg.Name)
	}
}

func TestParseBearing_Idempotent(t *testing.T) {
	line := "N 12 34 56.5 W 100.25 Iron Pin at Fence"
	a, err := ParseBearing(line, 1)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	b, err := ParseBearing(line, 1)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if a != b {
		t.Fatalf("parses differ: %+v vs %+v", a, b)
	}
}

func TestParseBearing_MissingFields(t *testing.T) {
	_, err := ParseBearing("S 78 03 13 E", 4)
	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
	if recErr.Field != "bearing record" || recErr.Line != 4 {
		t.Fatalf("error context = %+v", recErr)
	}
}

func TestParseBearing_InvalidFace(t *testing.T) {
	_, err := ParseBearing("X 78 03 13 E 171.48 Corner 18", 2)

	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
	if recErr.Field != "face" || recErr.Raw != "X" {
		t.Fatalf("error context = %+v", recErr)
	}

	var dirErr *geo.InvalidDirectionError
	if !errors.As(err, &dirErr) {
		t.Fatalf("want wrapped InvalidDirectionError, got %v", err)
	}
}

func TestParseBearing_NonNumericDistance(t *testing.T) {
	_, err := ParseBearing("S 78 03 13 E far Corner 18", 3)
	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
	if recErr.Field != "distance" || recErr.Raw != "far" {
		t.Fatalf("error context = %+v", recErr)
	}
}

func TestReadBearings_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bearing_distance.txt")
	data := "S 78 03 13 E 171.48 Corner 18\n\n   \t\nN 11 56 47 E 171.48 Corner 19\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	legs, err := ReadBearings(path)
	if err != nil {
		t.Fatalf("ReadBearings: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(legs))
	}
	if legs[0].Name != "Corner 18" || legs[1].Name != "Corner 19" {
		t.Fatalf("legs = %+v", legs)
	}
}

func TestReadBearings_ReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bearing_distance.txt")
	data := "S 78 03 13 E 171.48 Corner 18\nS 78 03 13\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ReadBearings(path)
	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("want MalformedRecordError, got %v", err)
	}
	if recErr.Line != 2 {
		t.Fatalf("line = %d, want 2", recErr.Line)
	}
}

func TestReadStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start_lat_lon.txt")
	if err := os.WriteFile(path, []byte("39.603480 -84.151764 POB\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	start, err := ReadStart(path)
	if err != nil {
		t.Fatalf("ReadStart: %v", err)
	}
	if start.Name != "POB" {
		t.Fatalf("name = %q", start.Name)
	}
}
