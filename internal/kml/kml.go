// Package kml renders parcel boundaries into KML overlay documents: one
// survey outline document holding a polygon per parcel, and one survey
// points document per parcel marking each boundary corner.
package kml

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/landsurv/parcelkml/internal/geo"
	"github.com/landsurv/parcelkml/internal/traverse"

	"github.com/beevik/etree"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/xml"
)

const (
	kmlNS     = "http://www.opengis.net/kml/2.2"
	gxNS      = "http://www.google.com/kml/ext/2.2"
	atomNS    = "http://www.w3.org/2005/Atom"
	styleID   = "icon-1739-0288D1-nodesc"
	iconHref  = "https://www.gstatic.com/mapspro/images/stock/503-wht-blank_maps.png"
	iconColor = "ffd18802" // ABGR
	lineColor = "ff0000ff"
	polyColor = "200000ff"
)

// Parcel pairs a parcel's display name with its closed boundary.
type Parcel struct {
	Name   string
	Bounds traverse.Traverse
}

// OutlineDocument builds the survey outline document: one Polygon Placemark
// per parcel, coordinates in lon,lat order.
func OutlineDocument(name string, parcels []Parcel) *etree.Document {
	doc, root := newDocument(name)

	for _, p := range parcels {
		pm := root.CreateElement("Placemark")
		pm.CreateElement("name").SetText(p.Name)
		pm.CreateElement("styleUrl").SetText("#" + styleID)

		ring := pm.CreateElement("Polygon").
			CreateElement("outerBoundaryIs").
			CreateElement("LinearRing")

		coords := make([]string, 0, len(p.Bounds))
		for _, b := range p.Bounds {
			coords = append(coords, coordinate(b))
		}
		ring.CreateElement("coordinates").SetText(strings.Join(coords, "\n"))
	}

	return doc
}

// PointsDocument builds a survey points document: one Point Placemark per
// boundary corner, labeled with the corner's monument name.
func PointsDocument(name string, bounds traverse.Traverse) *etree.Document {
	doc, root := newDocument(name)

	for _, b := range bounds {
		pm := root.CreateElement("Placemark")
		pm.CreateElement("name").SetText(b.Name)
		pm.CreateElement("styleUrl").SetText("#" + styleID)
		pm.CreateElement("Point").
			CreateElement("coordinates").
			SetText(coordinate(b))
	}

	return doc
}

// WriteFile serializes the document to path, optionally minified with the
// tdewolff XML minifier.
func WriteFile(doc *etree.Document, path string, minified bool) error {
	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize %q: %w", path, err)
	}

	if minified {
		m := minify.New()
		m.AddFunc("text/xml", xml.Minify)
		if data, err = m.Bytes("text/xml", data); err != nil {
			return fmt.Errorf("minify %q: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}

// coordinate formats a point as "lon,lat" with shortest round-trip floats.
func coordinate(p geo.NamedPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// newDocument builds the shared KML skeleton: XML declaration, kml root
// with namespaces, Document with name and the marker/outline style map.
func newDocument(name string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	kml := doc.CreateElement("kml")
	kml.CreateAttr("xmlns", kmlNS)
	kml.CreateAttr("xmlns:gx", gxNS)
	kml.CreateAttr("xmlns:kml", kmlNS)
	kml.CreateAttr("xmlns:atom", atomNS)

	document := kml.CreateElement("Document")
	document.CreateElement("name").SetText(name)
	addStyles(document)

	return doc, document
}

func addStyles(document *etree.Element) {
	styleMap := document.CreateElement("StyleMap")
	styleMap.CreateAttr("id", styleID)
	for _, key := range []string{"normal", "highlight"} {
		pair := styleMap.CreateElement("Pair")
		pair.CreateElement("key").SetText(key)
		pair.CreateElement("styleUrl").SetText("#" + styleID + "-" + key)
	}

	addStyle(document, "normal", "0")
	addStyle(document, "highlight", "1")
}

// addStyle emits one Style variant; the two differ only in label scale.
func addStyle(document *etree.Element, key, labelScale string) {
	style := document.CreateElement("Style")
	style.CreateAttr("id", styleID+"-"+key)

	icon := style.CreateElement("IconStyle")
	icon.CreateElement("color").SetText(iconColor)
	icon.CreateElement("scale").SetText("1")
	icon.CreateElement("Icon").CreateElement("href").SetText(iconHref)

	style.CreateElement("LabelStyle").CreateElement("scale").SetText(labelScale)

	balloon := style.CreateElement("BalloonStyle")
	balloon.CreateElement("text").CreateCData("<h3>$[name]</h3>")

	line := style.CreateElement("LineStyle")
	line.CreateElement("color").SetText(lineColor)
	line.CreateElement("width").SetText("3")

	poly := style.CreateElement("PolyStyle")
	poly.CreateElement("outline").SetText("1")
	poly.CreateElement("fill").SetText("1")
	poly.CreateElement("color").SetText(polyColor)
}
