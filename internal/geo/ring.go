package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ValidatePolygon checks that an AOI polygon is usable for analysis:
// a single ring of at least four points, closed (first point equals
// last), with every coordinate inside geographic range.
func ValidatePolygon(p orb.Polygon) error {
	if len(p) == 0 {
		return fmt.Errorf("AOI polygon has no rings")
	}
	if len(p) > 1 {
		return fmt.Errorf("AOI polygon must have exactly one ring, got %d", len(p))
	}

	ring := p[0]
	if len(ring) < 4 {
		return fmt.Errorf("AOI ring must have at least 4 points, got %d", len(ring))
	}
	if !ring.Closed() {
		return fmt.Errorf("AOI ring must be closed (first point must equal last)")
	}

	for i, pt := range ring {
		if pt.Lon() < -180 || pt.Lon() > 180 {
			return fmt.Errorf("point %d: longitude must be between -180 and 180, got %g", i, pt.Lon())
		}
		if pt.Lat() < -90 || pt.Lat() > 90 {
			return fmt.Errorf("point %d: latitude must be between -90 and 90, got %g", i, pt.Lat())
		}
	}

	return nil
}

// ZoomFor estimates a map zoom level that fits the given bound, clamped
// to [1, 16]. Matches the backend's heuristic so the view is stable when
// the response omits a zoom.
func ZoomFor(b orb.Bound) int {
	deltaLon := b.Max.Lon() - b.Min.Lon()
	deltaLat := b.Max.Lat() - b.Min.Lat()

	if deltaLon <= 0 || deltaLat <= 0 {
		return 10
	}

	zoomLon := math.Log2(360 / deltaLon)
	zoomLat := math.Log2(180 / deltaLat)

	zoom := int(math.Floor(math.Min(zoomLon, zoomLat))) + 1
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 16 {
		zoom = 16
	}
	return zoom
}

// CenterOf returns the [lat, lon] center of the polygon's bounding box,
// used when the analysis response does not carry a re-center target.
func CenterOf(p orb.Polygon) [2]float64 {
	c := p.Bound().Center()
	return [2]float64{c.Lat(), c.Lon()}
}
