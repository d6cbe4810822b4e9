// Package geo provides AOI geometry types and validation for the solar
// siting service. An AOI is a single closed polygon ring in [lon, lat]
// order, produced either by the map's draw toolbar or from bounding-box
// input.
package geo

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
)

// Bounds holds the four scalars of a bounding-box AOI input.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// ParseBounds parses the four bounding-box form values. It returns an
// error naming the first field that does not parse as a number.
func ParseBounds(north, south, east, west string) (Bounds, error) {
	var b Bounds
	var err error

	if b.North, err = strconv.ParseFloat(north, 64); err != nil {
		return Bounds{}, fmt.Errorf("north must be a number, got %q", north)
	}
	if b.South, err = strconv.ParseFloat(south, 64); err != nil {
		return Bounds{}, fmt.Errorf("south must be a number, got %q", south)
	}
	if b.East, err = strconv.ParseFloat(east, 64); err != nil {
		return Bounds{}, fmt.Errorf("east must be a number, got %q", east)
	}
	if b.West, err = strconv.ParseFloat(west, 64); err != nil {
		return Bounds{}, fmt.Errorf("west must be a number, got %q", west)
	}

	return b, nil
}

// Validate checks the bounding box before any request is sent.
// North/south must be within [-90, 90], east/west within [-180, 180],
// and the box must have positive extent in both axes.
func (b Bounds) Validate() error {
	if b.North < -90 || b.North > 90 {
		return fmt.Errorf("north latitude must be between -90 and 90, got %g", b.North)
	}
	if b.South < -90 || b.South > 90 {
		return fmt.Errorf("south latitude must be between -90 and 90, got %g", b.South)
	}
	if b.East < -180 || b.East > 180 {
		return fmt.Errorf("east longitude must be between -180 and 180, got %g", b.East)
	}
	if b.West < -180 || b.West > 180 {
		return fmt.Errorf("west longitude must be between -180 and 180, got %g", b.West)
	}
	if b.North <= b.South {
		return fmt.Errorf("north latitude (%g) must be greater than south latitude (%g)", b.North, b.South)
	}
	if b.East <= b.West {
		return fmt.Errorf("east longitude (%g) must be greater than west longitude (%g)", b.East, b.West)
	}
	return nil
}

// Ring builds the closed 5-point AOI ring for the box:
// [west,north], [east,north], [east,south], [west,south], [west,north].
func (b Bounds) Ring() orb.Ring {
	return orb.Ring{
		{b.West, b.North},
		{b.East, b.North},
		{b.East, b.South},
		{b.West, b.South},
		{b.West, b.North},
	}
}

// Polygon wraps the ring as a single-ring polygon, the shape the
// analysis backend expects for aoi_coordinates.
func (b Bounds) Polygon() orb.Polygon {
	return orb.Polygon{b.Ring()}
}
