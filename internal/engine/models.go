// Package engine provides the client for the geospatial analysis backend.
// The backend is an opaque collaborator: it receives an AOI polygon and
// returns elevation/slope statistics, a suitability breakdown, power
// estimates, and map tile layers for display.
package engine

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
)

// Suitability class labels, in fixed display order.
const (
	ClassMostSuitable   = "Most Suitable"
	ClassMediumSuitable = "Medium Suitable"
	ClassLessSuitable   = "Less Suitable"
	ClassNotSuitable    = "Not Suitable"
)

// StatusSuccess is the status value of a successful analysis response.
const StatusSuccess = "success"

// ChartRecord is one suitability class with its area in km².
// Field names match the backend's chart_data entries.
type ChartRecord struct {
	Suitability string  `json:"Suitability"`
	Area        float64 `json:"Area"`
}

// Result is the analysis response envelope. One Result is created per
// successful request and fully replaces any prior result.
type Result struct {
	Status             string        `json:"status"`
	Error              string        `json:"error,omitempty"`
	ElevationMin       float64       `json:"elevation_min"`
	ElevationMax       float64       `json:"elevation_max"`
	SlopeMin           float64       `json:"slope_min"`
	SlopeMax           float64       `json:"slope_max"`
	PowerGenerationMWh float64       `json:"power_generation_mwh"`
	NumPanels          float64       `json:"num_panels"`
	ChartData          []ChartRecord `json:"chart_data"`
	SuitabilityTileURL string        `json:"suitability_tile_url"`
	SolarTileURL       string        `json:"solar_radiation_tile_url"`
	MapCenter          []float64     `json:"map_center"` // [lat, lon]
	MapZoom            int           `json:"map_zoom"`
}

// analysisRequest is the request body for the analysis endpoint.
// orb.Polygon marshals to the nested [[[lon,lat],...]] array shape
// the backend expects.
type analysisRequest struct {
	AOICoordinates orb.Polygon `json:"aoi_coordinates"`
}

// errorBody is the failure response body: either a non-2xx status with
// an error string, or a 2xx envelope whose status is not "success".
type errorBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// BackendError reports a failed analysis attempt. Message carries the
// backend's own error string when one could be parsed from the response,
// so it can be surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("analysis backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analysis backend returned status %d", e.StatusCode)
}

// UserMessage returns the text shown to the user for this failure.
func (e *BackendError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Analysis failed. Please try again."
}

// Analyzer is the interface the UI layer depends on, so handlers can be
// tested against a fake backend.
type Analyzer interface {
	Analyze(ctx context.Context, aoi orb.Polygon) (*Result, error)
}
