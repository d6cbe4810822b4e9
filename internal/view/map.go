// Package view holds the presentation state of the page's three result
// widgets: the map's analysis tile layers, the suitability chart, and the
// observation panel. Each type translates an analysis result into the
// state the browser widgets render.
package view

import "github.com/sunscout/solar-siting-ui/internal/engine"

// Layer kinds for the two analysis tile overlays.
const (
	LayerSuitability = "suitability"
	LayerSolar       = "solar"
)

// TileLayer is one analysis overlay built from a backend URL template.
// Toggling visibility never discards the layer; only adds or removes it
// from the map view.
type TileLayer struct {
	URLTemplate string
	Visible     bool
}

// MapView tracks the map's analysis overlays and view target. At most
// one suitability and one solar layer exist at any time.
type MapView struct {
	Suitability *TileLayer
	Solar       *TileLayer
	Center      [2]float64 // [lat, lon]
	Zoom        int

	defaultCenter [2]float64
	defaultZoom   int
}

// NewMapView creates a map view at its default center and zoom.
func NewMapView(center [2]float64, zoom int) *MapView {
	return &MapView{
		Center:        center,
		Zoom:          zoom,
		defaultCenter: center,
		defaultZoom:   zoom,
	}
}

// ShowResult replaces both tile layers from the result's URL templates
// and re-centers the view. The suitability layer starts visible, the
// solar radiation layer is prepared but hidden.
func (m *MapView) ShowResult(r *engine.Result) {
	m.Suitability = &TileLayer{URLTemplate: r.SuitabilityTileURL, Visible: true}
	m.Solar = &TileLayer{URLTemplate: r.SolarTileURL, Visible: false}

	if len(r.MapCenter) >= 2 {
		m.Center = [2]float64{r.MapCenter[0], r.MapCenter[1]}
	}
	if r.MapZoom > 0 {
		m.Zoom = r.MapZoom
	}
}

// SetVisible toggles a layer on or off the map view. It reports false
// when no such layer exists, in which case the toggle is a no-op.
func (m *MapView) SetVisible(kind string, visible bool) bool {
	var layer *TileLayer
	switch kind {
	case LayerSuitability:
		layer = m.Suitability
	case LayerSolar:
		layer = m.Solar
	}
	if layer == nil {
		return false
	}
	layer.Visible = visible
	return true
}

// Reset removes both tile layers and recenters to the default view.
func (m *MapView) Reset() {
	m.Suitability = nil
	m.Solar = nil
	m.Center = m.defaultCenter
	m.Zoom = m.defaultZoom
}
