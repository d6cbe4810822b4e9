// Package ui holds the per-session page state: the AOI selection mode
// state machine, the current AOI and analysis result, and the three
// result widgets. All page actions funnel through Session methods so
// state transitions clear dependent state deterministically.
package ui

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/sunscout/solar-siting-ui/internal/engine"
	"github.com/sunscout/solar-siting-ui/internal/view"
)

// Mode is the active AOI selection mode. Exactly one mode is active at a
// time; Reset is a transition back to Unselected, not a resting state.
type Mode int

const (
	ModeUnselected Mode = iota
	ModeDrawing
	ModeBoundingBox
)

// String returns the dropdown value for the mode.
func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "draw"
	case ModeBoundingBox:
		return "bbox"
	default:
		return ""
	}
}

// ParseMode maps a dropdown value to a Mode. The "reset" option is
// handled by the caller (it is an action, not a resting mode); an empty
// value means unselected.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return ModeUnselected, nil
	case "draw":
		return ModeDrawing, nil
	case "bbox":
		return ModeBoundingBox, nil
	default:
		return ModeUnselected, fmt.Errorf("unknown AOI method %q", s)
	}
}

// Session is the page state for one browser session. All methods are
// safe for concurrent use; handlers for the same session may overlap
// when a slow analysis is in flight.
type Session struct {
	mu sync.Mutex

	mode   Mode
	aoi    orb.Polygon // nil when no AOI is active
	result *engine.Result

	toolbarActive  bool
	analyzeVisible bool

	// seq is the sequence number of the most recently issued analysis.
	// A completion only applies when its sequence is still the latest,
	// so a slow earlier response cannot clobber a newer one.
	seq uint64

	mapView *view.MapView
	chart   *view.Chart
	panel   *view.Panel
}

// NewSession creates a session in the unselected mode with the given
// default map view.
func NewSession(center [2]float64, zoom int) *Session {
	return &Session{
		mapView: view.NewMapView(center, zoom),
		chart:   &view.Chart{},
		panel:   view.NewPanel(),
	}
}

// SelectMode enters an AOI selection mode. Any existing AOI and any
// displayed result are cleared first, whichever mode was active before.
func (s *Session) SelectMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	s.mode = m
	s.toolbarActive = m == ModeDrawing
}

// Reset clears all AOI and result state, recenters the map to the
// default view, and returns the mode selector to unselected.
func (s *Session) Reset() {
	s.SelectMode(ModeUnselected)
}

// clearLocked discards the AOI, the result, and all dependent widget
// state. In-flight analyses are invalidated by bumping the sequence.
func (s *Session) clearLocked() {
	s.aoi = nil
	s.result = nil
	s.toolbarActive = false
	s.analyzeVisible = false
	s.seq++
	s.mapView.Reset()
	s.chart.Clear()
	s.panel.Hide()
}

// Mode returns the active AOI selection mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ShapeCompleted records a freshly drawn shape. The new shape replaces
// any existing one, the analyze trigger becomes visible, and the draw
// toolbar is taken off the map. Returns an error outside drawing mode.
func (s *Session) ShapeCompleted(p orb.Polygon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeDrawing {
		return fmt.Errorf("shape completed outside drawing mode")
	}

	s.aoi = p
	s.analyzeVisible = true
	s.toolbarActive = false
	return nil
}

// ShapesDeleted records that the drawn shape was removed. Results are
// cleared, and if the session is still in drawing mode the toolbar
// comes back so a new shape can be drawn.
func (s *Session) ShapesDeleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.aoi = nil
	s.result = nil
	s.analyzeVisible = false
	s.seq++
	s.mapView.Reset()
	s.chart.Clear()
	s.panel.Hide()

	if s.mode == ModeDrawing {
		s.toolbarActive = true
	}
}

// AOI returns the active AOI polygon, or false when none exists.
func (s *Session) AOI() (orb.Polygon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.aoi == nil {
		return nil, false
	}
	return s.aoi, true
}

// SetAOI installs an AOI directly, used by the bounding-box path where
// the ring is constructed server-side rather than drawn.
func (s *Session) SetAOI(p orb.Polygon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aoi = p
}

// BeginAnalysis issues a new analysis sequence number. The caller must
// hand the number back to CompleteAnalysis with the backend's response.
func (s *Session) BeginAnalysis() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// CompleteAnalysis applies a successful result if its sequence is still
// the latest issued. It reports whether the result was applied; stale
// completions leave all state untouched.
func (s *Session) CompleteAnalysis(seq uint64, r *engine.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}

	s.result = r
	s.mapView.ShowResult(r)
	s.chart.Render(r.ChartData)
	s.panel.Show(r)
	return true
}

// SetLayerVisible toggles an analysis tile layer on the map. Reports
// false when the layer does not exist (no result on screen).
func (s *Session) SetLayerVisible(kind string, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapView.SetVisible(kind, visible)
}

// Snapshot is an immutable copy of the renderable session state.
type Snapshot struct {
	Mode           Mode
	HasAOI         bool
	HasResult      bool
	ToolbarActive  bool
	AnalyzeVisible bool
	Map            view.MapView
	Chart          view.Chart
	Panel          view.Panel
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Mode:           s.mode,
		HasAOI:         s.aoi != nil,
		HasResult:      s.result != nil,
		ToolbarActive:  s.toolbarActive,
		AnalyzeVisible: s.analyzeVisible,
		Map:            *s.mapView,
		Chart:          *s.chart,
		Panel:          *s.panel,
	}
	if s.mapView.Suitability != nil {
		l := *s.mapView.Suitability
		snap.Map.Suitability = &l
	}
	if s.mapView.Solar != nil {
		l := *s.mapView.Solar
		snap.Map.Solar = &l
	}
	return snap
}
