package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paulmach/orb"

	"github.com/sunscout/solar-siting-ui/internal/config"
	"github.com/sunscout/solar-siting-ui/internal/engine"
	"github.com/sunscout/solar-siting-ui/internal/geo"
	"github.com/sunscout/solar-siting-ui/internal/templates"
	"github.com/sunscout/solar-siting-ui/internal/ui"
	"github.com/sunscout/solar-siting-ui/pkg/geojson"
)

// Status line messages.
const (
	statusWorking  = "Performing analysis, please wait..."
	statusComplete = "Analysis complete."
	statusFailed   = "Analysis failed."
)

// alertNoAOI is shown when the analyze trigger fires with nothing drawn.
const alertNoAOI = "Please draw an AOI on the map before running the analysis."

// Handlers contains all HTTP handlers for the page and its actions.
type Handlers struct {
	cfg      *config.Config
	engine   engine.Analyzer
	store    ui.SessionStore
	renderer *templates.Renderer
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(
	cfg *config.Config,
	analyzer engine.Analyzer,
	store ui.SessionStore,
	renderer *templates.Renderer,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		cfg:      cfg,
		engine:   analyzer,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

// session returns the page session for the request, creating one (and
// setting its cookie) when the request has none or the old one expired.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*ui.Session, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, err := h.store.Retrieve(cookie.Value); err == nil {
			return sess, nil
		}
	}

	token, sess, err := h.store.Create()
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

// pageData is the payload for rendering the full page.
type pageData struct {
	BaseTileURL string
	DefaultLat  float64
	DefaultLon  float64
	DefaultZoom int
}

// Page renders the application page.
// GET /
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteNotFound(w, "endpoint not found")
		return
	}

	if _, err := h.session(w, r); err != nil {
		h.logger.Error("failed to create session", slog.String("error", err.Error()))
		WriteInternalError(w, "failed to create session")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.renderer.Execute(w, "index.html", pageData{
		BaseTileURL: h.cfg.Map.BaseTileURL,
		DefaultLat:  h.cfg.Map.DefaultLat,
		DefaultLon:  h.cfg.Map.DefaultLon,
		DefaultZoom: h.cfg.Map.DefaultZoom,
	})
	if err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
	}
}

// Health returns the health status of the service along with the live
// session count.
// GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, _ := h.store.Stats()

	response := map[string]any{
		"status":   "ok",
		"sessions": count,
	}

	WriteJSON(w, http.StatusOK, response)
}

// ModeSelect handles the AOI method dropdown. Every selection first
// clears the prior AOI and results, then enters the selected mode.
// POST /ui/mode
func (h *Handlers) ModeSelect(w http.ResponseWriter, r *http.Request) {
	sess, signals, sse, ok := h.action(w, r)
	if !ok {
		return
	}

	method := signals.String("aoimethod")
	if method == "reset" {
		h.reset(sse, sess)
		return
	}

	mode, err := ui.ParseMode(method)
	if err != nil {
		sse.Alert(err.Error())
		return
	}

	sess.SelectMode(mode)
	h.pushCleared(sse, sess)

	switch mode {
	case ui.ModeDrawing:
		h.patchControls(sse, "aoi_controls_draw")
	case ui.ModeBoundingBox:
		h.patchControls(sse, "aoi_controls_bbox")
	default:
		h.patchControls(sse, "aoi_controls_empty")
	}
}

// Reset clears all AOI and result state and returns the dropdown to
// unselected.
// POST /ui/reset
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	sess, _, sse, ok := h.action(w, r)
	if !ok {
		return
	}
	h.reset(sse, sess)
}

func (h *Handlers) reset(sse *SSE, sess *ui.Session) {
	sess.Reset()
	h.pushCleared(sse, sess)
	h.patchControls(sse, "aoi_controls_empty")
	sse.Signals(map[string]any{"aoimethod": ""})
}

// ShapeEvent handles draw-toolbar events from the map: a completed
// shape replaces any existing AOI; deleting down to zero shapes clears
// results and brings the toolbar back.
// POST /ui/shape
func (h *Handlers) ShapeEvent(w http.ResponseWriter, r *http.Request) {
	sess, signals, sse, ok := h.action(w, r)
	if !ok {
		return
	}

	switch event := signals.String("shapeevent"); event {
	case "created":
		raw, ok := signals.Raw("shapegeometry")
		if !ok {
			sse.Alert("No shape geometry received.")
			return
		}

		g, err := geojson.Parse(raw)
		if err != nil {
			sse.Alert("Could not read the drawn shape: " + err.Error())
			return
		}

		polygon, err := g.OrbPolygon()
		if err != nil {
			sse.Alert("Could not read the drawn shape: " + err.Error())
			return
		}

		if err := geo.ValidatePolygon(polygon); err != nil {
			sse.Alert("Invalid AOI: " + err.Error())
			return
		}

		if err := sess.ShapeCompleted(polygon); err != nil {
			sse.Alert(err.Error())
			return
		}

		sse.Signals(map[string]any{
			"analyzevisible": true,
			"drawtoolbar":    false,
		})

	case "deleted":
		sess.ShapesDeleted()
		h.pushCleared(sse, sess)

	default:
		sse.Alert("Unknown shape event: " + event)
	}
}

// BBoxSubmit validates the four bounding-box inputs, builds the closed
// AOI ring, and runs the analysis. Validation failures surface as an
// alert and send nothing to the backend.
// POST /ui/bbox
func (h *Handlers) BBoxSubmit(w http.ResponseWriter, r *http.Request) {
	sess, signals, sse, ok := h.action(w, r)
	if !ok {
		return
	}

	bounds, err := geo.ParseBounds(
		signals.Text("north"),
		signals.Text("south"),
		signals.Text("east"),
		signals.Text("west"),
	)
	if err != nil {
		sse.Alert("Invalid bounding box: " + err.Error())
		return
	}

	if err := bounds.Validate(); err != nil {
		sse.Alert("Invalid bounding box: " + err.Error())
		return
	}

	aoi := bounds.Polygon()
	sess.SetAOI(aoi)
	h.runAnalysis(r, sse, sess, aoi)
}

// Analyze runs the analysis on the drawn AOI.
// POST /ui/analyze
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	sess, _, sse, ok := h.action(w, r)
	if !ok {
		return
	}

	aoi, ok := sess.AOI()
	if !ok {
		sse.Alert(alertNoAOI)
		return
	}

	h.runAnalysis(r, sse, sess, aoi)
}

// LayerToggle shows or hides one of the analysis tile layers. A toggle
// without a corresponding layer is a no-op.
// POST /ui/layers
func (h *Handlers) LayerToggle(w http.ResponseWriter, r *http.Request) {
	sess, signals, sse, ok := h.action(w, r)
	if !ok {
		return
	}

	kind := signals.String("layer")
	visible := signals.Bool("visible")

	if !sess.SetLayerVisible(kind, visible) {
		h.logger.Debug("layer toggle ignored, no layer present",
			slog.String("layer", kind),
		)
		return
	}

	sse.Signals(map[string]any{kind + "visible": visible})
}

// AnalysisRequest is the JSON API request body, mirroring what the
// analysis backend itself accepts.
type AnalysisRequest struct {
	AOICoordinates orb.Polygon `json:"aoi_coordinates"`
}

// Analysis proxies a raw analysis request: validates the AOI polygon,
// forwards it to the backend, and returns the result envelope.
// POST /api/v1/analysis
func (h *Handlers) Analysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if len(req.AOICoordinates) == 0 {
		WriteBadRequest(w, "aoi_coordinates is required")
		return
	}

	if err := geo.ValidatePolygon(req.AOICoordinates); err != nil {
		WriteInvalidParameter(w, err.Error())
		return
	}

	result, err := h.engine.Analyze(r.Context(), req.AOICoordinates)
	if err != nil {
		var be *engine.BackendError
		if errors.As(err, &be) {
			WriteUpstreamError(w, be.UserMessage())
			return
		}
		h.logger.Error("analysis failed", slog.String("error", err.Error()))
		WriteUpstreamError(w, "analysis backend unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// runAnalysis submits the AOI to the backend and fans the result out to
// the map, chart, and results panel. Each submission gets a sequence
// number; a response that is no longer the latest is dropped instead of
// overwriting newer state.
func (h *Handlers) runAnalysis(r *http.Request, sse *SSE, sess *ui.Session, aoi orb.Polygon) {
	sse.Status(statusWorking)

	seq := sess.BeginAnalysis()

	result, err := h.engine.Analyze(r.Context(), aoi)
	if err != nil {
		var be *engine.BackendError
		if errors.As(err, &be) {
			sse.Alert("Analysis failed: " + be.UserMessage())
		} else {
			h.logger.Error("analysis failed", slog.String("error", err.Error()))
			sse.Alert("Analysis failed: could not reach the analysis backend.")
		}
		sse.Status(statusFailed)
		return
	}

	// The backend usually picks the re-center target; fall back to the
	// AOI's own bound when it does not.
	if len(result.MapCenter) < 2 {
		c := geo.CenterOf(aoi)
		result.MapCenter = []float64{c[0], c[1]}
	}
	if result.MapZoom == 0 {
		result.MapZoom = geo.ZoomFor(aoi.Bound())
	}

	if !sess.CompleteAnalysis(seq, result) {
		h.logger.Info("dropping stale analysis response",
			slog.Uint64("seq", seq),
		)
		return
	}

	h.pushResult(sse, sess)
}

// pushResult sends the full result state: panel text, chart payload,
// tile layers with their default visibility, and the map view target.
func (h *Handlers) pushResult(sse *SSE, sess *ui.Session) {
	snap := sess.Snapshot()

	signals := map[string]any{
		"status":         statusComplete,
		"resultsvisible": true,
		"elevation":      snap.Panel.Elevation,
		"slope":          snap.Panel.Slope,
		"power":          snap.Panel.Power,
		"panels":         snap.Panel.Panels,
		"chartdata":      snap.Chart.Data,
		"chartgen":       snap.Chart.Generation,
		"mapcenter":      snap.Map.Center,
		"mapzoom":        snap.Map.Zoom,
	}

	if snap.Map.Suitability != nil {
		signals["suitabilitytileurl"] = snap.Map.Suitability.URLTemplate
		signals["suitabilityvisible"] = snap.Map.Suitability.Visible
	}
	if snap.Map.Solar != nil {
		signals["solartileurl"] = snap.Map.Solar.URLTemplate
		signals["solarvisible"] = snap.Map.Solar.Visible
	}

	sse.Signals(signals)
}

// pushCleared sends the cleared widget state: hidden results panel,
// placeholder text, empty chart, no tile layers, default map view. The
// draw toolbar signal always reflects the session, so leaving drawing
// mode takes the toolbar off the map.
func (h *Handlers) pushCleared(sse *SSE, sess *ui.Session) {
	snap := sess.Snapshot()

	sse.Signals(map[string]any{
		"status":             "",
		"resultsvisible":     false,
		"analyzevisible":     false,
		"drawtoolbar":        snap.ToolbarActive,
		"elevation":          snap.Panel.Elevation,
		"slope":              snap.Panel.Slope,
		"power":              snap.Panel.Power,
		"panels":             snap.Panel.Panels,
		"chartdata":          snap.Chart.Data,
		"chartgen":           snap.Chart.Generation,
		"suitabilitytileurl": "",
		"solartileurl":       "",
		"suitabilityvisible": false,
		"solarvisible":       false,
		"mapcenter":          snap.Map.Center,
		"mapzoom":            snap.Map.Zoom,
		"clearshapes":        snap.Chart.Generation,
	})
}

// patchControls swaps the mode-dependent AOI controls fragment.
func (h *Handlers) patchControls(sse *SSE, fragment string) {
	html, err := h.renderer.Render(fragment, nil)
	if err != nil {
		h.logger.Error("failed to render fragment",
			slog.String("fragment", fragment),
			slog.String("error", err.Error()),
		)
		return
	}
	sse.PatchElements(html, "#aoi-controls")
}

// action is the shared prologue for page action handlers: resolve the
// session, parse the signal body, and open the SSE response.
func (h *Handlers) action(w http.ResponseWriter, r *http.Request) (*ui.Session, Signals, *SSE, bool) {
	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Error("failed to resolve session", slog.String("error", err.Error()))
		WriteInternalError(w, "failed to resolve session")
		return nil, nil, nil, false
	}

	signals, err := ReadSignals(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, nil, nil, false
	}

	return sess, signals, NewSSE(w, r), true
}
