package api

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// SSE wraps the Datastar SSE generator with the helpers the page
// handlers need. Signals drive the widget bindings on the browser side;
// element patches swap the mode-dependent controls.
type SSE struct {
	gen *datastar.ServerSentEventGenerator
}

// NewSSE starts an SSE response for a page action.
func NewSSE(w http.ResponseWriter, r *http.Request) *SSE {
	return &SSE{gen: datastar.NewSSE(w, r)}
}

// PatchElements sends HTML to replace the content at a selector.
func (s *SSE) PatchElements(html, selector string) {
	s.gen.PatchElements(html, datastar.WithSelector(selector), datastar.WithModeInner())
}

// Signals sends arbitrary signals to the client.
func (s *SSE) Signals(signals map[string]any) {
	s.gen.MarshalAndPatchSignals(signals)
}

// Status updates the status line text.
func (s *SSE) Status(msg string) {
	s.Signals(map[string]any{"status": msg})
}

// Alert raises a blocking user-visible alert and mirrors the message on
// the status line.
func (s *SSE) Alert(msg string) {
	s.Signals(map[string]any{
		"alert":  msg,
		"status": msg,
	})
}
