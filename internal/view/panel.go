package view

import (
	"fmt"
	"strconv"

	"github.com/sunscout/solar-siting-ui/internal/engine"
)

// placeholder is shown in each observation field when no result is on
// screen.
const placeholder = "-"

// Panel holds the formatted observation strings of the results panel.
type Panel struct {
	Visible   bool
	Elevation string
	Slope     string
	Power     string
	Panels    string
}

// NewPanel returns a hidden panel with placeholder text in every field.
func NewPanel() *Panel {
	p := &Panel{}
	p.Hide()
	return p
}

// Show reveals the panel and formats the four observation fields:
// elevation as integers, slope with 2 decimals, power with 3 decimals,
// panel count as an integer.
func (p *Panel) Show(r *engine.Result) {
	p.Visible = true
	p.Elevation = fmt.Sprintf("%.0f - %.0f", r.ElevationMin, r.ElevationMax)
	p.Slope = fmt.Sprintf("%.2f - %.2f", r.SlopeMin, r.SlopeMax)
	p.Power = strconv.FormatFloat(r.PowerGenerationMWh, 'f', 3, 64)
	p.Panels = fmt.Sprintf("%.0f", r.NumPanels)
}

// Hide hides the panel and resets all fields to placeholder text.
func (p *Panel) Hide() {
	p.Visible = false
	p.Elevation = placeholder
	p.Slope = placeholder
	p.Power = placeholder
	p.Panels = placeholder
}
