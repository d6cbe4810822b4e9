package view

import "github.com/sunscout/solar-siting-ui/internal/engine"

// Fixed bar colors by suitability class display order:
// most, medium, less, not suitable.
var classColors = []string{"#52E929", "#F5A742", "#AB2103", "#FF0000"}

// Chart pixel dimensions.
const (
	ChartWidth  = 400
	ChartHeight = 300
)

// ChartData is the payload the browser chart widget renders: one bar per
// suitability class with its area in km².
type ChartData struct {
	Labels []string  `json:"labels"`
	Areas  []float64 `json:"areas"`
	Colors []string  `json:"colors"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
}

// Chart tracks the current chart payload. The widget on the page is
// destroyed and recreated for every render, so the generation counter
// lets the browser know a fresh instance is required.
type Chart struct {
	Data       ChartData
	Generation int
}

// Render replaces the chart with a new one built from the given records.
// Zero records is a valid empty chart, used on reset. Colors are assigned
// by class index; records beyond the four known classes reuse the last
// color rather than going unpainted.
func (c *Chart) Render(records []engine.ChartRecord) {
	data := ChartData{
		Labels: make([]string, len(records)),
		Areas:  make([]float64, len(records)),
		Colors: make([]string, len(records)),
		Width:  ChartWidth,
		Height: ChartHeight,
	}

	for i, rec := range records {
		data.Labels[i] = rec.Suitability
		data.Areas[i] = rec.Area
		ci := i
		if ci >= len(classColors) {
			ci = len(classColors) - 1
		}
		data.Colors[i] = classColors[ci]
	}

	c.Data = data
	c.Generation++
}

// Clear renders an empty chart.
func (c *Chart) Clear() {
	c.Render(nil)
}
