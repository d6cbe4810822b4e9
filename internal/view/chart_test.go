package view

import (
	"testing"

	"github.com/sunscout/solar-siting-ui/internal/engine"
)

func fourClasses() []engine.ChartRecord {
	return []engine.ChartRecord{
		{Suitability: engine.ClassMostSuitable, Area: 12.3},
		{Suitability: engine.ClassMediumSuitable, Area: 8.1},
		{Suitability: engine.ClassLessSuitable, Area: 4.7},
		{Suitability: engine.ClassNotSuitable, Area: 2.2},
	}
}

func TestChart_Render(t *testing.T) {
	var c Chart
	c.Render(fourClasses())

	if len(c.Data.Labels) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(c.Data.Labels))
	}

	wantColors := []string{"#52E929", "#F5A742", "#AB2103", "#FF0000"}
	for i, color := range c.Data.Colors {
		if color != wantColors[i] {
			t.Errorf("color[%d] = %s, want %s", i, color, wantColors[i])
		}
	}

	if c.Data.Areas[0] != 12.3 {
		t.Errorf("area[0] = %g, want 12.3", c.Data.Areas[0])
	}
	if c.Data.Width != ChartWidth || c.Data.Height != ChartHeight {
		t.Errorf("unexpected dimensions %dx%d", c.Data.Width, c.Data.Height)
	}
}

func TestChart_RenderReplacesInstance(t *testing.T) {
	var c Chart
	c.Render(fourClasses())
	gen1 := c.Generation

	c.Render(fourClasses()[:2])
	if c.Generation == gen1 {
		t.Error("each render should produce a new chart generation")
	}
	if len(c.Data.Labels) != 2 {
		t.Errorf("new render should fully replace data, got %d labels", len(c.Data.Labels))
	}
}

func TestChart_EmptyRenderIsValid(t *testing.T) {
	var c Chart
	c.Render(fourClasses())
	c.Clear()

	if len(c.Data.Labels) != 0 || len(c.Data.Areas) != 0 {
		t.Errorf("cleared chart should be empty, got %+v", c.Data)
	}
	if c.Data.Width != ChartWidth {
		t.Error("empty chart keeps its fixed dimensions")
	}
}
