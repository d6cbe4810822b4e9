package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func closedRing() orb.Ring {
	return orb.Ring{{75, 25}, {80, 25}, {80, 20}, {75, 20}, {75, 25}}
}

func TestValidatePolygon(t *testing.T) {
	tests := []struct {
		name    string
		polygon orb.Polygon
		wantErr bool
	}{
		{"valid", orb.Polygon{closedRing()}, false},
		{"no rings", orb.Polygon{}, true},
		{"two rings", orb.Polygon{closedRing(), closedRing()}, true},
		{"too few points", orb.Polygon{{{75, 25}, {80, 25}, {75, 25}}}, true},
		{"not closed", orb.Polygon{{{75, 25}, {80, 25}, {80, 20}, {75, 20}}}, true},
		{"longitude out of range", orb.Polygon{{{191, 25}, {80, 25}, {80, 20}, {191, 25}}}, true},
		{"latitude out of range", orb.Polygon{{{75, 95}, {80, 25}, {80, 20}, {75, 95}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePolygon(tt.polygon)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestZoomFor(t *testing.T) {
	tests := []struct {
		name  string
		bound orb.Bound
		want  int
	}{
		// 5x5 degree box: min(log2(72), log2(36)) = 5.17 -> floor+1 = 6
		{"regional box", orb.Bound{Min: orb.Point{75, 20}, Max: orb.Point{80, 25}}, 6},
		// Whole world: min(log2(1), log2(1)) = 0 -> clamped to 1
		{"whole world", orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}, 1},
		// Tiny box clamps at 16
		{"tiny box", orb.Bound{Min: orb.Point{75, 20}, Max: orb.Point{75.001, 20.001}}, 16},
		// Degenerate box falls back to the default
		{"degenerate", orb.Bound{Min: orb.Point{75, 20}, Max: orb.Point{75, 20}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoomFor(tt.bound); got != tt.want {
				t.Errorf("ZoomFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCenterOf(t *testing.T) {
	center := CenterOf(orb.Polygon{closedRing()})

	if center[0] != 22.5 || center[1] != 77.5 {
		t.Errorf("expected center [22.5, 77.5], got %v", center)
	}
}
