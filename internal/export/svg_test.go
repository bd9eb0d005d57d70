package export

import (
	"strings"
	"testing"

	"github.com/hwen/knotsim/internal/analysis"
	"github.com/hwen/knotsim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.Set(0, 0)
	c.Set(7, 15)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("circle count = %d, want 2", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `width="32"`) || !strings.Contains(svg, `height="64"`) {
		t.Errorf("unexpected dimensions in %q", svg[:200])
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if svg := CanvasToSVG(nil, 4); svg != "" {
		t.Error("expected empty string for nil canvas")
	}
}

func TestPortraitToSVG(t *testing.T) {
	portrait := &analysis.PhasePortrait2D{
		Points: []struct{ X, Y float64 }{{0, 0}, {1, 1}, {2, 0}},
	}

	svg := PortraitToSVG(portrait, 200, 100, "#ff8800")
	if !strings.Contains(svg, `stroke="#ff8800"`) {
		t.Error("missing stroke color")
	}
	if !strings.Contains(svg, `d="M`) || strings.Count(svg, " L") != 2 {
		t.Errorf("path segments wrong in %q", svg)
	}
}

func TestPortraitToSVGDegenerate(t *testing.T) {
	if svg := PortraitToSVG(nil, 100, 100, "#fff"); svg != "" {
		t.Error("expected empty string for nil portrait")
	}
	one := &analysis.PhasePortrait2D{Points: []struct{ X, Y float64 }{{1, 1}}}
	if svg := PortraitToSVG(one, 100, 100, "#fff"); svg != "" {
		t.Error("expected empty string for single point")
	}
}
