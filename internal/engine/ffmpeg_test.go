package engine

import (
	"strings"
	"testing"

	"mediaforge/internal/layout"
	"mediaforge/internal/render"
)

func TestFontFile(t *testing.T) {
	f := New("ffmpeg", "ffprobe", "/usr/share/fonts/truetype/thai-tlwg", nil)

	tests := []struct {
		name string
		want string
	}{
		{"Sarabun", "/usr/share/fonts/truetype/thai-tlwg/Sarabun.ttf"},
		{"Arial", "/usr/share/fonts/truetype/thai-tlwg/Arial.ttf"},
		{"Custom.otf", "/usr/share/fonts/truetype/thai-tlwg/Custom.otf"},
	}

	for _, tt := range tests {
		if got := f.FontFile(tt.name); got != tt.want {
			t.Errorf("FontFile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEscapeDrawText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"50% off", `50\% off`},
		{"note: read", `note\: read`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := escapeDrawText(tt.in); got != tt.want {
			t.Errorf("escapeDrawText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildFilterTopPlacement(t *testing.T) {
	plan := render.Plan{
		Placement:  render.PlacementTop,
		BandHeight: 220,
		BandColor:  "white",
		Ops: []render.TextOp{
			{Text: "hello", FontFile: "/f/Arial.ttf", FontSize: 50, Color: "black", Alignment: "center", OffsetY: 10, BorderColor: "#ffc8dd", BorderWidth: 2},
		},
	}

	got := buildFilter(plan, 1280, 720)

	if !strings.HasPrefix(got, "scale=1280:720,pad=1280:940:0:220:color=white") {
		t.Errorf("unexpected scale/pad prefix: %s", got)
	}
	// Band sits on top, so the video shifts down and text y stays in-band.
	if !strings.Contains(got, "y=10") {
		t.Errorf("expected y=10 in filter: %s", got)
	}
	if !strings.Contains(got, "x=(w-text_w)/2+0") {
		t.Errorf("expected centered x expression: %s", got)
	}
	if !strings.Contains(got, "bordercolor=#ffc8dd:borderw=2") {
		t.Errorf("expected border clause: %s", got)
	}
}

func TestBuildFilterBottomPlacement(t *testing.T) {
	plan := render.Plan{
		Placement:  render.PlacementBottom,
		BandHeight: 120,
		BandColor:  "black",
		Ops: []render.TextOp{
			{Text: "caption", FontFile: "/f/Arial.ttf", FontSize: 40, Color: "white", Alignment: "center", OffsetY: 35},
		},
	}

	got := buildFilter(plan, 640, 480)

	// Video stays at the top, the band pads below it.
	if !strings.HasPrefix(got, "scale=640:480,pad=640:600:0:0:color=black") {
		t.Errorf("unexpected scale/pad prefix: %s", got)
	}
	if !strings.Contains(got, "y=515") {
		t.Errorf("expected text offset below the frame (480+35): %s", got)
	}
}

func TestBuildFilterAlignments(t *testing.T) {
	base := render.TextOp{Text: "t", FontFile: "/f/A.ttf", FontSize: 50, Color: "black", EdgeMargin: 30}

	tests := []struct {
		align layout.Alignment
		x     string
		dx    int
	}{
		{"left", "x=30", 0},
		{"right", "x=w-text_w-30+0", 0},
		{"center", "x=(w-text_w)/2+2", 2},
	}

	for _, tt := range tests {
		op := base
		op.Alignment = tt.align
		op.OffsetX = tt.dx
		plan := render.Plan{Placement: render.PlacementTop, BandHeight: 100, BandColor: "white", Ops: []render.TextOp{op}}
		if got := buildFilter(plan, 100, 100); !strings.Contains(got, tt.x) {
			t.Errorf("align %s: filter %q missing %q", tt.align, got, tt.x)
		}
	}
}

func TestTail(t *testing.T) {
	if got := tail("  short  ", 10); got != "short" {
		t.Errorf("tail = %q", got)
	}
	if got := tail("abcdefghij", 4); got != "ghij" {
		t.Errorf("tail = %q, want last 4 bytes", got)
	}
}
