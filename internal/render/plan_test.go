package render

import (
	"testing"

	"mediaforge/internal/layout"
)

func testCanvas(lines int) layout.Canvas {
	offsets := make([]int, lines)
	for i := range offsets {
		offsets[i] = 10 + i*100
	}
	return layout.Canvas{
		BandHeight:  220,
		LineAdvance: 100,
		OffsetY:     offsets,
		EdgeMargin:  30,
		Alignment:   layout.AlignCenter,
		FontSize:    50,
	}
}

func testStyle() Style {
	return Style{
		FontFile:    "/fonts/Sarabun.ttf",
		FontColor:   "white",
		BorderColor: "#ffc8dd",
		BorderWidth: 2,
		BandColor:   "black",
		ShadowColor: "black",
	}
}

func TestBuildPlanLatin(t *testing.T) {
	p := layout.Classify("hello")
	l := layout.Layout{Lines: []string{"hello world", "again"}}

	plan := BuildPlan("/tmp/in.mp4", PlacementTop, p, l, testCanvas(2), testStyle())

	if plan.SourcePath != "/tmp/in.mp4" {
		t.Errorf("SourcePath = %q", plan.SourcePath)
	}
	if plan.Placement != PlacementTop {
		t.Errorf("Placement = %q, want top", plan.Placement)
	}
	if plan.BandHeight != 220 || plan.BandColor != "black" {
		t.Errorf("band = %d/%q", plan.BandHeight, plan.BandColor)
	}
	if len(plan.Ops) != 2 {
		t.Fatalf("got %d ops, want 2 (no shadow pass for latin)", len(plan.Ops))
	}
	for i, op := range plan.Ops {
		if op.Shadow {
			t.Errorf("op %d unexpectedly marked as shadow", i)
		}
		if op.Text != l.Lines[i] {
			t.Errorf("op %d text = %q, want %q", i, op.Text, l.Lines[i])
		}
		if op.OffsetY != 10+i*100 {
			t.Errorf("op %d OffsetY = %d", i, op.OffsetY)
		}
	}
}

func TestBuildPlanThaiShadow(t *testing.T) {
	p := layout.Classify("สวัสดี")
	l := layout.Layout{Lines: []string{"สวัสดี", "ครับผม"}}

	plan := BuildPlan("/tmp/in.mp4", PlacementTop, p, l, testCanvas(2), testStyle())

	if len(plan.Ops) != 4 {
		t.Fatalf("got %d ops, want 4 (shadow + fill per line)", len(plan.Ops))
	}

	for i := 0; i < len(plan.Ops); i += 2 {
		shadow, fill := plan.Ops[i], plan.Ops[i+1]

		if !shadow.Shadow {
			t.Fatalf("op %d: shadow pass must precede its fill", i)
		}
		if fill.Shadow {
			t.Fatalf("op %d: fill marked as shadow", i+1)
		}
		if shadow.Text != fill.Text {
			t.Errorf("shadow text %q != fill text %q", shadow.Text, fill.Text)
		}
		if shadow.Color != "black" {
			t.Errorf("shadow color = %q, want black", shadow.Color)
		}
		if shadow.BorderWidth != 0 {
			t.Errorf("shadow BorderWidth = %d, want 0", shadow.BorderWidth)
		}
		if shadow.OffsetY != fill.OffsetY+2 || shadow.OffsetX != 2 {
			t.Errorf("shadow offsets = (%d,%d), want displaced by 2", shadow.OffsetX, shadow.OffsetY)
		}
	}
}

func TestBuildPlanBottomPlacement(t *testing.T) {
	p := layout.Classify("hello")
	l := layout.Layout{Lines: []string{"caption"}}

	plan := BuildPlan("/tmp/in.mp4", PlacementBottom, p, l, testCanvas(1), testStyle())
	if plan.Placement != PlacementBottom {
		t.Errorf("Placement = %q, want bottom", plan.Placement)
	}
}
