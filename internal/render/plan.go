// Package render builds declarative composition plans. A plan says what to
// draw without knowing which engine executes it.
package render

import (
	"mediaforge/internal/layout"
)

// Placement selects which edge of the frame receives the padding band.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
)

// shadowDelta is the fixed pixel offset of the legibility shadow pass.
const shadowDelta = 2

// TextOp is one text-draw instruction. Ops are listed in z-order: a line's
// shadow op always precedes its fill op.
type TextOp struct {
	Text        string
	FontFile    string
	FontSize    int
	Color       string
	BorderColor string
	BorderWidth int
	Alignment   layout.Alignment
	// EdgeMargin insets left/right-aligned text from the frame edge.
	EdgeMargin int
	// OffsetY is the vertical offset from the top of the padding band.
	OffsetY int
	// OffsetX is a horizontal delta applied after alignment anchoring,
	// used to displace the shadow pass.
	OffsetX int
	// Shadow marks the op as the shadow pass under a fill op.
	Shadow bool
}

// Plan is the full composition: a solid-color band attached to the source
// frame plus the draw instructions for every rendered line. It is consumed
// once by the transcoding step and never mutated after creation.
type Plan struct {
	// SourcePath is the local path of the downloaded source video.
	SourcePath string
	Placement  Placement
	BandHeight int
	BandColor  string
	Ops        []TextOp
}

// Style carries the color and font parameters of a title request.
type Style struct {
	FontFile    string
	FontColor   string
	BorderColor string
	BorderWidth int
	BandColor   string
	ShadowColor string
}

// BuildPlan turns a script profile, line layout and canvas into a render
// plan. Pure transformation, no I/O. For scripts that request a shadow pass
// each line emits two ops: the shadow, offset by a fixed delta, then the
// fill on top.
func BuildPlan(sourcePath string, placement Placement, p layout.Profile, l layout.Layout, c layout.Canvas, style Style) Plan {
	ops := make([]TextOp, 0, len(l.Lines)*2)

	for i, line := range l.Lines {
		base := TextOp{
			Text:        line,
			FontFile:    style.FontFile,
			FontSize:    c.FontSize,
			Color:       style.FontColor,
			BorderColor: style.BorderColor,
			BorderWidth: style.BorderWidth,
			Alignment:   c.Alignment,
			EdgeMargin:  c.EdgeMargin,
			OffsetY:     c.OffsetY[i],
		}

		if p.Shadow {
			shadow := base
			shadow.Shadow = true
			shadow.Color = style.ShadowColor
			shadow.BorderWidth = 0
			shadow.OffsetY += shadowDelta
			shadow.OffsetX = shadowDelta
			ops = append(ops, shadow)
		}
		ops = append(ops, base)
	}

	return Plan{
		SourcePath: sourcePath,
		Placement:  placement,
		BandHeight: c.BandHeight,
		BandColor:  style.BandColor,
		Ops:        ops,
	}
}
