package layout

// Alignment places title lines horizontally within the frame.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment validates a caller-supplied alignment. Empty input means
// center; anything else unrecognized is rejected by request validation.
func ParseAlignment(s string) (Alignment, bool) {
	switch Alignment(s) {
	case "":
		return AlignCenter, true
	case AlignLeft, AlignCenter, AlignRight:
		return Alignment(s), true
	default:
		return "", false
	}
}

const (
	// edgeMargin offsets left/right-aligned text from the frame edge.
	edgeMargin = 30
	// bandMargin is fixed breathing room added to the computed band height.
	bandMargin = 20
)

// Canvas describes the padding band that hosts the title lines.
type Canvas struct {
	// BandHeight is the final band height in pixels. It is never smaller
	// than the height required to show every line; the caller's requested
	// padding is honored only when it already suffices.
	BandHeight int
	// LineAdvance is the vertical distance between consecutive line tops.
	LineAdvance int
	// OffsetY holds each line's vertical offset from the band top.
	OffsetY []int
	// EdgeMargin is the horizontal inset for left/right alignment.
	EdgeMargin int
	Alignment  Alignment
	FontSize   int
	// Expanded is set when the requested padding had to grow.
	Expanded bool
}

// Size computes the padding band for a line layout. Required height is
// lines * fontSize * (1 + 2*multiplier) plus a fixed margin; a smaller
// requested padding auto-expands so text is never cropped, while a larger
// one is kept as caller intent. The text block is centered vertically
// within the band.
func Size(l Layout, fontSize int, multiplier float64, requested int, align Alignment) Canvas {
	advance := int(float64(fontSize) * (1 + 2*multiplier))
	if advance < fontSize {
		advance = fontSize
	}

	textHeight := len(l.Lines) * advance
	required := textHeight + bandMargin

	band := requested
	expanded := false
	if band < required {
		band = required
		expanded = true
	}

	start := (band - textHeight) / 2
	offsets := make([]int, len(l.Lines))
	for i := range offsets {
		offsets[i] = start + i*advance
	}

	return Canvas{
		BandHeight:  band,
		LineAdvance: advance,
		OffsetY:     offsets,
		EdgeMargin:  edgeMargin,
		Alignment:   align,
		FontSize:    fontSize,
		Expanded:    expanded,
	}
}
