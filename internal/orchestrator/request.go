package orchestrator

import (
	"strings"

	"mediaforge/internal/layout"
	"mediaforge/internal/pkg/errors"
	"mediaforge/internal/render"
)

// MetadataFlags selects which probes run against the output artifact. Each
// probe is independent; a failed probe omits its field without failing the
// job.
type MetadataFlags struct {
	Thumbnail bool `json:"thumbnail"`
	Filesize  bool `json:"filesize"`
	Duration  bool `json:"duration"`
	Bitrate   bool `json:"bitrate"`
	Encoder   bool `json:"encoder"`
}

// TitleRequest is the wire shape of the title-composition operation.
type TitleRequest struct {
	VideoURL          string        `json:"video_url"`
	Title             string        `json:"title"`
	FontName          string        `json:"font_name,omitempty"`
	FontSize          int           `json:"font_size,omitempty"`
	FontColor         string        `json:"font_color,omitempty"`
	BorderColor       string        `json:"border_color,omitempty"`
	BorderWidth       *int          `json:"border_width,omitempty"`
	PaddingTop        *int          `json:"padding_top,omitempty"`
	PaddingColor      string        `json:"padding_color,omitempty"`
	TextAlign         string        `json:"text_align,omitempty"`
	MaxLines          int           `json:"max_lines,omitempty"`
	PaddingMultiplier *float64      `json:"padding_multiplier,omitempty"`
	ID                string        `json:"id,omitempty"`
	Async             bool          `json:"async,omitempty"`
	Metadata          MetadataFlags `json:"metadata,omitempty"`

	// Placement is set by the route, not the caller: add-title pads the
	// top of the frame, caption pads the bottom.
	Placement render.Placement `json:"-"`

	alignment   layout.Alignment
	multiplier  float64
	borderWidth int
	paddingTop  int
}

// Defaults mirrored from the original service parameters.
const (
	defaultFontSize     = 50
	defaultFontColor    = "black"
	defaultBorderColor  = "#ffc8dd"
	defaultBorderWidth  = 2
	defaultPadding      = 200
	defaultPaddingColor = "white"
	defaultMaxLines     = 3
	defaultMultiplier   = 0.5
	shadowColor         = "black"
)

// normalize applies defaults to unset optional fields.
func (r *TitleRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.VideoURL = strings.TrimSpace(r.VideoURL)

	if r.FontSize == 0 {
		r.FontSize = defaultFontSize
	}
	if r.FontColor == "" {
		r.FontColor = defaultFontColor
	}
	if r.BorderColor == "" {
		r.BorderColor = defaultBorderColor
	}
	// Pointer fields distinguish an explicit zero from an absent value;
	// border_width: 0 and padding_top: 0 are honored as written.
	if r.BorderWidth == nil {
		w := defaultBorderWidth
		r.BorderWidth = &w
	}
	r.borderWidth = *r.BorderWidth
	if r.PaddingTop == nil {
		p := defaultPadding
		r.PaddingTop = &p
	}
	r.paddingTop = *r.PaddingTop
	if r.PaddingColor == "" {
		r.PaddingColor = defaultPaddingColor
	}
	if r.MaxLines == 0 {
		r.MaxLines = defaultMaxLines
	}
	if r.PaddingMultiplier == nil {
		m := defaultMultiplier
		r.PaddingMultiplier = &m
	}
	r.multiplier = *r.PaddingMultiplier
	if r.Placement == "" {
		r.Placement = render.PlacementTop
	}
}

// validate rejects malformed requests before any job enters processing.
func (r *TitleRequest) validate() error {
	if r.VideoURL == "" {
		return errors.ValidationField("video_url", "missing required parameter: video_url")
	}
	if r.Title == "" {
		return errors.ValidationField("title", "missing required parameter: title")
	}
	if r.FontSize <= 0 {
		return errors.ValidationField("font_size", "font_size must be a positive integer")
	}
	if r.borderWidth < 0 {
		return errors.ValidationField("border_width", "border_width must not be negative")
	}
	if r.paddingTop < 0 {
		return errors.ValidationField("padding_top", "padding_top must not be negative")
	}
	if r.MaxLines < 1 {
		return errors.ValidationField("max_lines", "max_lines must be at least 1")
	}
	if r.multiplier < 0 {
		return errors.ValidationField("padding_multiplier", "padding_multiplier must not be negative")
	}

	align, ok := layout.ParseAlignment(r.TextAlign)
	if !ok {
		return errors.ValidationField("text_align", "text_align must be one of left, center, right")
	}
	r.alignment = align
	return nil
}
