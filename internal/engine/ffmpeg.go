// Package engine drives the external FFmpeg binaries. It translates a
// declarative render plan into a filter graph, runs the encode with context
// cancellation, and probes output artifacts for metadata.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"mediaforge/internal/pkg/errors"
	"mediaforge/internal/pkg/logger"
	"mediaforge/internal/render"
)

// stderrTail bounds how much FFmpeg diagnostic text is carried on errors.
const stderrTail = 2000

type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	fontDir     string
	log         *logger.Logger
}

func New(ffmpegPath, ffprobePath, fontDir string, log *logger.Logger) *FFmpeg {
	if log == nil {
		log = logger.NewDefault()
	}
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		fontDir:     fontDir,
		log:         log.WithComponent("engine"),
	}
}

// FontFile resolves a font name to a path under the configured font
// directory. Names already carrying an extension are kept as given.
func (f *FFmpeg) FontFile(name string) string {
	if strings.Contains(name, ".") {
		return filepath.Join(f.fontDir, name)
	}
	return filepath.Join(f.fontDir, name+".ttf")
}

// Compose executes a render plan against its source video and writes the
// encoded result to outputPath. The invocation is killed when ctx is
// canceled; failures carry the tail of FFmpeg's stderr.
func (f *FFmpeg) Compose(ctx context.Context, plan render.Plan, outputPath string) error {
	width, height, err := f.Dimensions(ctx, plan.SourcePath)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeEngine, "engine.compose", "probe source dimensions")
	}

	filter := buildFilter(plan, width, height)
	f.log.FromContext(ctx).Debug("composed filter graph", "filter", filter)

	args := []string{
		"-i", plan.SourcePath,
		"-vf", filter,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.WrapWithCode(ctx.Err(), errors.CodeTimeout, "engine.compose", "encode canceled")
		}
		detail := tail(stderr.String(), stderrTail)
		return errors.WrapWithCode(err, errors.CodeEngine, "engine.compose",
			fmt.Sprintf("ffmpeg failed: %s", detail))
	}
	return nil
}

// buildFilter renders the plan as an FFmpeg -vf chain: a scale+pad pass that
// attaches the solid band, then one drawtext per op in z-order.
func buildFilter(plan render.Plan, width, height int) string {
	var b strings.Builder

	padY := plan.BandHeight
	if plan.Placement == render.PlacementBottom {
		padY = 0
	}
	fmt.Fprintf(&b, "scale=%d:%d,pad=%d:%d:0:%d:color=%s",
		width, height, width, height+plan.BandHeight, padY, plan.BandColor)

	for _, op := range plan.Ops {
		bandTop := 0
		if plan.Placement == render.PlacementBottom {
			bandTop = height
		}
		y := bandTop + op.OffsetY

		var x string
		switch op.Alignment {
		case "left":
			x = fmt.Sprintf("%d", op.EdgeMargin+op.OffsetX)
		case "right":
			x = fmt.Sprintf("w-text_w-%d+%d", op.EdgeMargin, op.OffsetX)
		default:
			x = fmt.Sprintf("(w-text_w)/2+%d", op.OffsetX)
		}

		fmt.Fprintf(&b, ",drawtext=text='%s':fontfile=%s:fontsize=%d:fontcolor=%s:x=%s:y=%d",
			escapeDrawText(op.Text), op.FontFile, op.FontSize, op.Color, x, y)
		if op.BorderWidth > 0 {
			fmt.Fprintf(&b, ":bordercolor=%s:borderw=%d", op.BorderColor, op.BorderWidth)
		}
	}

	return b.String()
}

// escapeDrawText escapes the characters drawtext treats specially inside a
// single-quoted text value.
func escapeDrawText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `'\\\''`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(s)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
