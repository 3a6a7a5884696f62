package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"mediaforge/internal/pkg/errors"
)

// probeResult mirrors the ffprobe -of json shape for the fields we read.
type probeResult struct {
	Streams []struct {
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
		Size     string `json:"size"`
	} `json:"format"`
}

// Dimensions returns the pixel size of the first video stream.
func (f *FFmpeg) Dimensions(ctx context.Context, path string) (int, int, error) {
	res, err := f.probe(ctx, path, "stream=width,height")
	if err != nil {
		return 0, 0, err
	}
	if len(res.Streams) == 0 || res.Streams[0].Width == 0 {
		return 0, 0, errors.Engine("no video stream found")
	}
	return res.Streams[0].Width, res.Streams[0].Height, nil
}

// Duration returns the container duration in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	res, err := f.probe(ctx, path, "format=duration")
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(res.Format.Duration), 64)
	if err != nil {
		return 0, errors.Engine("unparsable duration")
	}
	return d, nil
}

// Bitrate returns the overall bitrate in bits per second.
func (f *FFmpeg) Bitrate(ctx context.Context, path string) (int64, error) {
	res, err := f.probe(ctx, path, "format=bit_rate")
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseInt(strings.TrimSpace(res.Format.BitRate), 10, 64)
	if err != nil {
		return 0, errors.Engine("unparsable bitrate")
	}
	return b, nil
}

// Encoder returns the codec name of the first video stream.
func (f *FFmpeg) Encoder(ctx context.Context, path string) (string, error) {
	res, err := f.probe(ctx, path, "stream=codec_name")
	if err != nil {
		return "", err
	}
	if len(res.Streams) == 0 || res.Streams[0].CodecName == "" {
		return "", errors.Engine("no video stream found")
	}
	return res.Streams[0].CodecName, nil
}

// Thumbnail extracts a single frame one second in and writes it to outPath.
func (f *FFmpeg) Thumbnail(ctx context.Context, videoPath, outPath string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-ss", "1",
		"-i", videoPath,
		"-vframes", "1",
		"-q:v", "2",
		"-y",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.WrapWithCode(err, errors.CodeEngine, "engine.thumbnail",
			fmt.Sprintf("thumbnail extraction failed: %s", tail(string(out), stderrTail)))
	}
	return nil
}

func (f *FFmpeg) probe(ctx context.Context, path, entries string) (*probeResult, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", entries,
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeEngine, "engine.probe", "ffprobe failed")
	}

	var res probeResult
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeEngine, "engine.probe", "unparsable ffprobe output")
	}
	return &res, nil
}
