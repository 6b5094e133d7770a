package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Chapters []Chapter `json:"chapters"`
	Format   Format    `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index              int    `json:"index"`
	CodecName          string `json:"codec_name"`
	CodecType          string `json:"codec_type"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
}

// Chapter carries container chapter timing in time-base units. Matroska uses
// a nanosecond time base, so Start and End are nanoseconds.
type Chapter struct {
	ID       int64       `json:"id"`
	TimeBase string      `json:"time_base"`
	Start    int64       `json:"start"`
	End      int64       `json:"end"`
	Tags     ChapterTags `json:"tags"`
}

// ChapterTags carries the optional chapter title tag.
type ChapterTags struct {
	Title string `json:"title"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response, chapters included.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-show_chapters", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the chapter duration in whole seconds, truncated.
func (c Chapter) DurationSeconds() int {
	if c.End <= c.Start {
		return 0
	}
	return int((c.End - c.Start) / 1_000_000_000)
}

// DisplayDimensions returns the first video stream's display aspect ratio in
// mkvmerge's WxH form ("16:9" becomes "16x9"), or empty when unavailable.
func (r Result) DisplayDimensions() string {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		ratio := strings.TrimSpace(stream.DisplayAspectRatio)
		if ratio == "" {
			continue
		}
		return strings.ReplaceAll(ratio, ":", "x")
	}
	return ""
}
