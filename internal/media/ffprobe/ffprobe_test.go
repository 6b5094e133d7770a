package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "mpeg2video", "codec_type": "video", "width": 720, "height": 480, "display_aspect_ratio": "16:9"},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio"}
  ],
  "chapters": [
    {"id": 1, "time_base": "1/1000000000", "start": 0, "end": 120000000000, "tags": {"title": "Chapter 01"}},
    {"id": 2, "time_base": "1/1000000000", "start": 120000000000, "end": 150000000000, "tags": {"title": "Chapter 02"}}
  ],
  "format": {"filename": "title_t00.mkv", "nb_streams": 2, "duration": "150.000000", "format_name": "matroska,webm"}
}`

func TestDecodeProbeOutput(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleProbeJSON), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(result.Streams) != 2 || len(result.Chapters) != 2 {
		t.Fatalf("streams=%d chapters=%d", len(result.Streams), len(result.Chapters))
	}
	if result.Chapters[0].Tags.Title != "Chapter 01" {
		t.Fatalf("chapter title = %q", result.Chapters[0].Tags.Title)
	}
	if got := result.Chapters[0].DurationSeconds(); got != 120 {
		t.Fatalf("duration = %d", got)
	}
	if got := result.Chapters[1].DurationSeconds(); got != 30 {
		t.Fatalf("duration = %d", got)
	}
}

func TestDisplayDimensions(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleProbeJSON), &result); err != nil {
		t.Fatal(err)
	}
	if got := result.DisplayDimensions(); got != "16x9" {
		t.Fatalf("display dimensions = %q, want 16x9", got)
	}
}

func TestDisplayDimensionsMissing(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if got := result.DisplayDimensions(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestChapterDurationTruncates(t *testing.T) {
	ch := Chapter{Start: 0, End: 31_999_999_999}
	if got := ch.DurationSeconds(); got != 31 {
		t.Fatalf("duration = %d, want 31 (floor)", got)
	}
	inverted := Chapter{Start: 10, End: 5}
	if got := inverted.DurationSeconds(); got != 0 {
		t.Fatalf("inverted chapter duration = %d, want 0", got)
	}
}
