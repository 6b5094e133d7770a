package split

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"seriesrip/internal/config"
)

func testTracks() []config.SplitTrack {
	return []config.SplitTrack{
		{ID: 0, Language: "en"},
		{ID: 1, Language: "en", Name: "Surround 5.1"},
		{ID: 2, Language: "ja", Name: "Stereo"},
		{ID: 3, Language: "en"},
		{ID: 4, Language: "en"},
	}
}

func TestSpecOptionsOrder(t *testing.T) {
	spec := Spec{
		OutputTemplate:    "/staging/DISC/episode.mkv",
		InputPath:         "/staging/DISC/title_t00.mkv",
		DisplayDimensions: "16x9",
		Tracks:            testTracks(),
		TrackOrder:        "0:0,0:1,0:2,0:3,0:4",
		ChapterMarkers:    []int{5, 9, 13},
	}
	want := []string{
		"--ui-language", "en_US",
		"--output", "/staging/DISC/episode.mkv",
		"--language", "0:en",
		"--display-dimensions", "0:16x9",
		"--language", "1:en",
		"--track-name", "1:Surround 5.1",
		"--language", "2:ja",
		"--track-name", "2:Stereo",
		"--language", "3:en",
		"--language", "4:en",
		"(", "/staging/DISC/title_t00.mkv", ")",
		"--split", "chapters:5,9,13",
		"--track-order", "0:0,0:1,0:2,0:3,0:4",
	}
	if got := spec.Options(); !reflect.DeepEqual(got, want) {
		t.Fatalf("options mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestSpecChapterList(t *testing.T) {
	spec := Spec{ChapterMarkers: []int{45, 90}}
	if got := spec.ChapterList(); got != "45,90" {
		t.Fatalf("chapter list = %q", got)
	}
}

func TestSpecValidate(t *testing.T) {
	spec := Spec{
		OutputTemplate: "out.mkv",
		InputPath:      "in.mkv",
		TrackOrder:     "0:0",
		ChapterMarkers: []int{5},
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	spec.ChapterMarkers = nil
	if err := spec.Validate(); err == nil {
		t.Fatal("expected error without markers")
	}
}

func TestWriteOptionsFileIsJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkvmerge.json")
	spec := Spec{
		OutputTemplate: "episode.mkv",
		InputPath:      "title_t00.mkv",
		Tracks:         testTracks(),
		TrackOrder:     "0:0,0:1,0:2,0:3,0:4",
		ChapterMarkers: []int{5, 9},
	}
	if err := spec.WriteOptionsFile(path); err != nil {
		t.Fatalf("WriteOptionsFile: %v", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var args []string
	if err := json.Unmarshal(payload, &args); err != nil {
		t.Fatalf("options file is not a JSON string array: %v", err)
	}
	if !reflect.DeepEqual(args, spec.Options()) {
		t.Fatalf("round trip mismatch: %v", args)
	}
}

func TestEpisodeFileName(t *testing.T) {
	if got := EpisodeFileName(1); got != "episode-001.mkv" {
		t.Fatalf("got %q", got)
	}
	if got := EpisodeFileName(12); got != "episode-012.mkv" {
		t.Fatalf("got %q", got)
	}
}
