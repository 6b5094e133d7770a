package split

import (
	"reflect"
	"testing"

	"seriesrip/internal/media/ffprobe"
)

func chaptersFromSeconds(durations ...int) []ffprobe.Chapter {
	chapters := make([]ffprobe.Chapter, 0, len(durations))
	var cursor int64
	for _, d := range durations {
		end := cursor + int64(d)*1_000_000_000
		chapters = append(chapters, ffprobe.Chapter{Start: cursor, End: end})
		cursor = end
	}
	return chapters
}

func TestFindCreditMarkersBasic(t *testing.T) {
	chapters := chaptersFromSeconds(120, 30, 15, 600)
	markers := FindCreditMarkers(chapters, DefaultCreditsPolicy(), nil)
	if !reflect.DeepEqual(markers, []int{3}) {
		t.Fatalf("markers = %v, want [3]", markers)
	}
}

func TestFindCreditMarkersStrictOpenInterval(t *testing.T) {
	// Exactly 28 and exactly 32 must never classify as credits.
	chapters := chaptersFromSeconds(28, 32, 29, 31)
	markers := FindCreditMarkers(chapters, DefaultCreditsPolicy(), nil)
	if !reflect.DeepEqual(markers, []int{4, 5}) {
		t.Fatalf("markers = %v, want [4 5]", markers)
	}
}

func TestFindCreditMarkersMultipleEpisodes(t *testing.T) {
	// Four episodes: content, credits, preview, repeated.
	chapters := chaptersFromSeconds(1300, 30, 15, 1290, 30, 15, 1310, 30, 15)
	markers := FindCreditMarkers(chapters, DefaultCreditsPolicy(), nil)
	if !reflect.DeepEqual(markers, []int{3, 6, 9}) {
		t.Fatalf("markers = %v, want [3 6 9]", markers)
	}
}

func TestFindCreditMarkersRespectsOffset(t *testing.T) {
	chapters := chaptersFromSeconds(1300, 30, 1290)
	policy := CreditsPolicy{MinSeconds: 28, MaxSeconds: 32, MarkerOffset: 1}
	markers := FindCreditMarkers(chapters, policy, nil)
	if !reflect.DeepEqual(markers, []int{2}) {
		t.Fatalf("markers = %v, want [2]", markers)
	}
}

func TestFindCreditMarkersNoneFound(t *testing.T) {
	chapters := chaptersFromSeconds(1300, 90, 1290)
	if markers := FindCreditMarkers(chapters, DefaultCreditsPolicy(), nil); markers != nil {
		t.Fatalf("markers = %v, want none", markers)
	}
}
