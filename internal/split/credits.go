package split

import (
	"log/slog"

	"seriesrip/internal/logging"
	"seriesrip/internal/media/ffprobe"
)

// CreditsPolicy tunes the fallback boundary detection used when the disc
// supplies no segment map. A chapter whose duration lies strictly between
// MinSeconds and MaxSeconds is treated as end credits, and the split marker
// lands MarkerOffset chapters later, past the credits and the preview bumper
// that follows them on these discs.
type CreditsPolicy struct {
	MinSeconds   int
	MaxSeconds   int
	MarkerOffset int
}

// DefaultCreditsPolicy returns the thresholds tuned for this content class:
// end-credit chapters run ~30 seconds.
func DefaultCreditsPolicy() CreditsPolicy {
	return CreditsPolicy{MinSeconds: 28, MaxSeconds: 32, MarkerOffset: 2}
}

// FindCreditMarkers scans chapters in order and emits a split marker after
// every chapter classified as end credits. The interval is strictly open:
// durations equal to MinSeconds or MaxSeconds never match. Markers come out
// in scan order, which is already increasing.
func FindCreditMarkers(chapters []ffprobe.Chapter, policy CreditsPolicy, logger *slog.Logger) []int {
	logger = logging.NewComponentLogger(logger, "credits-heuristic")

	var markers []int
	for i, chapter := range chapters {
		duration := chapter.DurationSeconds()
		if duration <= policy.MinSeconds || duration >= policy.MaxSeconds {
			continue
		}
		marker := i + policy.MarkerOffset
		logger.Info("found end credits",
			logging.String("chapter_title", chapter.Tags.Title),
			logging.Int("chapter_index", i),
			logging.Int("duration_seconds", duration),
			logging.Int("marker", marker),
		)
		markers = append(markers, marker)
	}
	logger.Info("credits scan complete", logging.Int("episodes", len(markers)))
	return markers
}
