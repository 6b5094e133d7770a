package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"seriesrip/internal/config"
	"seriesrip/internal/logging"
	"seriesrip/internal/services"
)

const (
	episodeTemplate = "episode.mkv"
	optionsFileName = "mkvmerge.json"
)

// EpisodeFileName returns mkvmerge's deterministic output name for the
// 1-based episode position.
func EpisodeFileName(position int) string {
	return fmt.Sprintf("episode-%03d.mkv", position)
}

// Executor abstracts mkvmerge invocation for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Option configures the splitter.
type Option func(*Splitter)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(s *Splitter) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// Splitter materializes per-episode files by driving mkvmerge with a
// serialized Spec.
type Splitter struct {
	binary     string
	tracks     []config.SplitTrack
	trackOrder string
	logger     *slog.Logger
	exec       Executor
}

// NewSplitter constructs a splitter using the configured track annotations.
func NewSplitter(cfg *config.Config, logger *slog.Logger, opts ...Option) *Splitter {
	s := &Splitter{
		binary:     cfg.MkvmergeBinary(),
		tracks:     cfg.Split.Tracks,
		trackOrder: cfg.Split.TrackOrder,
		logger:     logging.NewComponentLogger(logger, "splitter"),
		exec:       commandExecutor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split divides the source container at the given chapter markers and
// returns the ordered per-episode filenames, numbered from 1. After a
// successful run it removes the trailing segment past the last marker (the
// end-of-disc filler), the source container, and the options file. A
// non-zero mkvmerge exit is fatal: split jobs are not safe to blindly rerun
// over partial output.
func (s *Splitter) Split(ctx context.Context, sourcePath string, markers []int, displayDimensions string) ([]string, error) {
	if len(markers) == 0 {
		return nil, services.Wrap(services.ErrValidation, "splitting", "build spec", "no chapter markers; nothing to split", nil)
	}
	dir := filepath.Dir(sourcePath)

	spec := Spec{
		OutputTemplate:    filepath.Join(dir, episodeTemplate),
		InputPath:         sourcePath,
		DisplayDimensions: displayDimensions,
		Tracks:            s.tracks,
		TrackOrder:        s.trackOrder,
		ChapterMarkers:    markers,
	}
	optionsPath := filepath.Join(dir, optionsFileName)
	if err := spec.WriteOptionsFile(optionsPath); err != nil {
		return nil, services.Wrap(services.ErrSplit, "splitting", "write options", "failed to serialize split spec", err)
	}

	s.logger.Info("splitting container into episodes",
		logging.String("source", sourcePath),
		logging.String("chapters", spec.ChapterList()),
		logging.Int("episodes", len(markers)),
	)
	output, err := s.exec.Run(ctx, s.binary, []string{"@" + optionsPath})
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return nil, services.Wrap(services.ErrSplit, "splitting", "run mkvmerge", "multiplexer exited non-zero", err)
	}

	// The segment past the last marker is non-episode filler.
	trailing := filepath.Join(dir, EpisodeFileName(len(markers)+1))
	if err := os.Remove(trailing); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("no trailing clip to remove")
		} else {
			return nil, services.Wrap(services.ErrSplit, "splitting", "remove trailing clip", trailing, err)
		}
	}

	if err := os.Remove(sourcePath); err != nil {
		return nil, services.Wrap(services.ErrSplit, "splitting", "remove source container", sourcePath, err)
	}
	if err := os.Remove(optionsPath); err != nil {
		return nil, services.Wrap(services.ErrSplit, "splitting", "remove options file", optionsPath, err)
	}

	files := make([]string, 0, len(markers))
	for i := 1; i <= len(markers); i++ {
		files = append(files, EpisodeFileName(i))
	}
	return files, nil
}
