package split

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"seriesrip/internal/config"
)

// Spec is the declarative job description consumed by mkvmerge. It is built
// as a structured value and serialized to an @options.json file, so the
// track annotations and chapter list stay independently testable instead of
// living inside a string template.
type Spec struct {
	OutputTemplate    string
	InputPath         string
	DisplayDimensions string
	Tracks            []config.SplitTrack
	TrackOrder        string
	ChapterMarkers    []int
	UILanguage        string
}

// Validate checks the parts mkvmerge cannot run without.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.OutputTemplate) == "" {
		return errors.New("split spec: output template required")
	}
	if strings.TrimSpace(s.InputPath) == "" {
		return errors.New("split spec: input path required")
	}
	if len(s.ChapterMarkers) == 0 {
		return errors.New("split spec: no chapter markers")
	}
	if strings.TrimSpace(s.TrackOrder) == "" {
		return errors.New("split spec: track order required")
	}
	return nil
}

// ChapterList renders the markers as the comma-joined list mkvmerge expects.
func (s Spec) ChapterList() string {
	parts := make([]string, 0, len(s.ChapterMarkers))
	for _, marker := range s.ChapterMarkers {
		parts = append(parts, strconv.Itoa(marker))
	}
	return strings.Join(parts, ",")
}

// Options renders the full mkvmerge option list: global flags, per-track
// annotations, the parenthesized input group, the chapter split directive,
// and the explicit track order.
func (s Spec) Options() []string {
	uiLanguage := s.UILanguage
	if uiLanguage == "" {
		uiLanguage = "en_US"
	}

	args := []string{
		"--ui-language", uiLanguage,
		"--output", s.OutputTemplate,
	}
	for _, track := range s.Tracks {
		id := strconv.Itoa(track.ID)
		if track.Language != "" {
			args = append(args, "--language", id+":"+track.Language)
		}
		if track.ID == 0 && s.DisplayDimensions != "" {
			args = append(args, "--display-dimensions", id+":"+s.DisplayDimensions)
		}
		if track.Name != "" {
			args = append(args, "--track-name", id+":"+track.Name)
		}
	}
	args = append(args,
		"(", s.InputPath, ")",
		"--split", "chapters:"+s.ChapterList(),
		"--track-order", s.TrackOrder,
	)
	return args
}

// WriteOptionsFile serializes the option list as the JSON array form mkvmerge
// accepts via @file.
func (s Spec) WriteOptionsFile(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(s.Options(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode split options: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write split options: %w", err)
	}
	return nil
}
