package config

import (
	"fmt"
	"regexp"
	"strings"
)

var trackOrderPattern = regexp.MustCompile(`^\d+:\d+(,\d+:\d+)*$`)

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		problems = append(problems, "paths.staging_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		problems = append(problems, "paths.library_dir must be set")
	}
	if c.TVDB.SeriesID <= 0 {
		problems = append(problems, "tvdb.series_id must be a positive TheTVDB series id")
	}
	if strings.TrimSpace(c.TVDB.SeriesName) == "" {
		problems = append(problems, "tvdb.series_name must be set")
	}
	if strings.TrimSpace(c.TVDB.BaseURL) == "" {
		problems = append(problems, "tvdb.base_url must be set")
	}
	if c.MakeMKV.RipTimeout < 0 || c.MakeMKV.InfoTimeout < 0 {
		problems = append(problems, "makemkv timeouts must not be negative")
	}
	if c.Heuristic.CreditsMinSeconds >= c.Heuristic.CreditsMaxSeconds {
		problems = append(problems, "heuristic.credits_min_seconds must be below credits_max_seconds")
	}
	if c.Heuristic.MarkerOffset < 1 {
		problems = append(problems, "heuristic.marker_offset must be at least 1")
	}
	if !trackOrderPattern.MatchString(c.Split.TrackOrder) {
		problems = append(problems, fmt.Sprintf("split.track_order %q is not a valid mkvmerge track order", c.Split.TrackOrder))
	}
	for _, track := range c.Split.Tracks {
		if track.ID < 0 {
			problems = append(problems, fmt.Sprintf("split track id %d must not be negative", track.ID))
		}
	}
	if format := c.Logging.Format; format != "" && format != "auto" && format != "console" && format != "json" {
		problems = append(problems, fmt.Sprintf("logging.format %q must be auto, console, or json", format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
