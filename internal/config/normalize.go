package config

import (
	"os"
	"strings"
)

// Environment variables consulted when the config file leaves the TVDB
// credentials empty. They are read once during normalize so the values are
// scoped to the run, not to process-wide globals.
const (
	EnvTVDBAPIKey = "SERIESRIP_TVDB_API_KEY"
	EnvTVDBPIN    = "SERIESRIP_TVDB_PIN"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(strings.TrimSpace(c.Paths.StagingDir)); err != nil {
		return err
	}
	if c.Paths.LibraryDir, err = expandPath(strings.TrimSpace(c.Paths.LibraryDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}
	if c.Catalog.CachePath, err = expandPath(strings.TrimSpace(c.Catalog.CachePath)); err != nil {
		return err
	}

	c.TVDB.APIKey = strings.TrimSpace(c.TVDB.APIKey)
	c.TVDB.PIN = strings.TrimSpace(c.TVDB.PIN)
	if c.TVDB.APIKey == "" {
		c.TVDB.APIKey = strings.TrimSpace(os.Getenv(EnvTVDBAPIKey))
	}
	if c.TVDB.PIN == "" {
		c.TVDB.PIN = strings.TrimSpace(os.Getenv(EnvTVDBPIN))
	}
	c.TVDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TVDB.BaseURL), "/")
	c.TVDB.Language = strings.TrimSpace(c.TVDB.Language)
	c.TVDB.SeriesName = strings.TrimSpace(c.TVDB.SeriesName)

	c.MakeMKV.OpticalDrive = strings.TrimSpace(c.MakeMKV.OpticalDrive)

	if len(c.Split.Tracks) == 0 {
		c.Split.Tracks = Default().Split.Tracks
	}
	c.Split.TrackOrder = strings.TrimSpace(c.Split.TrackOrder)
	if c.Split.TrackOrder == "" {
		c.Split.TrackOrder = defaultTrackOrder
	}
	for i := range c.Split.Tracks {
		c.Split.Tracks[i].Language = strings.TrimSpace(c.Split.Tracks[i].Language)
		c.Split.Tracks[i].Name = strings.TrimSpace(c.Split.Tracks[i].Name)
	}

	if c.Catalog.CacheTTLHours <= 0 {
		c.Catalog.CacheTTLHours = defaultCacheTTLHours
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
