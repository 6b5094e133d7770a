package config

const (
	defaultStagingDir        = "~/.local/share/seriesrip/staging"
	defaultLibraryDir        = "~/library"
	defaultLogDir            = "~/.local/share/seriesrip/logs"
	defaultCachePath         = "~/.cache/seriesrip/catalog.db"
	defaultCacheTTLHours     = 72
	defaultOpticalDrive      = "/dev/sr0"
	defaultRipTimeout        = 7200
	defaultInfoTimeout       = 300
	defaultTVDBBaseURL       = "https://api4.thetvdb.com/v4"
	defaultTVDBLanguage      = "eng"
	defaultSeriesID          = 81797
	defaultSeriesName        = "One Piece"
	defaultTrackOrder        = "0:0,0:1,0:2,0:3,0:4"
	defaultCreditsMinSeconds = 28
	defaultCreditsMaxSeconds = 32
	defaultMarkerOffset      = 2
	defaultLogFormat         = "auto"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults. The track
// layout matches the DVD sets this tool was written for: one video track,
// English surround, Japanese stereo, and two English subtitle tracks.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		TVDB: TVDB{
			BaseURL:    defaultTVDBBaseURL,
			Language:   defaultTVDBLanguage,
			SeriesID:   defaultSeriesID,
			SeriesName: defaultSeriesName,
		},
		MakeMKV: MakeMKV{
			OpticalDrive: defaultOpticalDrive,
			RipTimeout:   defaultRipTimeout,
			InfoTimeout:  defaultInfoTimeout,
		},
		Split: Split{
			Tracks: []SplitTrack{
				{ID: 0, Language: "en"},
				{ID: 1, Language: "en", Name: "Surround 5.1"},
				{ID: 2, Language: "ja", Name: "Stereo"},
				{ID: 3, Language: "en"},
				{ID: 4, Language: "en"},
			},
			TrackOrder: defaultTrackOrder,
		},
		Heuristic: Heuristic{
			CreditsMinSeconds: defaultCreditsMinSeconds,
			CreditsMaxSeconds: defaultCreditsMaxSeconds,
			MarkerOffset:      defaultMarkerOffset,
		},
		Catalog: Catalog{
			CachePath:     defaultCachePath,
			CacheTTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
