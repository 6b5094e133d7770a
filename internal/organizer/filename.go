package organizer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// EpisodeFileName builds the library filename:
// "<Series> - S03E07 - Arc Begins.mkv".
func EpisodeFileName(series string, season, episode int, title string) string {
	return fmt.Sprintf("%s - S%02dE%02d - %s.mkv", series, season, episode, sanitizeTitle(title))
}

// SeasonDirName returns the season directory name for a season number.
func SeasonDirName(season int) string {
	return fmt.Sprintf("Season %d", season)
}

// sanitizeTitle makes a catalog title safe for a filename. Titles arrive in
// mixed Unicode forms from the catalog, so they are NFC-normalized before
// the path-hostile characters are replaced.
func sanitizeTitle(title string) string {
	title = norm.NFC.String(strings.TrimSpace(title))
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "'",
		"<", "",
		">", "",
		"|", "",
	)
	return strings.TrimSpace(replacer.Replace(title))
}
