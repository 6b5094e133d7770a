package organizer

import (
	"fmt"

	"seriesrip/internal/services"
	"seriesrip/internal/services/tvdb"
)

// ResolveEpisodes translates an absolute episode range into the default-view
// records carrying season/episode numbers. The slice window over the
// absolute listing is [start-1, start-1+count); each selected record is
// matched into the default listing by id. The mapping is expected to be
// one-to-one, so a missing id is fatal.
func ResolveEpisodes(absolute, defaults []tvdb.Episode, start, count int) ([]tvdb.Episode, error) {
	if start < 1 {
		return nil, services.Wrap(services.ErrValidation, "organizing", "resolve episodes",
			fmt.Sprintf("starting episode number %d must be at least 1", start), nil)
	}
	lo := start - 1
	hi := lo + count
	if hi > len(absolute) {
		return nil, services.Wrap(services.ErrLookup, "organizing", "slice absolute listing",
			fmt.Sprintf("need absolute episodes %d-%d but catalog holds %d", start, start+count-1, len(absolute)), nil)
	}

	byID := make(map[int64]tvdb.Episode, len(defaults))
	for _, episode := range defaults {
		if _, ok := byID[episode.ID]; !ok {
			byID[episode.ID] = episode
		}
	}

	resolved := make([]tvdb.Episode, 0, count)
	for _, record := range absolute[lo:hi] {
		match, ok := byID[record.ID]
		if !ok {
			return nil, services.Wrap(services.ErrLookup, "organizing", "match catalog id",
				fmt.Sprintf("no default-order record for id %d (absolute %d)", record.ID, record.AbsoluteNumber), nil)
		}
		resolved = append(resolved, match)
	}
	return resolved, nil
}
