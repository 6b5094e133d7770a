package disc

import "errors"

// ErrNoTitles is returned when a disc scan yields nothing to rip.
var ErrNoTitles = errors.New("disc has no titles")

// LargestTitle returns the index of the title with the greatest byte size.
// Ties keep the earliest title: the comparison is strict, so the first
// occurrence wins. The largest title is the one that carries the episode run.
func LargestTitle(titles []Title) (int, error) {
	if len(titles) == 0 {
		return 0, ErrNoTitles
	}
	largest := 0
	for i := 1; i < len(titles); i++ {
		if titles[i].SizeBytes > titles[largest].SizeBytes {
			largest = i
		}
	}
	return largest, nil
}
