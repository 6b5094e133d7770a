package disc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSegmentMap extracts split-point chapter markers from a MakeMKV
// segment-map string such as "1,45-50,90". Each entry contributes the
// integer before any dash, in input order. The first occurrence of the
// value 1 is dropped: chapter 1 starts the first episode and must never be
// treated as a split boundary.
func ParseSegmentMap(segmentMap string) ([]int, error) {
	segmentMap = strings.TrimSpace(segmentMap)
	if segmentMap == "" {
		return nil, nil
	}

	markers := make([]int, 0, 8)
	for _, entry := range strings.Split(segmentMap, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "-"); idx >= 0 {
			entry = strings.TrimSpace(entry[:idx])
		}
		value, err := strconv.Atoi(entry)
		if err != nil {
			return nil, fmt.Errorf("segment map entry %q: %w", entry, err)
		}
		markers = append(markers, value)
	}

	for i, value := range markers {
		if value == 1 {
			markers = append(markers[:i], markers[i+1:]...)
			break
		}
	}
	return markers, nil
}

// ValidateMarkers enforces the marker invariants: strictly increasing and
// every value at least 2. Discs occasionally supply duplicate or
// out-of-order segment data; letting that through would silently desync the
// split output from the catalog slice, so it is rejected here.
func ValidateMarkers(markers []int) error {
	previous := 0
	for _, value := range markers {
		if value < 2 {
			return fmt.Errorf("chapter marker %d: split points must be at least chapter 2", value)
		}
		if value <= previous {
			return fmt.Errorf("chapter markers not strictly increasing at %d", value)
		}
		previous = value
	}
	return nil
}
