package disc

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// MakeMKV robot-mode attribute ids used by the info parser.
const (
	attrTitleName      = 2
	attrDuration       = 9
	attrSizeHuman      = 10
	attrSizeBytes      = 11
	attrSegmentsMap    = 26
	attrOutputFileName = 27

	cinfoDiscName   = 2
	cinfoVolumeName = 32
)

func parseInfoOutput(data []byte) (*ScanResult, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.New("makemkv produced empty output")
	}

	result := &ScanResult{}
	entries := make(map[int]*Title)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "CINFO:"):
			parseCInfo(result, strings.TrimPrefix(trimmed, "CINFO:"))
		case strings.HasPrefix(trimmed, "DRV:"):
			parseDrive(result, strings.TrimPrefix(trimmed, "DRV:"))
		case strings.HasPrefix(trimmed, "TINFO:"):
			parseTInfo(entries, strings.TrimPrefix(trimmed, "TINFO:"))
		}
	}

	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	result.Titles = make([]Title, 0, len(ids))
	for _, id := range ids {
		result.Titles = append(result.Titles, *entries[id])
	}
	return result, nil
}

func parseCInfo(result *ScanResult, payload string) {
	parts := strings.SplitN(payload, ",", 3)
	if len(parts) < 3 {
		return
	}
	attr, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return
	}
	value := unquote(parts[2])
	switch attr {
	case cinfoDiscName:
		if value != "" {
			result.DiscName = value
		}
	case cinfoVolumeName:
		if result.DiscName == "" {
			result.DiscName = value
		}
	}
}

// DRV lines look like:
//
//	DRV:0,2,999,12,"BD-RE ASUS","ONE_PIECE_S1D1","/dev/sr0"
func parseDrive(result *ScanResult, payload string) {
	fields := splitQuoted(payload)
	if len(fields) < 7 {
		return
	}
	visible, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || visible <= 0 {
		return
	}
	if result.Device == "" {
		result.Device = unquote(fields[6])
	}
	if result.DiscName == "" {
		result.DiscName = unquote(fields[5])
	}
}

func parseTInfo(entries map[int]*Title, payload string) {
	parts := strings.SplitN(payload, ",", 4)
	if len(parts) < 4 {
		return
	}
	titleID, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return
	}
	attrID, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return
	}
	value := unquote(parts[3])

	entry, ok := entries[titleID]
	if !ok {
		entry = &Title{ID: titleID}
		entries[titleID] = entry
	}
	switch attrID {
	case attrTitleName:
		entry.Name = value
	case attrDuration:
		entry.DurationSeconds = parseClock(value)
	case attrSizeHuman:
		entry.SizeHuman = value
	case attrSizeBytes:
		if size, err := strconv.ParseInt(value, 10, 64); err == nil {
			entry.SizeBytes = size
		}
	case attrSegmentsMap:
		entry.SegmentMap = value
	case attrOutputFileName:
		entry.OutputFileName = value
	}
}

func parseClock(value string) int {
	segments := strings.Split(strings.TrimSpace(value), ":")
	if len(segments) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(segments[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(segments[1])
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(segments[2])
	if err != nil {
		return 0
	}
	return hours*3600 + minutes*60 + seconds
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), "\"")
}

// splitQuoted splits a comma-separated payload without breaking inside
// double-quoted fields.
func splitQuoted(payload string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range payload {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}
