package disc

import (
	"reflect"
	"testing"
)

func TestParseSegmentMapDropsLeadingOne(t *testing.T) {
	markers, err := ParseSegmentMap("1,45-50,90")
	if err != nil {
		t.Fatalf("ParseSegmentMap: %v", err)
	}
	if !reflect.DeepEqual(markers, []int{45, 90}) {
		t.Fatalf("markers = %v, want [45 90]", markers)
	}
}

func TestParseSegmentMapRangesUseStart(t *testing.T) {
	markers, err := ParseSegmentMap("1-4,5-8,9-12")
	if err != nil {
		t.Fatalf("ParseSegmentMap: %v", err)
	}
	if !reflect.DeepEqual(markers, []int{5, 9}) {
		t.Fatalf("markers = %v, want [5 9]", markers)
	}
}

func TestParseSegmentMapWithoutOne(t *testing.T) {
	markers, err := ParseSegmentMap("5,9,13")
	if err != nil {
		t.Fatalf("ParseSegmentMap: %v", err)
	}
	if !reflect.DeepEqual(markers, []int{5, 9, 13}) {
		t.Fatalf("markers = %v", markers)
	}
}

func TestParseSegmentMapOnlyRemovesFirstOne(t *testing.T) {
	// A second literal 1 is disc garbage; extraction preserves it and
	// validation rejects it downstream.
	markers, err := ParseSegmentMap("1,5,1,9")
	if err != nil {
		t.Fatalf("ParseSegmentMap: %v", err)
	}
	if !reflect.DeepEqual(markers, []int{5, 1, 9}) {
		t.Fatalf("markers = %v, want [5 1 9]", markers)
	}
	if err := ValidateMarkers(markers); err == nil {
		t.Fatal("validation should reject the stray 1")
	}
}

func TestParseSegmentMapEmpty(t *testing.T) {
	markers, err := ParseSegmentMap("")
	if err != nil {
		t.Fatalf("ParseSegmentMap: %v", err)
	}
	if len(markers) != 0 {
		t.Fatalf("markers = %v, want empty", markers)
	}
}

func TestParseSegmentMapRejectsGarbage(t *testing.T) {
	if _, err := ParseSegmentMap("1,abc,9"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateMarkers(t *testing.T) {
	cases := []struct {
		name    string
		markers []int
		wantErr bool
	}{
		{"increasing", []int{5, 9, 13}, false},
		{"empty", nil, false},
		{"duplicate", []int{5, 5, 9}, true},
		{"out of order", []int{9, 5}, true},
		{"contains one", []int{1, 5}, true},
		{"below two", []int{0, 5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMarkers(tc.markers)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateMarkers(%v) error = %v, wantErr %v", tc.markers, err, tc.wantErr)
			}
		})
	}
}
