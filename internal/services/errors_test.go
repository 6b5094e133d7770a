package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 2")
	err := Wrap(ErrSplit, "splitting", "run mkvmerge", "multiplexer failed", base)
	if !errors.Is(err, ErrSplit) {
		t.Fatalf("expected ErrSplit marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	want := "split error: splitting: run mkvmerge: multiplexer failed: exit status 2"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrLookup, "organizing", "match catalog id", "no default-order record for id 12345", nil)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup marker, got %v", err)
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "external tool error: pipeline failure: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
