package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"seriesrip/internal/logging"
	"seriesrip/internal/services"
	"seriesrip/internal/services/tvdb"
)

type stubCatalog struct {
	absolute []tvdb.Episode
	defaults []tvdb.Episode
	err      error
}

func (s *stubCatalog) Episodes(_ context.Context, _ int64, seasonType tvdb.SeasonType) ([]tvdb.Episode, error) {
	if s.err != nil {
		return nil, s.err
	}
	if seasonType == tvdb.SeasonTypeAbsolute {
		return s.absolute, nil
	}
	return s.defaults, nil
}

func writeEpisodeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("mkv"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOrganizeMovesFilesIntoSeasonDirs(t *testing.T) {
	absolute, defaults := makeListings(120)
	defaults[99].Name = "Arc Begins"

	base := t.TempDir()
	discDir := filepath.Join(base, "ONE_PIECE_DISC")
	files := []string{"episode-001.mkv", "episode-002.mkv", "episode-003.mkv"}
	writeEpisodeFiles(t, discDir, files...)

	org := NewOrganizer(&stubCatalog{absolute: absolute, defaults: defaults}, 81797, "One Piece", logging.NewNop())
	placed, err := org.Organize(context.Background(), discDir, base, files, 100)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("expected 3 placed files, got %d", len(placed))
	}

	// Absolute 100 is S10E10 under the 10-per-season split used by the fixture.
	want := filepath.Join(base, "Season 10", "One Piece - S10E10 - Arc Begins.mkv")
	if placed[0] != want {
		t.Errorf("placed[0] = %q, want %q", placed[0], want)
	}
	for _, path := range placed {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("placed file missing: %v", err)
		}
	}
	if _, err := os.Stat(discDir); !os.IsNotExist(err) {
		t.Errorf("disc directory should be removed, stat err = %v", err)
	}
}

func TestOrganizeFallsBackToCopyAcrossFilesystems(t *testing.T) {
	absolute, defaults := makeListings(10)
	base := t.TempDir()
	discDir := filepath.Join(base, "DISC")
	files := []string{"episode-001.mkv"}
	writeEpisodeFiles(t, discDir, files...)

	original := renameFile
	renameFile = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}
	t.Cleanup(func() { renameFile = original })

	org := NewOrganizer(&stubCatalog{absolute: absolute, defaults: defaults}, 81797, "One Piece", logging.NewNop())
	placed, err := org.Organize(context.Background(), discDir, base, files, 1)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("expected 1 placed file, got %d", len(placed))
	}

	data, err := os.ReadFile(placed[0])
	if err != nil {
		t.Fatalf("read placed file: %v", err)
	}
	if string(data) != "mkv" {
		t.Errorf("copied content = %q, want %q", data, "mkv")
	}
	if _, err := os.Stat(filepath.Join(discDir, files[0])); !os.IsNotExist(err) {
		t.Errorf("source file should be removed after copy, stat err = %v", err)
	}
	if _, err := os.Stat(discDir); !os.IsNotExist(err) {
		t.Errorf("disc directory should be removed, stat err = %v", err)
	}
}

func TestOrganizeCatalogFailure(t *testing.T) {
	base := t.TempDir()
	org := NewOrganizer(&stubCatalog{err: errors.New("api down")}, 81797, "One Piece", logging.NewNop())
	_, err := org.Organize(context.Background(), filepath.Join(base, "DISC"), base, []string{"episode-001.mkv"}, 1)
	if !errors.Is(err, services.ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestOrganizeLeftoverFilesBlockDiscDirRemoval(t *testing.T) {
	absolute, defaults := makeListings(10)
	base := t.TempDir()
	discDir := filepath.Join(base, "DISC")
	writeEpisodeFiles(t, discDir, "episode-001.mkv", "stray.tmp")

	org := NewOrganizer(&stubCatalog{absolute: absolute, defaults: defaults}, 81797, "One Piece", logging.NewNop())
	_, err := org.Organize(context.Background(), discDir, base, []string{"episode-001.mkv"}, 1)
	if !errors.Is(err, services.ErrCleanup) {
		t.Fatalf("expected cleanup error, got %v", err)
	}
}

func TestOrganizeMissingSourceFile(t *testing.T) {
	// Placement failures carry the organize sentinel; ErrCleanup is
	// reserved for the leftover-files case above.
	absolute, defaults := makeListings(10)
	base := t.TempDir()
	discDir := filepath.Join(base, "DISC")
	writeEpisodeFiles(t, discDir)

	org := NewOrganizer(&stubCatalog{absolute: absolute, defaults: defaults}, 81797, "One Piece", logging.NewNop())
	_, err := org.Organize(context.Background(), discDir, base, []string{"episode-001.mkv"}, 1)
	if !errors.Is(err, services.ErrOrganize) {
		t.Fatalf("expected organize error, got %v", err)
	}
}
