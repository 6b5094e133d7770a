package organizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"seriesrip/internal/logging"
	"seriesrip/internal/services"
	"seriesrip/internal/services/tvdb"
)

// CatalogService supplies full episode listings per numbering view.
type CatalogService interface {
	Episodes(ctx context.Context, seriesID int64, seasonType tvdb.SeasonType) ([]tvdb.Episode, error)
}

// Organizer resolves episode metadata and moves split files into the
// season-structured library.
type Organizer struct {
	catalog    CatalogService
	seriesID   int64
	seriesName string
	logger     *slog.Logger
}

// NewOrganizer constructs the resolver/relocation stage.
func NewOrganizer(catalog CatalogService, seriesID int64, seriesName string, logger *slog.Logger) *Organizer {
	return &Organizer{
		catalog:    catalog,
		seriesID:   seriesID,
		seriesName: seriesName,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Resolve fetches both numbering views and translates the absolute episode
// window [start, start+count) into default-order records.
func (o *Organizer) Resolve(ctx context.Context, start, count int) ([]tvdb.Episode, error) {
	absolute, err := o.catalog.Episodes(ctx, o.seriesID, tvdb.SeasonTypeAbsolute)
	if err != nil {
		return nil, services.Wrap(services.ErrLookup, "organizing", "fetch absolute listing", "episode metadata service failed", err)
	}
	defaults, err := o.catalog.Episodes(ctx, o.seriesID, tvdb.SeasonTypeDefault)
	if err != nil {
		return nil, services.Wrap(services.ErrLookup, "organizing", "fetch default listing", "episode metadata service failed", err)
	}
	return ResolveEpisodes(absolute, defaults, start, count)
}

// Organize maps each split file to its season/episode record and moves it
// from the disc working directory into the season directory under
// libraryDir. Moves are renames; when staging and library live on different
// filesystems the rename falls back to a byte copy plus source removal, so
// content is never re-encoded either way. When all files are placed the
// emptied disc directory is removed; anything left in it is a fatal cleanup
// error.
func (o *Organizer) Organize(ctx context.Context, discDir, libraryDir string, files []string, start int) ([]string, error) {
	resolved, err := o.Resolve(ctx, start, len(files))
	if err != nil {
		return nil, err
	}

	placed := make([]string, 0, len(files))
	for i, file := range files {
		episode := resolved[i]
		name := EpisodeFileName(o.seriesName, episode.SeasonNumber, episode.Number, episode.Name)
		seasonDir := filepath.Join(libraryDir, SeasonDirName(episode.SeasonNumber))
		if err := os.MkdirAll(seasonDir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrOrganize, "organizing", "ensure season dir", seasonDir, err)
		}

		src := filepath.Join(discDir, file)
		dst := filepath.Join(seasonDir, name)
		o.logger.Info("placing episode",
			logging.String("from", src),
			logging.String("to", dst),
			logging.Int("absolute", start+i),
		)
		if err := o.moveFile(src, dst); err != nil {
			return nil, services.Wrap(services.ErrOrganize, "organizing", "move episode",
				fmt.Sprintf("failed to move %s", file), err)
		}
		placed = append(placed, dst)
	}

	if err := os.Remove(discDir); err != nil {
		return nil, services.Wrap(services.ErrCleanup, "organizing", "remove disc dir",
			"disc working directory not empty after organization", err)
	}
	return placed, nil
}

// renameFile is swapped out in tests to exercise the cross-device path.
var renameFile = os.Rename

// moveFile renames src to dst, falling back to copy-then-remove when the
// two paths live on different filesystems.
func (o *Organizer) moveFile(src, dst string) error {
	renameErr := renameFile(src, dst)
	if renameErr == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return renameErr
	}

	o.logger.Info("library is on another filesystem; copying",
		logging.String("to", dst),
	)
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
