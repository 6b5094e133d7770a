package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"seriesrip/internal/config"
	"seriesrip/internal/disc"
	"seriesrip/internal/logging"
	"seriesrip/internal/media/ffprobe"
	"seriesrip/internal/organizer"
	"seriesrip/internal/services"
	"seriesrip/internal/services/makemkv"
	"seriesrip/internal/split"
)

const lockFileName = "seriesrip.lock"

// Scanner enumerates disc titles.
type Scanner interface {
	Scan(ctx context.Context, device string) (*disc.ScanResult, error)
}

// Prober reads container metadata from a ripped file.
type Prober func(ctx context.Context, path string) (ffprobe.Result, error)

// Splitter divides a container at chapter markers.
type Splitter interface {
	Split(ctx context.Context, sourcePath string, markers []int, displayDimensions string) ([]string, error)
}

// Organizer resolves metadata and relocates episode files.
type Organizer interface {
	Organize(ctx context.Context, discDir, libraryDir string, files []string, start int) ([]string, error)
}

// Request carries the per-run inputs.
type Request struct {
	// OutputDir is the library base the season directories go under.
	OutputDir string
	// Start is the absolute number of the first episode on the disc.
	Start int
	// Device overrides the configured optical drive when non-empty.
	Device string
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	DiscName string
	Title    disc.Title
	Episodes []string
}

// Pipeline runs the rip sequence end to end: scan, select, rip, probe,
// split, organize, release. Stages are strictly sequential; each stage's
// output is the next stage's sole input, and any stage error aborts the run
// with partial files left in place for inspection.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	scanner   Scanner
	ripper    makemkv.Ripper
	probe     Prober
	splitter  Splitter
	organizer Organizer
	ejector   disc.Ejector
}

// Option overrides a pipeline collaborator, primarily for tests.
type Option func(*Pipeline)

func WithScanner(s Scanner) Option {
	return func(p *Pipeline) { p.scanner = s }
}

func WithRipper(r makemkv.Ripper) Option {
	return func(p *Pipeline) { p.ripper = r }
}

func WithProber(fn Prober) Option {
	return func(p *Pipeline) { p.probe = fn }
}

func WithSplitter(s Splitter) Option {
	return func(p *Pipeline) { p.splitter = s }
}

func WithOrganizer(o Organizer) Option {
	return func(p *Pipeline) { p.organizer = o }
}

func WithEjector(e disc.Ejector) Option {
	return func(p *Pipeline) { p.ejector = e }
}

// New wires a pipeline from configuration. The catalog service backs the
// organizer stage.
func New(cfg *config.Config, catalog organizer.CatalogService, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	ripper, err := makemkv.New(cfg.MakemkvBinary(), cfg.MakeMKV.RipTimeout)
	if err != nil {
		return nil, err
	}
	ffprobeBinary := cfg.FFprobeBinary()

	p := &Pipeline{
		cfg:     cfg,
		logger:  logger,
		scanner: disc.NewScanner(cfg.MakemkvBinary()),
		ripper:  ripper,
		probe: func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, ffprobeBinary, path)
		},
		splitter:  split.NewSplitter(cfg, logger),
		organizer: organizer.NewOrganizer(catalog, cfg.TVDB.SeriesID, cfg.TVDB.SeriesName, logger),
		ejector:   disc.NewEjector(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the full sequence for one disc. A second concurrent run is
// refused via a file lock; there is only one optical drive.
func (p *Pipeline) Run(ctx context.Context, request Request) (*Result, error) {
	if request.Start < 1 {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "validate request",
			fmt.Sprintf("starting episode number %d must be at least 1", request.Start), nil)
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.LogDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "acquire lock", lock.Path(), err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "acquire lock",
			"another run is already using the drive", nil)
	}
	defer lock.Unlock() //nolint:errcheck

	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))
	started := time.Now()

	device := request.Device
	if device == "" {
		device = p.cfg.MakeMKV.OpticalDrive
	}

	scanCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.MakeMKV.InfoTimeout)*time.Second)
	defer cancel()
	scan, err := p.scanner.Scan(scanCtx, device)
	if err != nil {
		return nil, err
	}
	logger.Info("disc scanned",
		logging.String(logging.FieldStage, "scanning"),
		logging.String("disc", scan.DiscName),
		logging.Int("titles", len(scan.Titles)),
	)

	index, err := disc.LargestTitle(scan.Titles)
	if err != nil {
		return nil, services.Wrap(services.ErrRip, "selecting", "pick largest title", "", err)
	}
	title := scan.Titles[index]
	logger.Info("selected title",
		logging.String(logging.FieldStage, "selecting"),
		logging.Int("title_id", title.ID),
		logging.String("size", humanize.IBytes(uint64(title.SizeBytes))),
		logging.String("segment_map", title.SegmentMap),
	)

	markers, err := disc.ParseSegmentMap(title.SegmentMap)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "extracting", "parse segment map", title.SegmentMap, err)
	}

	discName := scan.DiscName
	if discName == "" {
		discName = "DISC"
	}
	discDir := filepath.Join(p.cfg.Paths.StagingDir, discName)
	if err := os.MkdirAll(discDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrRip, "ripping", "create staging dir", discDir, err)
	}

	sourcePath, err := p.ripper.Rip(ctx, device, title.ID, discDir, title.OutputFileName, func(update makemkv.ProgressUpdate) {
		logger.Info("rip progress",
			logging.String(logging.FieldStage, "ripping"),
			logging.String("step", update.Stage),
			logging.Float64("percent", update.Percent),
		)
	})
	if err != nil {
		return nil, err
	}

	probed, err := p.probe(ctx, sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "probing", "inspect container", sourcePath, err)
	}

	if len(markers) == 0 {
		policy := split.CreditsPolicy{
			MinSeconds:   p.cfg.Heuristic.CreditsMinSeconds,
			MaxSeconds:   p.cfg.Heuristic.CreditsMaxSeconds,
			MarkerOffset: p.cfg.Heuristic.MarkerOffset,
		}
		markers = split.FindCreditMarkers(probed.Chapters, policy, logger)
		logger.Info("derived markers from chapter durations",
			logging.String(logging.FieldStage, "detecting"),
			logging.Int("markers", len(markers)),
		)
	}
	if err := disc.ValidateMarkers(markers); err != nil {
		return nil, services.Wrap(services.ErrValidation, "detecting", "validate markers", "", err)
	}

	files, err := p.splitter.Split(ctx, sourcePath, markers, probed.DisplayDimensions())
	if err != nil {
		return nil, err
	}

	placed, err := p.organizer.Organize(ctx, discDir, request.OutputDir, files, request.Start)
	if err != nil {
		return nil, err
	}

	if err := p.ejector.Release(ctx, device); err != nil {
		logger.Warn("drive release failed", logging.Error(err))
	}

	logger.Info("run complete",
		logging.Int("episodes", len(placed)),
		logging.Duration("elapsed", time.Since(started).Round(time.Second)),
	)
	return &Result{
		RunID:    runID,
		DiscName: discName,
		Title:    title,
		Episodes: placed,
	}, nil
}
