package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"seriesrip/internal/catalog"
	"seriesrip/internal/config"
	"seriesrip/internal/logging"
	"seriesrip/internal/services/tvdb"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildLogger constructs the run logger. The auto format picks the console
// handler when stderr is a terminal and JSON otherwise, so piped output
// stays machine-readable. Extra paths are appended to the stderr writer.
func buildLogger(cfg *config.Config, extraPaths ...string) (*slog.Logger, error) {
	format := cfg.Logging.Format
	if format == "" || format == "auto" {
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			format = "console"
		} else {
			format = "json"
		}
	}
	paths := []string{}
	if len(extraPaths) > 0 {
		paths = append([]string{"stderr"}, extraPaths...)
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      format,
		OutputPaths: paths,
	})
}

// catalogService opens the episode cache and wires the TVDB client behind
// it. The returned closer releases the cache database.
func catalogService(cfg *config.Config, logger *slog.Logger) (*catalog.Service, func(), error) {
	client, err := tvdb.New(cfg.TVDB.APIKey, cfg.TVDB.PIN, cfg.TVDB.BaseURL, cfg.TVDB.Language)
	if err != nil {
		return nil, nil, err
	}
	store, err := catalog.OpenStore(cfg.Catalog.CachePath)
	if err != nil {
		return nil, nil, err
	}
	ttl := time.Duration(cfg.Catalog.CacheTTLHours) * time.Hour
	service := catalog.NewService(client, store, cfg.TVDB.Language, ttl, logger)
	closer := func() {
		store.Close() //nolint:errcheck
	}
	return service, closer, nil
}
