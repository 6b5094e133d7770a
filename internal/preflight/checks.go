package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"seriesrip/internal/config"
)

// minimumFreeBytes is the floor for the staging filesystem. A dual-layer
// DVD rip plus its split output needs roughly twice the disc size.
const minimumFreeBytes = 20 << 30

// Result describes the outcome of one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Checker runs environment checks against a loaded configuration. The
// lookup hooks exist so tests can run without the real binaries installed.
type Checker struct {
	cfg      *config.Config
	lookPath func(string) (string, error)
	statfs   func(string, *unix.Statfs_t) error
}

// NewChecker returns a Checker bound to cfg.
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		cfg:      cfg,
		lookPath: exec.LookPath,
		statfs:   unix.Statfs,
	}
}

// Run executes every check and returns the results in display order.
func (c *Checker) Run() []Result {
	results := []Result{}
	for _, binary := range []string{
		c.cfg.MakemkvBinary(),
		c.cfg.MkvmergeBinary(),
		c.cfg.FFprobeBinary(),
		"eject",
	} {
		results = append(results, c.checkBinary(binary))
	}
	results = append(results,
		c.checkDrive(),
		c.checkStagingSpace(),
		c.checkCredentials(),
	)
	return results
}

// Passed reports whether every result in results succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func (c *Checker) checkBinary(name string) Result {
	path, err := c.lookPath(name)
	if err != nil {
		return Result{Name: name, Detail: "not found in PATH"}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func (c *Checker) checkDrive() Result {
	drive := c.cfg.MakeMKV.OpticalDrive
	name := "optical drive"
	if _, err := os.Stat(drive); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not present", drive)}
	}
	return Result{Name: name, Passed: true, Detail: drive}
}

func (c *Checker) checkStagingSpace() Result {
	name := "staging space"
	dir := c.cfg.Paths.StagingDir
	var stat unix.Statfs_t
	if err := c.statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s free in %s", humanize.IBytes(free), dir)
	if free < minimumFreeBytes {
		return Result{Name: name, Detail: detail + fmt.Sprintf(" (need %s)", humanize.IBytes(minimumFreeBytes))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func (c *Checker) checkCredentials() Result {
	name := "tvdb credentials"
	if c.cfg.TVDB.APIKey == "" {
		return Result{Name: name, Detail: fmt.Sprintf("api key not set (config [tvdb] or %s)", config.EnvTVDBAPIKey)}
	}
	return Result{Name: name, Passed: true, Detail: "api key configured"}
}
