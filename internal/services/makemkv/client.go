package makemkv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ProgressUpdate captures MakeMKV progress output. It feeds a synchronous
// logging callback only; nothing downstream depends on it.
type ProgressUpdate struct {
	Stage   string
	Percent float64
	Message string
}

// Ripper defines the behaviour the pipeline needs from MakeMKV.
type Ripper interface {
	Rip(ctx context.Context, device string, titleID int, destDir, outputName string, progress func(ProgressUpdate)) (string, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps MakeMKV CLI rip interactions.
type Client struct {
	binary     string
	ripTimeout time.Duration
	exec       Executor
}

// New constructs a MakeMKV client.
func New(binary string, ripTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("makemkv binary required")
	}
	client := &Client{
		binary:     binary,
		ripTimeout: time.Duration(ripTimeoutSeconds) * time.Second,
		exec:       commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Rip executes MakeMKV for a single title, returning the resulting file path.
// The rip is never retried: a failed rip usually means a damaged disc.
func (c *Client) Rip(ctx context.Context, device string, titleID int, destDir, outputName string, progress func(ProgressUpdate)) (string, error) {
	if destDir == "" {
		return "", errors.New("destination directory required")
	}
	if titleID < 0 {
		return "", fmt.Errorf("invalid title id %d", titleID)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	ripCtx := ctx
	if c.ripTimeout > 0 {
		var cancel context.CancelFunc
		ripCtx, cancel = context.WithTimeout(ctx, c.ripTimeout)
		defer cancel()
	}

	args := []string{"--robot"}
	if progress != nil {
		args = append(args, "--progress=-same")
	}
	args = append(args, "mkv", deviceSpec(device), strconv.Itoa(titleID), destDir)

	if err := c.exec.Run(ripCtx, c.binary, args, func(line string) {
		if progress == nil {
			return
		}
		if update, ok := parseProgress(line); ok {
			progress(update)
		}
	}); err != nil {
		return "", fmt.Errorf("makemkv rip title %d: %w", titleID, err)
	}

	destPath := filepath.Join(destDir, outputName)
	if _, err := os.Stat(destPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("makemkv produced no output file %s; check disc for read errors", outputName)
		}
		return "", fmt.Errorf("inspect rip output: %w", err)
	}
	return destPath, nil
}

func deviceSpec(device string) string {
	device = strings.TrimSpace(device)
	if device == "" {
		return "disc:0"
	}
	if strings.Contains(device, ":") {
		return device
	}
	return "dev:" + device
}

// parseProgress interprets robot-mode PRGV lines:
// PRGV:current,total,max
func parseProgress(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "PRGV:"):
		payload := strings.TrimPrefix(line, "PRGV:")
		parts := strings.Split(payload, ",")
		if len(parts) < 3 {
			return ProgressUpdate{}, false
		}
		total, totalErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		maximum, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || maximum <= 0 {
			return ProgressUpdate{}, false
		}
		if totalErr != nil {
			total = 0
		}
		percent := (total / maximum) * 100
		return ProgressUpdate{
			Stage:   "Ripping",
			Percent: percent,
			Message: fmt.Sprintf("Progress %.2f%% (%.0f/%.0f)", percent, total, maximum),
		}, true
	case strings.HasPrefix(line, "PRGC:"), strings.HasPrefix(line, "PRGT:"):
		// PRGC:code,id,"name" names the current operation.
		payload := line[strings.Index(line, ":")+1:]
		parts := strings.SplitN(payload, ",", 3)
		if len(parts) < 3 {
			return ProgressUpdate{}, false
		}
		name := strings.Trim(strings.TrimSpace(parts[2]), "\"")
		if name == "" {
			return ProgressUpdate{}, false
		}
		return ProgressUpdate{Stage: name}, true
	default:
		return ProgressUpdate{}, false
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
