package disc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Title represents one MakeMKV title entry on the disc.
type Title struct {
	ID              int
	Name            string
	DurationSeconds int
	SizeBytes       int64
	SizeHuman       string
	SegmentMap      string
	OutputFileName  string
}

// ScanResult captures the MakeMKV info output for one disc.
type ScanResult struct {
	DiscName string
	Device   string
	Titles   []Title
}

// Executor abstracts command execution for the scanner.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}

// Scanner wraps MakeMKV info commands to gather disc metadata.
type Scanner struct {
	binary string
	exec   Executor
}

// NewScanner constructs a Scanner for the provided MakeMKV binary.
func NewScanner(binary string) *Scanner {
	return NewScannerWithExecutor(binary, nil)
}

// NewScannerWithExecutor allows injecting a custom executor for testing.
func NewScannerWithExecutor(binary string, exec Executor) *Scanner {
	if exec == nil {
		exec = commandExecutor{}
	}
	return &Scanner{binary: strings.TrimSpace(binary), exec: exec}
}

// Scan executes MakeMKV to gather disc name, drive device, and titles.
func (s *Scanner) Scan(ctx context.Context, device string) (*ScanResult, error) {
	if s.binary == "" {
		return nil, errors.New("makemkv binary not configured")
	}

	args := []string{"-r", "--cache=1", "info", normalizeDeviceArg(device)}
	output, err := s.exec.Run(ctx, s.binary, args)
	if err != nil {
		type exitCoder interface{ ExitCode() int }
		var exitErr exitCoder
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("makemkv info failed (exit status %d): %w", exitErr.ExitCode(), err)
		}
		return nil, fmt.Errorf("makemkv info failed: %w", err)
	}

	result, err := parseInfoOutput(output)
	if err != nil {
		return nil, err
	}
	if result.Device == "" {
		result.Device = strings.TrimPrefix(normalizeDeviceArg(device), "dev:")
	}
	return result, nil
}

func normalizeDeviceArg(device string) string {
	device = strings.TrimSpace(device)
	if device == "" {
		return "disc:0"
	}
	if strings.Contains(device, ":") {
		return device
	}
	return "dev:" + device
}
