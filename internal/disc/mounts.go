package disc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const procMountsPath = "/proc/mounts"

// ResolveMountPoint returns the mount point the device is mounted at, or ""
// when it is not mounted. Removable discs are usually automounted, so the
// MakeMKV scan alone does not tell us where the filesystem lives.
func ResolveMountPoint(device string) (string, error) {
	f, err := os.Open(procMountsPath)
	if err != nil {
		return "", fmt.Errorf("open mounts: %w", err)
	}
	defer f.Close()
	return findMountPoint(f, device)
}

func findMountPoint(r io.Reader, device string) (string, error) {
	requested, _ := filepath.EvalSymlinks(device)
	if requested == "" {
		requested = device
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		mountDevice := decodeMountField(fields[0])
		mountPath := decodeMountField(fields[1])

		canonical, _ := filepath.EvalSymlinks(mountDevice)
		if canonical == "" {
			canonical = mountDevice
		}
		if sameDevice(requested, canonical) {
			return mountPath, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan mounts: %w", err)
	}
	return "", nil
}

// decodeMountField reverses the octal escapes /proc/mounts applies to
// whitespace and backslashes.
func decodeMountField(field string) string {
	replacer := strings.NewReplacer(
		"\\040", " ",
		"\\011", "\t",
		"\\012", "\n",
		"\\134", "\\",
	)
	return replacer.Replace(field)
}

func sameDevice(a, b string) bool {
	if a == b {
		return true
	}
	if strings.HasPrefix(a, "/dev/") && strings.HasPrefix(b, "/dev/") {
		return filepath.Base(a) == filepath.Base(b)
	}
	return false
}
