package disc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Ejector releases the disc after a successful run: unmount wherever the
// automounter put the filesystem, then eject the drive.
type Ejector interface {
	Release(ctx context.Context, device string) error
}

type commandEjector struct{}

// NewEjector creates an ejector that unmounts via the kernel and shells out
// to the eject utility.
func NewEjector() Ejector {
	return commandEjector{}
}

func (commandEjector) Release(ctx context.Context, device string) error {
	device = strings.TrimSpace(device)

	mountPoint, err := ResolveMountPoint(device)
	if err != nil {
		return err
	}
	if mountPoint != "" {
		if err := unix.Unmount(mountPoint, 0); err != nil && !errors.Is(err, unix.EINVAL) && !errors.Is(err, unix.ENOENT) {
			return fmt.Errorf("unmount %s: %w", mountPoint, err)
		}
	}

	var cmd *exec.Cmd
	if device == "" {
		cmd = exec.CommandContext(ctx, "eject")
	} else {
		cmd = exec.CommandContext(ctx, "eject", device)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("eject %s: %w", device, err)
	}
	return nil
}
