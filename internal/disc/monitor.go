package disc

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"seriesrip/internal/logging"
)

// WaitForInsert blocks until udev reports media in the given optical drive,
// or the context is cancelled. It lets `rip --wait` be started before the
// disc is in the tray.
func WaitForInsert(ctx context.Context, device string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "disc-monitor")
	device = strings.TrimSpace(device)

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, insertMatcher())
	defer close(monitorQuit)

	logger.Info("waiting for disc insertion", logging.String("device", device))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case uevent := <-queue:
			name := eventDeviceName(uevent)
			if name == "" {
				continue
			}
			if device != "" && name != device {
				logger.Debug("ignoring event for other device", logging.String("device", name))
				continue
			}
			logger.Info("disc media detected", logging.String("device", name))
			return nil
		case err := <-errs:
			logger.Warn("udev monitor error", logging.Error(err))
		}
	}
}

// insertMatcher matches SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1 with
// ACTION change or add.
func insertMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func eventDeviceName(uevent netlink.UEvent) string {
	if name, ok := uevent.Env["DEVNAME"]; ok && name != "" {
		if !strings.HasPrefix(name, "/dev/") {
			return "/dev/" + name
		}
		return name
	}
	if uevent.KObj != "" {
		return "/dev/" + filepath.Base(uevent.KObj)
	}
	return ""
}
