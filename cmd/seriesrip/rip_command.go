package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"seriesrip/internal/config"
	"seriesrip/internal/disc"
	"seriesrip/internal/pipeline"
	"seriesrip/internal/services"
)

func newRipCommand(ctx *commandContext) *cobra.Command {
	var wait bool
	var drive string

	cmd := &cobra.Command{
		Use:   "rip OUTPUT_DIR START_NUMBER",
		Short: "Rip the disc, split it into episodes, and file them under OUTPUT_DIR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, start, err := parseRipArgs(args)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg, filepath.Join(cfg.Paths.LogDir, "seriesrip.log"))
			if err != nil {
				return err
			}

			service, closeCatalog, err := catalogService(cfg, logger)
			if err != nil {
				return err
			}
			defer closeCatalog()

			device := strings.TrimSpace(drive)
			if device == "" {
				device = cfg.MakeMKV.OpticalDrive
			}
			if wait {
				fmt.Fprintf(cmd.OutOrStdout(), "Waiting for a disc in %s...\n", device)
				if err := disc.WaitForInsert(cmd.Context(), device, logger); err != nil {
					return err
				}
			}

			pipe, err := pipeline.New(cfg, service, logger)
			if err != nil {
				return err
			}
			result, err := pipe.Run(cmd.Context(), pipeline.Request{
				OutputDir: outputDir,
				Start:     start,
				Device:    device,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ripped %s: %d episodes\n", result.DiscName, len(result.Episodes))
			for _, path := range result.Episodes {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for a disc to be inserted before starting")
	cmd.Flags().StringVar(&drive, "drive", "", "Optical drive device (overrides configuration)")
	return cmd
}

// parseRipArgs validates the positional arguments before any disc or
// network I/O happens. Bad input is a usage error, not a pipeline failure.
func parseRipArgs(args []string) (string, int, error) {
	outputDir, err := config.ExpandPath(strings.TrimSpace(args[0]))
	if err != nil {
		return "", 0, services.Wrap(services.ErrUsage, "", "parse arguments",
			fmt.Sprintf("output directory %q", args[0]), err)
	}
	if !filepath.IsAbs(outputDir) {
		return "", 0, services.Wrap(services.ErrUsage, "", "parse arguments",
			fmt.Sprintf("output directory %q did not resolve to an absolute path", args[0]), nil)
	}

	start, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return "", 0, services.Wrap(services.ErrUsage, "", "parse arguments",
			fmt.Sprintf("starting episode number %q is not an integer", args[1]), nil)
	}
	if start < 1 {
		return "", 0, services.Wrap(services.ErrUsage, "", "parse arguments",
			fmt.Sprintf("starting episode number %d must be at least 1", start), nil)
	}
	return outputDir, start, nil
}
