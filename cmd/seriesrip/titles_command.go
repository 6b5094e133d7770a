package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"seriesrip/internal/disc"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var drive string

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "Scan the disc and list its titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			device := strings.TrimSpace(drive)
			if device == "" {
				device = cfg.MakeMKV.OpticalDrive
			}

			scanner := disc.NewScanner(cfg.MakemkvBinary())
			result, err := scanner.Scan(cmd.Context(), device)
			if err != nil {
				return err
			}

			return writeTitles(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&drive, "drive", "", "Optical drive device (overrides configuration)")
	return cmd
}

func writeTitles(out io.Writer, result *disc.ScanResult) error {
	if result.DiscName != "" {
		fmt.Fprintf(out, "Disc: %s\n", result.DiscName)
	}

	largest, err := disc.LargestTitle(result.Titles)
	if err != nil {
		fmt.Fprintln(out, "Disc has no titles.")
		return nil
	}

	rows := make([][]string, 0, len(result.Titles))
	for i, title := range result.Titles {
		marker := ""
		if i == largest {
			marker = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(title.ID),
			marker,
			title.Name,
			humanize.IBytes(uint64(title.SizeBytes)),
			formatDuration(title.DurationSeconds),
			title.SegmentMap,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "", "Name", "Size", "Duration", "Segment Map"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	return fmt.Sprintf("%d:%02d:%02d", hours, int(d.Minutes())%60, seconds%60)
}
