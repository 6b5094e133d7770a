package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"seriesrip/internal/organizer"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "plan OUTPUT_DIR START_NUMBER",
		Short: "Show where the next disc's episodes would be filed, without touching the drive",
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
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			service, closeCatalog, err := catalogService(cfg, logger)
			if err != nil {
				return err
			}
			defer closeCatalog()

			resolver := organizer.NewOrganizer(service, cfg.TVDB.SeriesID, cfg.TVDB.SeriesName, logger)
			episodes, err := resolver.Resolve(cmd.Context(), start, count)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(episodes))
			for i, episode := range episodes {
				name := organizer.EpisodeFileName(cfg.TVDB.SeriesName, episode.SeasonNumber, episode.Number, episode.Name)
				rows = append(rows, []string{
					strconv.Itoa(start + i),
					fmt.Sprintf("S%02dE%02d", episode.SeasonNumber, episode.Number),
					episode.Name,
					filepath.Join(outputDir, organizer.SeasonDirName(episode.SeasonNumber), name),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Absolute", "Episode", "Title", "Destination"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 6, "Number of episodes the disc is expected to hold")
	return cmd
}
