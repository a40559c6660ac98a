package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repsac/gp-sort-sequences/internal/organizer"
	"github.com/repsac/gp-sort-sequences/internal/report"
	"github.com/repsac/gp-sort-sequences/internal/scan"
)

var planDestFlag string

var planCmd = &cobra.Command{
	Use:   "plan [flags] <source>...",
	Short: "Preview the grouping without moving anything",
	Long: `Scans the source folders and prints the sequences a run would
produce, the files each would receive, and anything that would be
skipped. Nothing on disk is touched.

Examples:
  gpsort plan /media/card
  gpsort plan -d /archive/lapse /media/card`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlanCmd,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planDestFlag, "destination", "d", ".", "Destination the preview is computed against")
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	entries, err := scan.Files(cmd.Context(), args, planDestFlag)
	if err != nil {
		return err
	}
	plan, err := organizer.BuildPlan(planDestFlag, entries)
	if err != nil {
		return err
	}

	org := organizer.New(organizer.Options{DryRun: true}, log)
	result, err := org.Execute(cmd.Context(), plan)
	if err != nil {
		return err
	}

	report.Render(cmd.OutOrStdout(), report.Build(plan, result, true))
	return nil
}
