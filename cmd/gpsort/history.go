package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repsac/gp-sort-sequences/internal/history"
	"github.com/repsac/gp-sort-sequences/internal/report"
)

var (
	historyRunFlag   string
	historyLimitFlag int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `Lists past runs from the history catalog, most recent first.
With --run, lists the files one recorded run moved. Run ids may be
abbreviated to any unique prefix.

Examples:
  gpsort history
  gpsort history --limit 5
  gpsort history --run 3f2a`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyRunFlag, "run", "", "Show the moves of one recorded run")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Most recent runs to list")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.History.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet")
			return nil
		}
		return fmt.Errorf("history catalog: %w", err)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if historyRunFlag != "" {
		return printRunMoves(cmd.OutOrStdout(), store, historyRunFlag)
	}
	return printRuns(cmd.OutOrStdout(), store, historyLimitFlag)
}

func printRuns(w io.Writer, store *history.Store, limit int) error {
	runs, err := store.Runs(history.RunFilter{Limit: limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No history recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Destination,
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Errors),
			runMode(run),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"RUN", "STARTED", "DESTINATION", "MOVED", "ERRORS", "MODE"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}

func printRunMoves(w io.Writer, store *history.Store, id string) error {
	full, err := resolveRunID(store, id)
	if err != nil {
		return err
	}
	moves, err := store.Moves(full)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Fprintf(w, "Run %s moved nothing\n", shortID(full))
		return nil
	}

	rows := make([][]string, 0, len(moves))
	for _, mv := range moves {
		rows = append(rows, []string{
			fmt.Sprintf("SEQ%03d", mv.Sequence),
			fmt.Sprintf("%03d", mv.DeviceSeq),
			filepath.Base(mv.Source),
			report.FormatSize(mv.Size),
			mv.Dest,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"SEQUENCE", "CAMERA", "FILE", "SIZE", "DESTINATION"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

// resolveRunID expands an abbreviated run id to the full one. A
// prefix matching more than one run is an error rather than a guess.
func resolveRunID(store *history.Store, id string) (string, error) {
	runs, err := store.Runs(history.RunFilter{})
	if err != nil {
		return "", err
	}
	var match string
	for _, run := range runs {
		if !strings.HasPrefix(run.ID, id) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("run id %s is ambiguous", id)
		}
		match = run.ID
	}
	if match == "" {
		return "", fmt.Errorf("no recorded run matches %s", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runMode(run *history.Run) string {
	switch {
	case run.DryRun && run.Movie:
		return "dry-run, movie"
	case run.DryRun:
		return "dry-run"
	case run.Movie:
		return "movie"
	default:
		return ""
	}
}
