package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/repsac/gp-sort-sequences/internal/config"
	"github.com/repsac/gp-sort-sequences/internal/encoder"
	"github.com/repsac/gp-sort-sequences/internal/history"
	"github.com/repsac/gp-sort-sequences/internal/organizer"
	"github.com/repsac/gp-sort-sequences/internal/report"
	"github.com/repsac/gp-sort-sequences/internal/scan"
	"github.com/repsac/gp-sort-sequences/internal/selftest"
)

// lockName guards a destination against two concurrent runs handing
// out the same sequence numbers.
const lockName = ".gpsort.lock"

type organizeOptions struct {
	dest   string
	movie  bool
	dryRun bool
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	if selftestFlag {
		if len(args) > 0 {
			return errors.New("--selftest takes no source folders")
		}
		log := newConsoleLogger(verboseFlag)
		if err := selftest.Run(cmd.Context(), selftest.Options{Movie: movieFlag, DryRun: dryRunFlag}, log); err != nil {
			return fmt.Errorf("self-test failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Self-test passed")
		return nil
	}

	if len(args) == 0 {
		return errors.New("at least one source folder is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, verboseFlag)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := organizeOptions{dest: destFlag, movie: movieFlag, dryRun: dryRunFlag}
	status, err := organize(cmd.Context(), cfg, log, args, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	exitStatus = status
	return nil
}

// organize runs the pipeline over roots and returns the exit status
// for a run that got going. A returned error means the run never
// started and maps to a fatal exit in main.
func organize(ctx context.Context, cfg *config.Config, log *slog.Logger, roots []string, opts organizeOptions, out io.Writer) (int, error) {
	info, err := os.Stat(opts.dest)
	if err != nil {
		return report.ExitFatal, fmt.Errorf("destination %s: %w", opts.dest, err)
	}
	if !info.IsDir() {
		return report.ExitFatal, fmt.Errorf("destination %s is not a directory", opts.dest)
	}

	// A dry run writes nothing, so it does not take the lock either.
	if !opts.dryRun {
		lock := flock.New(filepath.Join(opts.dest, lockName))
		locked, err := lock.TryLock()
		if err != nil {
			return report.ExitFatal, fmt.Errorf("lock destination: %w", err)
		}
		if !locked {
			return report.ExitFatal, fmt.Errorf("destination %s is in use by another gpsort run", opts.dest)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warn("destination lock not released", "error", err)
			}
		}()
	}

	var enc encoder.Encoder
	if opts.movie && !opts.dryRun {
		ff, err := encoder.NewFFmpeg(cfg.Movie.EncoderPath, cfg.Movie.Width, cfg.Movie.CRF, log)
		if err != nil {
			return report.ExitFatal, err
		}
		enc = ff
	}

	entries, err := scan.Files(ctx, roots, opts.dest)
	if err != nil {
		return report.ExitFatal, err
	}

	plan, err := organizer.BuildPlan(opts.dest, entries)
	if err != nil {
		return report.ExitFatal, err
	}

	org := organizer.New(organizer.Options{Encoder: enc, Movie: opts.movie, DryRun: opts.dryRun}, log)
	result, err := org.Execute(ctx, plan)
	if err != nil {
		return report.ExitFatal, err
	}

	if cfg.History.Enabled {
		recordHistory(cfg, log, roots, opts, plan, result)
	}

	report.Render(out, report.Build(plan, result, opts.dryRun))
	return report.ExitStatus(nil, result), nil
}

// recordHistory writes the run to the catalog. The catalog is a
// convenience, so every failure here is a warning and never touches
// the run's outcome. Dry runs are recorded without move rows; nothing
// was relocated.
func recordHistory(cfg *config.Config, log *slog.Logger, roots []string, opts organizeOptions, plan *organizer.Plan, result *organizer.Result) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history catalog unavailable", "path", cfg.History.Path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run, err := store.StartRun(opts.dest, roots, opts.dryRun, opts.movie)
	if err != nil {
		log.Warn("history run not recorded", "error", err)
		return
	}

	if !opts.dryRun {
		number := make(map[int]int, len(plan.Sequences))
		for _, seq := range plan.Sequences {
			number[seq.Device] = seq.Number
		}
		for _, mr := range result.Moves {
			if !mr.Success {
				continue
			}
			mv := &history.Move{
				RunID:     run.ID,
				DeviceSeq: mr.Move.Still.Sequence,
				Sequence:  number[mr.Move.Still.Sequence],
				Source:    mr.Move.Source,
				Dest:      mr.Move.Dest,
				Size:      mr.Bytes,
			}
			if err := store.AddMove(mv); err != nil {
				log.Warn("history move not recorded", "error", err)
				break
			}
		}
	}

	if err := store.FinishRun(run.ID, result.MovedCount(), len(plan.Skipped), result.ErrorCount()); err != nil {
		log.Warn("history run not finalized", "error", err)
	}
}
