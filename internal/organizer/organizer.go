// Package organizer plans and executes the relocation of time-lapse
// stills into renumbered sequence folders, with optional movie
// assembly per sequence.
package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/repsac/gp-sort-sequences/internal/encoder"
)

// Organizer executes relocation plans.
type Organizer struct {
	enc    encoder.Encoder
	movie  bool
	dryRun bool
	log    *slog.Logger
}

// Options configures an Organizer.
type Options struct {
	Encoder encoder.Encoder // required when Movie is set and DryRun is not
	Movie   bool
	DryRun  bool
}

// New creates an organizer.
func New(opts Options, log *slog.Logger) *Organizer {
	return &Organizer{
		enc:    opts.Encoder,
		movie:  opts.Movie,
		dryRun: opts.DryRun,
		log:    log,
	}
}

// MoveResult is the outcome of one file relocation.
type MoveResult struct {
	Move    Move
	Bytes   int64 // source size at move time, best effort
	Success bool
	Err     error
}

// MovieResult is the outcome of one sequence assembly.
type MovieResult struct {
	Sequence int    // output sequence number
	Path     string // movie destination
	Frames   int
	Success  bool
	Skipped  bool // nothing to assemble
	Err      error
}

// Result aggregates the outcomes of one run.
type Result struct {
	Moves  []MoveResult
	Movies []MovieResult
}

// MovedCount returns the number of successful moves.
func (r *Result) MovedCount() int {
	count := 0
	for _, m := range r.Moves {
		if m.Success {
			count++
		}
	}
	return count
}

// MovedBytes returns the total size of successfully moved files.
func (r *Result) MovedBytes() int64 {
	var total int64
	for _, m := range r.Moves {
		if m.Success {
			total += m.Bytes
		}
	}
	return total
}

// ErrorCount returns the number of failed moves and assemblies.
func (r *Result) ErrorCount() int {
	count := 0
	for _, m := range r.Moves {
		if m.Err != nil {
			count++
		}
	}
	for _, m := range r.Movies {
		if m.Err != nil {
			count++
		}
	}
	return count
}

// Execute runs the plan: every move first, then movie assembly when
// requested. Failures are per-file and never stop the run; the only
// errors returned are an unusable destination root and context
// cancellation. In dry-run mode every action is logged and nothing is
// touched.
func (o *Organizer) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	if err := checkDestRoot(plan.DestRoot); err != nil {
		return nil, err
	}

	o.log.Info("run started",
		"dest", plan.DestRoot,
		"sequences", len(plan.Sequences),
		"files", plan.Stills(),
		"skipped", len(plan.Skipped),
		"dry_run", o.dryRun)

	result := &Result{}
	for _, mv := range plan.Conflicts {
		o.log.Warn("destination conflict", "src", mv.Source, "dest", mv.Dest)
		result.Moves = append(result.Moves, MoveResult{Move: mv, Err: ErrDestinationConflict})
	}

	for _, seq := range plan.Sequences {
		o.log.Info("sequence assigned",
			"output", seq.Name(),
			"device_sequence", seq.Device,
			"files", len(seq.Moves))
		for _, mv := range seq.Moves {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			result.Moves = append(result.Moves, o.moveOne(mv))
		}
	}

	if o.movie {
		if err := o.buildMovies(ctx, plan, result); err != nil {
			return result, err
		}
	}

	o.log.Info("run complete",
		"moved", result.MovedCount(),
		"errors", result.ErrorCount())
	return result, nil
}

func (o *Organizer) moveOne(mv Move) MoveResult {
	var size int64
	if info, err := os.Stat(mv.Source); err == nil {
		size = info.Size()
	}
	if o.dryRun {
		o.log.Info("would move", "src", mv.Source, "dest", mv.Dest)
		return MoveResult{Move: mv, Bytes: size, Success: true}
	}
	if err := MoveFile(mv.Source, mv.Dest); err != nil {
		o.log.Warn("move failed", "src", mv.Source, "dest", mv.Dest, "error", err)
		return MoveResult{Move: mv, Err: err}
	}
	o.log.Debug("file moved", "src", mv.Source, "dest", mv.Dest)
	return MoveResult{Move: mv, Bytes: size, Success: true}
}

// checkDestRoot verifies the destination root exists and is a
// directory. It is never created implicitly.
func checkDestRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("destination root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}
