// Package report condenses a run's plan and result into the
// end-of-run summary and maps outcomes to the process exit status.
package report

import (
	"path/filepath"

	"github.com/repsac/gp-sort-sequences/internal/organizer"
)

// Exit statuses for a run.
const (
	ExitOK     = 0 // everything attempted succeeded
	ExitErrors = 1 // run completed, but some files or movies failed
	ExitFatal  = 2 // nothing ran: input, destination, config or lock
)

// ExitStatus maps a run outcome to the process exit status. A non-nil
// err is fatal regardless of any partial result.
func ExitStatus(err error, result *organizer.Result) int {
	if err != nil {
		return ExitFatal
	}
	if result != nil && result.ErrorCount() > 0 {
		return ExitErrors
	}
	return ExitOK
}

// SequenceLine is one output sequence's row in the summary.
type SequenceLine struct {
	Name   string
	Device int
	Moved  int
	Failed int
	Bytes  int64
	Movie  string // empty when no assembly was attempted
}

// Summary is the rendered view of one run.
type Summary struct {
	DryRun        bool
	Sequences     []SequenceLine
	Moved         int
	Failed        int
	Skipped       int
	Bytes         int64
	Movies        int
	MoviesFailed  int
	MoviesSkipped int
}

// Build condenses a plan and its execution result into a summary.
func Build(plan *organizer.Plan, result *organizer.Result, dryRun bool) *Summary {
	s := &Summary{
		DryRun:  dryRun,
		Moved:   result.MovedCount(),
		Bytes:   result.MovedBytes(),
		Skipped: len(plan.Skipped),
	}

	byDevice := make(map[int]int, len(plan.Sequences)) // device sequence -> line index
	byNumber := make(map[int]int, len(plan.Sequences)) // output number -> line index
	for _, seq := range plan.Sequences {
		byDevice[seq.Device] = len(s.Sequences)
		byNumber[seq.Number] = len(s.Sequences)
		s.Sequences = append(s.Sequences, SequenceLine{Name: seq.Name(), Device: seq.Device})
	}

	for _, mr := range result.Moves {
		idx, ok := byDevice[mr.Move.Still.Sequence]
		if !ok {
			continue
		}
		line := &s.Sequences[idx]
		if mr.Success {
			line.Moved++
			line.Bytes += mr.Bytes
		} else {
			line.Failed++
			s.Failed++
		}
	}

	for _, mv := range result.Movies {
		idx, ok := byNumber[mv.Sequence]
		if !ok {
			continue
		}
		line := &s.Sequences[idx]
		switch {
		case mv.Err != nil:
			line.Movie = "failed"
			s.MoviesFailed++
		case mv.Skipped:
			line.Movie = "no frames"
			s.MoviesSkipped++
		case mv.Success:
			line.Movie = filepath.Base(mv.Path)
			s.Movies++
		}
	}

	return s
}
