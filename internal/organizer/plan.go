package organizer

import (
	"fmt"
	"path/filepath"

	"github.com/repsac/gp-sort-sequences/internal/scan"
	"github.com/repsac/gp-sort-sequences/pkg/gopro"
)

// maxSequences is the largest output number the three-digit folder
// naming can hold.
const maxSequences = 999

// Move is one planned file relocation. Files keep their original
// basename; only the sequence folder above them is renumbered.
type Move struct {
	Still  gopro.Still
	Source string
	Dest   string
}

// Sequence is one renumbered output sequence.
type Sequence struct {
	Number int    // assigned output number, starting at 1
	Device int    // camera-assigned sequence number
	Moves  []Move // in scan order
}

// Name returns the output folder name, SEQ001 style.
func (s Sequence) Name() string {
	return fmt.Sprintf("SEQ%03d", s.Number)
}

// Skip is a scanned file that classification rejected.
type Skip struct {
	Path   string
	Reason gopro.SkipReason
}

// Plan is the full set of relocations for one run. It is built
// without touching the filesystem.
type Plan struct {
	DestRoot  string
	Sequences []Sequence // in assignment order
	Skipped   []Skip
	Conflicts []Move // planned for a destination another move already claims
}

// Stills returns the number of files the plan will move.
func (p *Plan) Stills() int {
	n := 0
	for _, seq := range p.Sequences {
		n += len(seq.Moves)
	}
	return n
}

// BuildPlan classifies the scanned entries and assigns output
// sequence numbers contiguously from 1 in the order device sequences
// are first encountered. The numbering is held entirely in the
// returned plan, so repeated calls never influence each other.
//
// Two entries resolving to the same destination path put the later
// one into Conflicts instead of silently stacking moves. More device
// sequences than three digits can number is an error.
func BuildPlan(destRoot string, entries []scan.Entry) (*Plan, error) {
	plan := &Plan{DestRoot: destRoot}
	assigned := make(map[int]int)        // device sequence -> index into plan.Sequences
	claimed := make(map[string]struct{}) // destination path -> taken

	for _, entry := range entries {
		still, reason := gopro.Classify(entry.Base)
		if reason != gopro.SkipNone {
			plan.Skipped = append(plan.Skipped, Skip{Path: entry.Path, Reason: reason})
			continue
		}

		idx, ok := assigned[still.Sequence]
		if !ok {
			idx = len(plan.Sequences)
			assigned[still.Sequence] = idx
			plan.Sequences = append(plan.Sequences, Sequence{
				Number: idx + 1,
				Device: still.Sequence,
			})
		}
		seq := &plan.Sequences[idx]

		dest := filepath.Join(destRoot, seq.Name(), still.Format.String(), entry.Base)
		mv := Move{Still: still, Source: entry.Path, Dest: dest}
		if _, taken := claimed[dest]; taken {
			plan.Conflicts = append(plan.Conflicts, mv)
			continue
		}
		claimed[dest] = struct{}{}
		seq.Moves = append(seq.Moves, mv)
	}

	if len(plan.Sequences) > maxSequences {
		return nil, fmt.Errorf("%w: %d device sequences", ErrTooManySequences, len(plan.Sequences))
	}
	return plan, nil
}
