// Package selftest synthesizes a camera card in a temporary
// directory, organizes it into a second one, and verifies the
// resulting grouping. It needs no real card and no encoder binary.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/repsac/gp-sort-sequences/internal/organizer"
	"github.com/repsac/gp-sort-sequences/internal/scan"
	"github.com/repsac/gp-sort-sequences/pkg/gopro"
)

const (
	// cardFolders is how many DCIM folders the synthesized card gets
	// at minimum; folderChunk is the FAT32-style cap of frames per
	// folder, which makes long sequences span folder boundaries.
	cardFolders = 6
	folderChunk = 1000

	// Sequence run lengths, inclusive.
	minRun = 500
	maxRun = 1000
)

// Options configures a self-test run.
type Options struct {
	Movie  bool
	DryRun bool
}

// Run builds the card, runs the full pipeline against it, and checks
// the outcome. Movie mode forces a dry run so no encoder is required.
// Both temporary directories are removed on the way out, pass or
// fail.
func Run(ctx context.Context, opts Options, log *slog.Logger) error {
	srcRoot, err := os.MkdirTemp("", "gpsort-selftest-card-")
	if err != nil {
		return fmt.Errorf("create card directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(srcRoot) }()

	destRoot, err := os.MkdirTemp("", "gpsort-selftest-out-")
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(destRoot) }()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	frames, err := synthesizeCard(srcRoot, rnd)
	if err != nil {
		return fmt.Errorf("synthesize card: %w", err)
	}
	if err := checkCardChunking(srcRoot); err != nil {
		return err
	}
	log.Info("card synthesized", "root", srcRoot, "frames", frames)

	dryRun := opts.DryRun || opts.Movie

	entries, err := scan.Files(ctx, []string{srcRoot}, destRoot)
	if err != nil {
		return err
	}
	plan, err := organizer.BuildPlan(destRoot, entries)
	if err != nil {
		return err
	}
	org := organizer.New(organizer.Options{Movie: opts.Movie, DryRun: dryRun}, log)
	result, err := org.Execute(ctx, plan)
	if err != nil {
		return err
	}

	if err := verify(plan, result, frames*2); err != nil {
		return err
	}
	if !dryRun {
		if err := verifyOnDisk(plan); err != nil {
			return err
		}
	}

	log.Info("self-test passed",
		"sequences", len(plan.Sequences),
		"files", frames*2)
	return nil
}

// synthesizeCard writes a fake DCIM card under root and returns the
// number of distinct frames created. Frame numbers come in
// consecutive runs, one run per camera sequence, each run picking up
// the ordinal where the previous stopped; every frame is touched as
// both a JPG and a GPR, the way the camera shoots RAW time-lapses.
func synthesizeCard(root string, rnd *rand.Rand) (int, error) {
	type stem struct{ seq, ordinal int }

	chunks := [][]stem{nil}
	counter := folderChunk
	ordinal := 1
	for seqNum := 1; len(chunks) < cardFolders; seqNum++ {
		runLen := minRun + rnd.Intn(maxRun-minRun+1)
		for end := ordinal + runLen; ordinal < end; ordinal++ {
			if counter == 0 {
				counter = folderChunk
				chunks = append(chunks, nil)
			}
			last := len(chunks) - 1
			chunks[last] = append(chunks[last], stem{seq: seqNum, ordinal: ordinal})
			counter--
		}
	}

	frames := 0
	for i, chunk := range chunks {
		dir := filepath.Join(root, fmt.Sprintf("%03dGOPRO", 100+i))
		if err := os.Mkdir(dir, 0o755); err != nil {
			return 0, err
		}
		for _, st := range chunk {
			for _, format := range []gopro.Format{gopro.FormatJPG, gopro.FormatGPR} {
				still := gopro.Still{Sequence: st.seq, Ordinal: st.ordinal, Format: format}
				if err := os.WriteFile(filepath.Join(dir, still.Name()), nil, 0o644); err != nil {
					return 0, err
				}
			}
		}
		frames += len(chunk)
	}
	return frames, nil
}

// checkCardChunking verifies the synthesized card looks FAT32-bound:
// every folder but the last holds exactly its cap of files. The last
// holds whatever remained.
func checkCardChunking(root string) error {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("list card: %w", err)
	}
	for i, de := range dirents {
		if i == len(dirents)-1 {
			break
		}
		files, err := os.ReadDir(filepath.Join(root, de.Name()))
		if err != nil {
			return fmt.Errorf("list card folder: %w", err)
		}
		if len(files) != 2*folderChunk {
			return fmt.Errorf("folder %s holds %d files, want %d", de.Name(), len(files), 2*folderChunk)
		}
	}
	return nil
}

// verify checks the planned grouping: everything synthesized was
// classified and moved, destinations sit in the right format folder,
// and each sequence's ordinals are consecutive per format.
func verify(plan *organizer.Plan, result *organizer.Result, wantFiles int) error {
	if len(plan.Sequences) == 0 {
		return errors.New("no media was found for testing")
	}
	if n := len(plan.Skipped); n != 0 {
		return fmt.Errorf("%d synthesized files were not classified", n)
	}
	if n := len(plan.Conflicts); n != 0 {
		return fmt.Errorf("%d destination conflicts in a collision-free card", n)
	}
	if n := result.ErrorCount(); n != 0 {
		return fmt.Errorf("%d files failed", n)
	}
	if got := result.MovedCount(); got != wantFiles {
		return fmt.Errorf("moved %d files, synthesized %d", got, wantFiles)
	}

	for _, seq := range plan.Sequences {
		byFormat := make(map[gopro.Format][]int)
		for _, mv := range seq.Moves {
			base := filepath.Base(mv.Dest)
			if !strings.HasSuffix(base, "."+mv.Still.Format.String()) {
				return fmt.Errorf("extensions mismatched %s != %s", mv.Still.Format, base)
			}
			wantDir := filepath.Join(plan.DestRoot, seq.Name(), mv.Still.Format.String())
			if filepath.Dir(mv.Dest) != wantDir {
				return fmt.Errorf("%s planned into %s, want %s", base, filepath.Dir(mv.Dest), wantDir)
			}
			byFormat[mv.Still.Format] = append(byFormat[mv.Still.Format], mv.Still.Ordinal)
		}
		for format, ordinals := range byFormat {
			if !consecutive(ordinals) {
				return fmt.Errorf("sequence %s/%s is not sequential", seq.Name(), format)
			}
		}
	}
	return nil
}

// verifyOnDisk compares each sequence folder's contents against the
// plan after a real run: same files, nothing extra.
func verifyOnDisk(plan *organizer.Plan) error {
	for _, seq := range plan.Sequences {
		want := make(map[string]map[string]bool) // format -> basenames
		for _, mv := range seq.Moves {
			f := mv.Still.Format.String()
			if want[f] == nil {
				want[f] = make(map[string]bool)
			}
			want[f][filepath.Base(mv.Dest)] = true
		}
		for format, names := range want {
			dir := filepath.Join(plan.DestRoot, seq.Name(), format)
			dirents, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("list output folder: %w", err)
			}
			if len(dirents) != len(names) {
				return fmt.Errorf("%s holds %d files, planned %d", dir, len(dirents), len(names))
			}
			for _, de := range dirents {
				if !names[de.Name()] {
					return fmt.Errorf("unplanned file %s in %s", de.Name(), dir)
				}
			}
		}
	}
	return nil
}

func consecutive(ordinals []int) bool {
	sort.Ints(ordinals)
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i] != ordinals[i-1]+1 {
			return false
		}
	}
	return true
}
