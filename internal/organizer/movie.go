package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/repsac/gp-sort-sequences/internal/encoder"
	"github.com/repsac/gp-sort-sequences/pkg/gopro"
)

// buildMovies assembles one movie per output sequence from the JPG
// frames sitting in its subfolder after the move phase. Failures are
// per-sequence and never stop the remaining assemblies.
func (o *Organizer) buildMovies(ctx context.Context, plan *Plan, result *Result) error {
	for _, seq := range plan.Sequences {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Movies = append(result.Movies, o.buildMovie(ctx, plan.DestRoot, seq))
	}
	return nil
}

func (o *Organizer) buildMovie(ctx context.Context, destRoot string, seq Sequence) MovieResult {
	seqDir := filepath.Join(destRoot, seq.Name())
	res := MovieResult{
		Sequence: seq.Number,
		Path:     filepath.Join(seqDir, seq.Name()+".MP4"),
	}

	if o.dryRun {
		for _, mv := range seq.Moves {
			if mv.Still.Format == gopro.FormatJPG {
				res.Frames++
			}
		}
		if res.Frames == 0 {
			res.Skipped = true
			return res
		}
		o.log.Info("would assemble movie", "output", res.Path, "frames", res.Frames)
		res.Success = true
		return res
	}

	frames, err := jpgFrames(filepath.Join(seqDir, gopro.FormatJPG.String()))
	if err != nil {
		o.log.Warn("assemble movie failed", "output", res.Path, "error", err)
		res.Err = err
		return res
	}
	if len(frames) == 0 {
		o.log.Info("no frames to assemble", "sequence", seq.Name())
		res.Skipped = true
		return res
	}

	res.Frames = len(frames)
	job := encoder.Job{Frames: frames, OutputPath: res.Path}
	if err := o.enc.Encode(ctx, job); err != nil {
		o.log.Warn("assemble movie failed", "output", res.Path, "error", err)
		res.Err = err
		return res
	}
	o.log.Info("movie assembled", "output", res.Path, "frames", res.Frames)
	res.Success = true
	return res
}

// jpgFrames lists the JPG frames in dir in ascending ordinal order. A
// missing directory yields an empty list, not an error: a sequence
// may hold raw files only.
func jpgFrames(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list frames: %w", err)
	}

	type frame struct {
		ordinal int
		name    string
	}
	frames := make([]frame, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		still, reason := gopro.Classify(de.Name())
		if reason != gopro.SkipNone || still.Format != gopro.FormatJPG {
			continue
		}
		frames = append(frames, frame{ordinal: still.Ordinal, name: de.Name()})
	}
	sort.Slice(frames, func(i, j int) bool {
		if frames[i].ordinal != frames[j].ordinal {
			return frames[i].ordinal < frames[j].ordinal
		}
		return frames[i].name < frames[j].name
	})

	paths := make([]string, len(frames))
	for i, f := range frames {
		paths[i] = filepath.Join(dir, f.name)
	}
	return paths, nil
}
