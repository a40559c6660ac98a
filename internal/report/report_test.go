package report

import (
	"errors"
	"testing"

	"github.com/repsac/gp-sort-sequences/internal/organizer"
	"github.com/repsac/gp-sort-sequences/pkg/gopro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func move(device, ordinal int, format gopro.Format, src, dest string) organizer.Move {
	return organizer.Move{
		Still:  gopro.Still{Sequence: device, Ordinal: ordinal, Format: format},
		Source: src,
		Dest:   dest,
	}
}

func TestBuild_CondensesRun(t *testing.T) {
	mv1 := move(7, 1, gopro.FormatJPG, "/card/G0070001.JPG", "/photos/SEQ001/JPG/G0070001.JPG")
	mv2 := move(7, 2, gopro.FormatJPG, "/card/G0070002.JPG", "/photos/SEQ001/JPG/G0070002.JPG")
	mv3 := move(12, 1, gopro.FormatGPR, "/card/G0120001.GPR", "/photos/SEQ002/GPR/G0120001.GPR")

	plan := &organizer.Plan{
		DestRoot: "/photos",
		Sequences: []organizer.Sequence{
			{Number: 1, Device: 7, Moves: []organizer.Move{mv1, mv2}},
			{Number: 2, Device: 12, Moves: []organizer.Move{mv3}},
		},
		Skipped: []organizer.Skip{{Path: "/card/G9990042.MP4", Reason: gopro.SkipVideo}},
	}
	result := &organizer.Result{
		Moves: []organizer.MoveResult{
			{Move: mv1, Bytes: 1024, Success: true},
			{Move: mv2, Err: errors.New("device gone")},
			{Move: mv3, Bytes: 2048, Success: true},
		},
		Movies: []organizer.MovieResult{
			{Sequence: 1, Path: "/photos/SEQ001/SEQ001.MP4", Frames: 1, Success: true},
			{Sequence: 2, Path: "/photos/SEQ002/SEQ002.MP4", Skipped: true},
		},
	}

	s := Build(plan, result, false)

	assert.Equal(t, 2, s.Moved)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, int64(3072), s.Bytes)
	assert.Equal(t, 1, s.Movies)
	assert.Equal(t, 1, s.MoviesSkipped)
	assert.Zero(t, s.MoviesFailed)

	require.Len(t, s.Sequences, 2)

	first := s.Sequences[0]
	assert.Equal(t, "SEQ001", first.Name)
	assert.Equal(t, 7, first.Device)
	assert.Equal(t, 1, first.Moved)
	assert.Equal(t, 1, first.Failed)
	assert.Equal(t, int64(1024), first.Bytes)
	assert.Equal(t, "SEQ001.MP4", first.Movie)

	second := s.Sequences[1]
	assert.Equal(t, "SEQ002", second.Name)
	assert.Equal(t, "no frames", second.Movie)
	assert.Equal(t, int64(2048), second.Bytes)
	assert.Zero(t, second.Failed)
}

func TestBuild_FailedMovie(t *testing.T) {
	mv := move(3, 1, gopro.FormatJPG, "/card/G0030001.JPG", "/photos/SEQ001/JPG/G0030001.JPG")
	plan := &organizer.Plan{
		DestRoot:  "/photos",
		Sequences: []organizer.Sequence{{Number: 1, Device: 3, Moves: []organizer.Move{mv}}},
	}
	result := &organizer.Result{
		Moves:  []organizer.MoveResult{{Move: mv, Bytes: 10, Success: true}},
		Movies: []organizer.MovieResult{{Sequence: 1, Path: "/photos/SEQ001/SEQ001.MP4", Err: errors.New("encoder exploded")}},
	}

	s := Build(plan, result, false)

	assert.Equal(t, 1, s.MoviesFailed)
	assert.Equal(t, "failed", s.Sequences[0].Movie)
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result *organizer.Result
		want   int
	}{
		{"clean", nil, &organizer.Result{Moves: []organizer.MoveResult{{Success: true}}}, ExitOK},
		{"no result", nil, nil, ExitOK},
		{"move failure", nil, &organizer.Result{Moves: []organizer.MoveResult{{Err: errors.New("x")}}}, ExitErrors},
		{"movie failure", nil, &organizer.Result{Movies: []organizer.MovieResult{{Err: errors.New("x")}}}, ExitErrors},
		{"fatal beats partial result", errors.New("bad destination"), &organizer.Result{}, ExitFatal},
		{"fatal without result", errors.New("bad destination"), nil, ExitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitStatus(tt.err, tt.result))
		})
	}
}
