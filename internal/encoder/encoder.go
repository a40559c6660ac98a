// Package encoder turns ordered lists of still frames into time-lapse
// movies.
package encoder

import "context"

// DefaultFrameRate is the playback rate for time-lapse movies.
const DefaultFrameRate = 30

// Job describes one movie to produce.
type Job struct {
	Frames     []string // frame paths in playback order
	OutputPath string
	FrameRate  int // frames per second, DefaultFrameRate when zero
}

// Encoder produces a movie from a sequence of still frames.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}
