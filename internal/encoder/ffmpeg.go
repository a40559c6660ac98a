package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Encoding defaults. Width is the horizontal size movies are scaled
// to; CRF is the x264 constant rate factor.
const (
	DefaultWidth = 1920
	DefaultCRF   = 25
)

// ErrNoFrames is returned when a job carries an empty frame list.
var ErrNoFrames = errors.New("no frames to encode")

// FFmpeg runs an external ffmpeg binary. Frames are fed over stdin as
// an image2pipe stream, so playback order is exactly the job's frame
// order with no dependence on on-disk naming.
type FFmpeg struct {
	bin    string
	width  int
	crf    int
	logger *slog.Logger
}

// NewFFmpeg resolves bin on PATH (or verifies an explicit path) and
// returns a runner with the given scale width and quality. Zero width
// or crf selects the defaults.
func NewFFmpeg(bin string, width, crf int, logger *slog.Logger) (*FFmpeg, error) {
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("encoder binary: %w", err)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if crf <= 0 {
		crf = DefaultCRF
	}
	return &FFmpeg{bin: resolved, width: width, crf: crf, logger: logger}, nil
}

// Bin returns the resolved binary path.
func (f *FFmpeg) Bin() string { return f.bin }

// Encode writes job.OutputPath, overwriting any existing file. On any
// failure the partial output is removed.
func (f *FFmpeg) Encode(ctx context.Context, job Job) error {
	if len(job.Frames) == 0 {
		return ErrNoFrames
	}
	rate := job.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}

	// scale height -2 keeps the aspect ratio while rounding to an
	// even value, which yuv420p requires.
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(rate),
		"-i", "-",
		"-vf", fmt.Sprintf("scale=%d:-2", f.width),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(f.crf),
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y",
		job.OutputPath,
	}

	f.logger.Debug("encoding movie",
		"output", job.OutputPath,
		"frames", len(job.Frames),
		"framerate", rate)

	cmd := exec.CommandContext(ctx, f.bin, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", f.bin, err)
	}

	feedErr := feed(stdin, job.Frames)
	waitErr := cmd.Wait()

	if waitErr != nil {
		_ = os.Remove(job.OutputPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", f.bin, waitErr, msg)
		}
		return fmt.Errorf("%s: %w", f.bin, waitErr)
	}
	if feedErr != nil {
		_ = os.Remove(job.OutputPath)
		return feedErr
	}
	return nil
}

// feed streams each frame file into w in order, then closes it so the
// encoder sees EOF. Writes block until the encoder consumes them,
// which keeps memory flat regardless of sequence length.
func feed(w io.WriteCloser, frames []string) error {
	defer func() { _ = w.Close() }()
	for _, frame := range frames {
		src, err := os.Open(frame)
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		_, err = io.Copy(w, src)
		_ = src.Close()
		if err != nil {
			return fmt.Errorf("feed frame %s: %w", frame, err)
		}
	}
	return nil
}
