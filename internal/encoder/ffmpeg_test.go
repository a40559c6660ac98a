package encoder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFFmpeg writes an executable script standing in for ffmpeg. The
// script records its arguments and stdin, then creates its last
// argument the way ffmpeg creates its output file.
func fakeFFmpeg(t *testing.T, dir string) (bin, argsFile, stdinFile string) {
	t.Helper()
	argsFile = filepath.Join(dir, "args.txt")
	stdinFile = filepath.Join(dir, "stdin.bin")
	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
cat > %q
out=""
for a in "$@"; do out="$a"; done
: > "$out"
`, argsFile, stdinFile)
	bin = filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, argsFile, stdinFile
}

func writeFrame(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFFmpeg_MissingBinary(t *testing.T) {
	_, err := NewFFmpeg("no-such-encoder-binary", 0, 0, testLogger())
	require.Error(t, err)
	assert.ErrorContains(t, err, "encoder binary")
}

func TestFFmpeg_Encode(t *testing.T) {
	dir := t.TempDir()
	bin, argsFile, stdinFile := fakeFFmpeg(t, dir)

	enc, err := NewFFmpeg(bin, 0, 0, testLogger())
	require.NoError(t, err)

	frames := []string{
		writeFrame(t, dir, "G0010001.JPG", "first"),
		writeFrame(t, dir, "G0010002.JPG", "second"),
		writeFrame(t, dir, "G0010003.JPG", "third"),
	}
	out := filepath.Join(dir, "SEQ001.MP4")

	require.NoError(t, enc.Encode(context.Background(), Job{Frames: frames, OutputPath: out}))

	raw, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	assert.Equal(t, []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "image2pipe",
		"-framerate", "30",
		"-i", "-",
		"-vf", "scale=1920:-2",
		"-c:v", "libx264",
		"-crf", "25",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y",
		out,
	}, args)

	// Frames arrive on stdin in playback order.
	stdin, err := os.ReadFile(stdinFile)
	require.NoError(t, err)
	assert.Equal(t, "firstsecondthird", string(stdin))

	assert.FileExists(t, out)
}

func TestFFmpeg_Encode_CustomQuality(t *testing.T) {
	dir := t.TempDir()
	bin, argsFile, _ := fakeFFmpeg(t, dir)

	enc, err := NewFFmpeg(bin, 1280, 18, testLogger())
	require.NoError(t, err)

	frames := []string{writeFrame(t, dir, "G0010001.JPG", "x")}
	job := Job{Frames: frames, OutputPath: filepath.Join(dir, "out.MP4"), FrameRate: 24}
	require.NoError(t, enc.Encode(context.Background(), job))

	raw, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "scale=1280:-2")
	assert.Contains(t, string(raw), "18")
	assert.Contains(t, string(raw), "24")
}

func TestFFmpeg_Encode_NoFrames(t *testing.T) {
	dir := t.TempDir()
	bin, _, _ := fakeFFmpeg(t, dir)

	enc, err := NewFFmpeg(bin, 0, 0, testLogger())
	require.NoError(t, err)

	err = enc.Encode(context.Background(), Job{OutputPath: filepath.Join(dir, "out.MP4")})
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestFFmpeg_Encode_BinaryFails(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.MP4")
	script := `#!/bin/sh
cat > /dev/null
out=""
for a in "$@"; do out="$a"; done
: > "$out"
echo "pipe:: Invalid data found when processing input" >&2
exit 1
`
	bin := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	enc, err := NewFFmpeg(bin, 0, 0, testLogger())
	require.NoError(t, err)

	frames := []string{writeFrame(t, dir, "G0010001.JPG", "x")}
	err = enc.Encode(context.Background(), Job{Frames: frames, OutputPath: out})
	require.Error(t, err)
	assert.ErrorContains(t, err, "Invalid data found")

	// Partial output is cleaned up.
	assert.NoFileExists(t, out)
}

func TestFFmpeg_Encode_MissingFrame(t *testing.T) {
	dir := t.TempDir()
	bin, _, _ := fakeFFmpeg(t, dir)

	enc, err := NewFFmpeg(bin, 0, 0, testLogger())
	require.NoError(t, err)

	out := filepath.Join(dir, "out.MP4")
	job := Job{
		Frames:     []string{filepath.Join(dir, "G0010001.JPG")},
		OutputPath: out,
	}
	err = enc.Encode(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, out)
}
