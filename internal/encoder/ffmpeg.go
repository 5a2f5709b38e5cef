package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Job describes one transcode invocation.
//
// The quality level is a batch-wide setting; the orchestrator never
// varies it per file.
type Job struct {
	// InputPath is the source container file.
	InputPath string

	// OutputPath is the MP3 file to produce. Overwritten if present.
	OutputPath string

	// Quality is the libmp3lame VBR quality level (0 = best, 9 = worst).
	Quality int
}

// Encoder transcodes one source file into an MP3.
//
// Implementations block until the encode finishes or the context is
// cancelled, and return a failure with a diagnostic message rather than
// panicking or aborting the batch.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// FFmpeg invokes the ffmpeg binary as an external process.
//
// Only the audio stream is transcoded. Container metadata and chapter
// atoms are deliberately stripped: the tagger owns the output tag set and
// rebuilds it from the reconciled chapters/artwork/tags, so leftover
// container data must not leak through.
type FFmpeg struct {
	// Binary is the ffmpeg executable. Empty means "ffmpeg" on PATH.
	Binary string
}

// NewFFmpeg creates an FFmpeg encoder using the given binary path.
func NewFFmpeg(binary string) *FFmpeg {
	return &FFmpeg{Binary: binary}
}

// Encode runs a blocking ffmpeg transcode for the job.
//
// On a nonzero exit the returned error carries the tail of ffmpeg's
// stderr, which holds the actual diagnostic.
func (f *FFmpeg) Encode(ctx context.Context, job Job) error {
	cmd := exec.CommandContext(ctx, f.binary(), encodeArgs(job)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg encode: %w: %s", err, tail(stderr.String()))
	}
	return nil
}

// ExtractArtwork copies the container's embedded cover image to memory.
//
// M4B cover art is stored as an attached picture stream; ffmpeg copies it
// without re-encoding via image2pipe. Returns an error when the container
// has no picture stream, which the resolver treats as "no embedded art".
func (f *FFmpeg) ExtractArtwork(ctx context.Context, inputPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, f.binary(),
		"-v", "error",
		"-i", inputPath,
		"-map", "0:v:0",
		"-c", "copy",
		"-f", "image2pipe",
		"pipe:1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg artwork extract: %w: %s", err, tail(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg artwork extract: empty image stream")
	}
	return stdout.Bytes(), nil
}

// Check verifies that the ffmpeg binary is runnable.
//
// Called once before the batch starts so a missing installation is
// reported up front instead of failing every file.
func (f *FFmpeg) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, f.binary(), "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not available (%s): %w", f.binary(), err)
	}
	return nil
}

func (f *FFmpeg) binary() string {
	if strings.TrimSpace(f.Binary) == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// encodeArgs builds the ffmpeg argument list for a job.
func encodeArgs(job Job) []string {
	return []string{
		"-v", "error",
		"-i", job.InputPath,
		"-map", "0:a",
		"-map_metadata", "-1",
		"-map_chapters", "-1",
		"-c:a", "libmp3lame",
		"-q:a", strconv.Itoa(job.Quality),
		"-y",
		job.OutputPath,
	}
}

// tail returns the last few lines of process output for error messages.
func tail(output string) string {
	output = strings.TrimSpace(output)
	lines := strings.Split(output, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " | ")
}
