package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Result represents the parsed output of an ffprobe inspection.
//
// Only the pieces the converter needs are modeled: container-level
// metadata tags, the container duration, and the chapter list.
type Result struct {
	Format   Format    `json:"format"`
	Chapters []Chapter `json:"chapters"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}

// Chapter is one chapter entry as reported by ffprobe.
//
// Offsets arrive as decimal-second strings ("start_time"/"end_time");
// the raw time-base fields are ignored since ffprobe already converts.
type Chapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
//
// The binary argument allows overriding the ffprobe executable; an empty
// string falls back to "ffprobe" on PATH. On failure the error message
// includes ffprobe's trimmed output for diagnostics.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_chapters",
		"-of", "json",
		"--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Duration returns the container duration, or 0 when unavailable.
func (r Result) Duration() time.Duration {
	return parseSeconds(r.Format.Duration)
}

// Tag returns the named format tag, matching case-insensitively.
//
// ffprobe preserves whatever casing the container uses; M4B files in the
// wild mix "title" and "Title", so lookups normalize.
func (r Result) Tag(name string) (string, bool) {
	for key, value := range r.Format.Tags {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

// Title returns the chapter title tag, or "" when absent.
func (c Chapter) Title() string {
	for key, value := range c.Tags {
		if strings.EqualFold(key, "title") {
			return value
		}
	}
	return ""
}

// Start returns the chapter start offset, or a negative duration when the
// field is missing or malformed so callers can reject the entry.
func (c Chapter) Start() time.Duration {
	return parseOffset(c.StartTime)
}

// End returns the chapter end offset, or a negative duration when the
// field is missing or malformed.
func (c Chapter) End() time.Duration {
	return parseOffset(c.EndTime)
}

func parseSeconds(value string) time.Duration {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return time.Duration(parsed * float64(time.Second))
}

func parseOffset(value string) time.Duration {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return -time.Second
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return -time.Second
	}
	return time.Duration(parsed * float64(time.Second))
}
