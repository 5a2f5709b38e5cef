// Package encoder wraps the external ffmpeg process.
//
// The Encoder interface is the seam between the conversion pipeline and
// the actual transcoder: input path, output path, and a fixed VBR quality
// in; an encoded file or a failure with a diagnostic message out. Tests
// substitute a fake; production uses FFmpeg.
//
// FFmpeg additionally exposes embedded cover extraction (the artwork
// resolver's last candidate source) and a preflight availability check.
package encoder
