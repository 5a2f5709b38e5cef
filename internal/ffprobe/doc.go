// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The converter only needs container-level information: format tags,
// total duration, and the embedded chapter list. Inspect runs
//
//	ffprobe -v error -show_format -show_chapters -of json -- <path>
//
// and decodes the response into a Result.
//
// Helper methods handle the quirks of ffprobe output: numeric fields are
// strings, tag key casing varies between containers, and chapter offsets
// may be missing entirely on damaged files.
package ffprobe
