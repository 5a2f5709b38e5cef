package model

import (
	"path/filepath"
	"strings"
)

// Audiobook represents one M4B source file discovered in the input folder.
//
// Audiobook carries the source path plus the computed output location.
// Companion files (cue sheets, sidecar cover images) are located by
// base-name convention in the same directory as the source, so the type
// exposes helpers for both.
//
// Example:
//
//	book := model.NewAudiobook("/books/Dune.m4b", "/books/converted_mp3")
//	// book.BaseName()   == "Dune"
//	// book.CuePath()    == "/books/Dune.cue"
//	// book.OutputPath   == "/books/converted_mp3/Dune.mp3"
type Audiobook struct {
	// Path is the absolute or relative path to the .m4b source file.
	Path string

	// OutputPath is the computed path of the converted MP3 file.
	OutputPath string
}

// NewAudiobook creates an Audiobook and computes its output path.
//
// The output file keeps the source base name with a .mp3 extension and is
// placed inside outputDir. The directory itself is created later by the
// orchestrator, not here.
func NewAudiobook(path, outputDir string) *Audiobook {
	b := &Audiobook{Path: path}
	b.OutputPath = filepath.Join(outputDir, b.BaseName()+".mp3")
	return b
}

// BaseName returns the source file name without directory or extension.
func (b *Audiobook) BaseName() string {
	name := filepath.Base(b.Path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Dir returns the directory containing the source file.
//
// Sidecar files (cue sheet, cover images) are always searched here.
func (b *Audiobook) Dir() string {
	return filepath.Dir(b.Path)
}

// CuePath returns the path where a cue sheet sidecar would live.
//
// The file is not guaranteed to exist; callers should os.Stat it.
func (b *Audiobook) CuePath() string {
	return filepath.Join(b.Dir(), b.BaseName()+".cue")
}
