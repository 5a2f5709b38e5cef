// Package chapters builds the output chapter list for one audiobook.
//
// Chapters come from two places: the container's own chapter atoms
// (via ffprobe) and an optional cue sheet sidecar. The merge policy is:
//
//   - Container chapter boundaries are authoritative for timing whenever
//     the container has chapters at all.
//   - Cue tracks only supply titles for container chapters that have none
//     (matched by position), or whole chapters when the container has none.
//
// Malformed entries (negative offsets, start >= end, overlaps with the
// previous chapter) are dropped with a warning instead of failing the
// conversion; a zero-chapter result is valid.
package chapters

import (
	"fmt"
	"time"

	"github.com/handiism/audiobook-converter/internal/cue"
	"github.com/handiism/audiobook-converter/internal/ffprobe"
	"github.com/handiism/audiobook-converter/internal/model"
)

// Extractor merges container and cue sheet chapter data.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract produces the ordered chapter list for one source file.
//
// probe is the ffprobe result for the container, cueTracks the parsed cue
// sidecar (nil or empty when there is none), and total the container
// duration used to close the final cue-derived chapter.
//
// Returns the chapter list plus human-readable warnings for every entry
// that had to be dropped or adjusted. The returned list is empty or
// strictly ordered with non-overlapping, positive-length chapters.
func (e *Extractor) Extract(probe ffprobe.Result, cueTracks []cue.Track, total time.Duration) ([]model.Chapter, []string) {
	if len(probe.Chapters) > 0 {
		chs, warnings := e.fromContainer(probe.Chapters)
		e.fillTitles(chs, cueTracks)
		return chs, warnings
	}
	return e.fromCue(cueTracks, total)
}

// fromContainer converts and validates the container's chapter atoms.
func (e *Extractor) fromContainer(raw []ffprobe.Chapter) ([]model.Chapter, []string) {
	var warnings []string
	chs := make([]model.Chapter, 0, len(raw))

	var prevEnd time.Duration
	for i, rc := range raw {
		ch := model.Chapter{
			Title: rc.Title(),
			Start: rc.Start(),
			End:   rc.End(),
		}
		if ch.Title == "" {
			ch.Title = defaultTitle(len(chs))
		}

		if !ch.Valid() {
			warnings = append(warnings, fmt.Sprintf("dropping chapter %d: invalid boundaries (%v - %v)", i+1, ch.Start, ch.End))
			continue
		}
		if ch.Start < prevEnd {
			warnings = append(warnings, fmt.Sprintf("dropping chapter %d: overlaps previous chapter (%v < %v)", i+1, ch.Start, prevEnd))
			continue
		}

		prevEnd = ch.End
		chs = append(chs, ch)
	}

	return chs, warnings
}

// fromCue synthesizes chapters from cue tracks when the container has none.
//
// Each track ends where the next begins; the final track ends at the
// container duration. A final track past the known duration cannot be
// closed and is dropped with a warning.
func (e *Extractor) fromCue(tracks []cue.Track, total time.Duration) ([]model.Chapter, []string) {
	var warnings []string
	chs := make([]model.Chapter, 0, len(tracks))

	for i, track := range tracks {
		ch := model.Chapter{
			Title: track.Title,
			Start: track.Start,
		}
		if ch.Title == "" {
			ch.Title = defaultTitle(len(chs))
		}

		if i+1 < len(tracks) {
			ch.End = tracks[i+1].Start
		} else {
			ch.End = total
		}

		if !ch.Valid() {
			warnings = append(warnings, fmt.Sprintf("dropping cue track %d: invalid boundaries (%v - %v)", track.Number, ch.Start, ch.End))
			continue
		}

		chs = append(chs, ch)
	}

	return chs, warnings
}

// fillTitles copies cue track titles onto untitled container chapters.
//
// Matching is positional: cue track N titles chapter N. Container timing
// is never touched here.
func (e *Extractor) fillTitles(chs []model.Chapter, tracks []cue.Track) {
	for i := range chs {
		if i >= len(tracks) {
			return
		}
		if chs[i].Title == defaultTitle(i) && tracks[i].Title != "" {
			chs[i].Title = tracks[i].Title
		}
	}
}

func defaultTitle(index int) string {
	return fmt.Sprintf("Chapter %d", index+1)
}
