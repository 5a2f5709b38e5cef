// Package cue parses cue sheet sidecar files.
//
// A cue sheet describes track boundaries for a single audio file:
//
//	FILE "book.m4b" MP4
//	  TRACK 01 AUDIO
//	    TITLE "Opening"
//	    INDEX 01 00:00:00
//	  TRACK 02 AUDIO
//	    TITLE "The Journey"
//	    INDEX 01 31:45:00
//
// Only the pieces the converter needs are extracted: track number, title,
// and the INDEX 01 start offset. Cue time is mm:ss:ff with 75 frames per
// second. Entries that cannot be parsed are skipped rather than failing
// the whole sheet.
package cue

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Track is one TRACK entry from a cue sheet.
type Track struct {
	// Number is the 1-based track number from the sheet.
	Number int

	// Title is the quoted TITLE value, possibly empty.
	Title string

	// Start is the INDEX 01 offset from the beginning of the audio.
	Start time.Duration
}

// framesPerSecond is the cue sheet frame rate (CD sectors).
const framesPerSecond = 75

var trackRe = regexp.MustCompile(`(?s)TRACK (\d+).*?TITLE "(.*?)".*?INDEX \d+ (\d+):(\d+):(\d+)`)

// ParseFile reads and parses a cue sheet from disk.
func ParseFile(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse extracts track entries from cue sheet content.
//
// Tracks are returned sorted by start offset. Malformed entries are
// dropped silently; a sheet with no parseable tracks yields an empty
// slice, which callers treat the same as no sidecar at all.
func Parse(content string) []Track {
	matches := trackRe.FindAllStringSubmatch(content, -1)

	tracks := make([]Track, 0, len(matches))
	for _, match := range matches {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		minutes, err := strconv.Atoi(match[3])
		if err != nil {
			continue
		}
		seconds, err := strconv.Atoi(match[4])
		if err != nil {
			continue
		}
		frames, err := strconv.Atoi(match[5])
		if err != nil {
			continue
		}

		start := time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second +
			time.Duration(frames)*time.Second/framesPerSecond

		tracks = append(tracks, Track{
			Number: number,
			Title:  match[2],
			Start:  start,
		})
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Start < tracks[j].Start
	})

	return tracks
}
