package model

import "time"

// Chapter is one chapter marker to be written into the output file.
//
// A well-formed chapter satisfies 0 <= Start < End. A well-formed chapter
// list is ordered and non-overlapping; by convention each chapter starts
// where the previous one ended. Chapter lists are produced once per source
// file and read-only afterwards.
type Chapter struct {
	// Title is the chapter title. Extraction fills in "Chapter N" when the
	// source provides none, so this is never empty in a returned list.
	Title string

	// Start is the chapter start offset from the beginning of the file.
	Start time.Duration

	// End is the chapter end offset. Always greater than Start.
	End time.Duration
}

// Valid reports whether the chapter has sane boundaries on its own.
func (c Chapter) Valid() bool {
	return c.Start >= 0 && c.End > c.Start
}

// Artwork is a resolved cover image ready for embedding.
type Artwork struct {
	// Data holds the raw encoded image bytes.
	Data []byte

	// MIMEType is the detected image type, e.g. "image/jpeg".
	MIMEType string

	// Source describes where the image came from, for reporting:
	// "sidecar", "cover file", or "embedded".
	Source string
}
