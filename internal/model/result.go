package model

// Result records the outcome of converting a single audiobook.
//
// The orchestrator produces exactly one Result per discovered source file,
// in discovery order, regardless of individual failures.
type Result struct {
	// Book is the source file this result belongs to.
	Book *Audiobook

	// Success reports whether the file was transcoded and tagged.
	Success bool

	// Err holds the failure cause when Success is false.
	Err error

	// Chapters is the number of chapter markers written to the output.
	Chapters int

	// ArtworkEmbedded reports whether a cover image was written to the output.
	ArtworkEmbedded bool

	// ArtworkSource describes where the cover came from when embedded.
	ArtworkSource string

	// CueUsed reports whether a cue sheet sidecar contributed chapters or titles.
	CueUsed bool
}
