// Package tags maps container metadata onto the output tag set.
//
// The mapping is a verbatim string copy of recognized fields. Fields the
// container does not carry are omitted entirely; nothing is inferred,
// normalized, or filled with placeholders.
package tags

import (
	"github.com/handiism/audiobook-converter/internal/ffprobe"
)

// recognizedFields are the container tag names copied to the output,
// canonical lowercase. M4B files commonly carry a few Apple-specific
// names for the same concepts; aliases map those onto the canonical key.
var recognizedFields = []string{
	"title",
	"artist",
	"album",
	"album_artist",
	"date",
	"genre",
	"composer",
	"comment",
	"copyright",
	"description",
}

// aliases maps alternate container tag names onto canonical keys.
// Only consulted when the canonical key itself is absent.
var aliases = map[string]string{
	"narrator":  "composer", // audiobook convention: narrator in the composer field
	"performer": "artist",
}

// Mapper copies recognized metadata fields from a probed container.
type Mapper struct{}

// NewMapper creates a new Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map builds the output tag set from the container's format tags.
//
// The result contains exactly the recognized fields present in the
// source, keyed by canonical lowercase name. Lookup is case-insensitive
// since containers disagree about tag key casing.
func (m *Mapper) Map(probe ffprobe.Result) map[string]string {
	out := make(map[string]string)

	for _, field := range recognizedFields {
		if value, ok := probe.Tag(field); ok && value != "" {
			out[field] = value
		}
	}

	for alias, canonical := range aliases {
		if _, taken := out[canonical]; taken {
			continue
		}
		if value, ok := probe.Tag(alias); ok && value != "" {
			out[canonical] = value
		}
	}

	return out
}
