package audio

import (
	"fmt"

	id3v2 "github.com/bogem/id3v2/v2"
	"github.com/handiism/audiobook-converter/internal/model"
)

// TagConfig controls which parts of the output tag set are written.
type TagConfig struct {
	// WriteTags enables text frame writing (title, artist, album, ...).
	WriteTags bool

	// WriteChapters enables CHAP chapter frame writing.
	WriteChapters bool

	// WriteArtwork enables the APIC front cover frame.
	WriteArtwork bool
}

// DefaultTagConfig returns the default tag configuration with every
// part enabled.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		WriteTags:     true,
		WriteChapters: true,
		WriteArtwork:  true,
	}
}

// textFrameIDs maps canonical tag names from the mapper onto ID3v2.4
// text frame IDs. Title, artist, album, and genre go through the
// library's dedicated setters instead.
var textFrameIDs = map[string]string{
	"album_artist": "TPE2",
	"date":         "TDRC",
	"composer":     "TCOM",
	"copyright":    "TCOP",
}

// Tagger writes ID3v2 tags to converted MP3 files.
//
// Tagger owns the whole output tag set: text frames from the mapped
// container metadata, one CHAP frame per chapter, and the front cover
// picture. The encoder strips all container metadata during transcode,
// so whatever Tagger writes is exactly what the output carries.
//
// Example:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(outputPath, tags, chapters, artwork)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the resolved tag set to the MP3 file at path.
//
// Parameters:
//   - path: the transcoded MP3 file (must exist)
//   - tags: canonical-keyed metadata from the tag mapper; absent keys are
//     simply not written
//   - chapters: validated chapter list; empty means no chapter frames
//   - artwork: resolved cover image, nil to skip the picture frame
//
// Returns an error if the file cannot be opened or saved.
func (t *Tagger) SaveTags(path string, tags map[string]string, chapters []model.Chapter, artwork *model.Artwork) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open output for tagging: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.config.WriteTags {
		t.writeTextFrames(tag, tags)
	}

	if t.config.WriteChapters {
		t.writeChapterFrames(tag, chapters)
	}

	if t.config.WriteArtwork && artwork != nil {
		t.writeArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

// writeTextFrames writes the mapped metadata fields.
//
// Only keys present in the map produce frames; the mapper already
// filtered out absent and empty fields.
func (t *Tagger) writeTextFrames(tag *id3v2.Tag, tags map[string]string) {
	if v, ok := tags["title"]; ok {
		tag.SetTitle(v)
	}
	if v, ok := tags["artist"]; ok {
		tag.SetArtist(v)
	}
	if v, ok := tags["album"]; ok {
		tag.SetAlbum(v)
	}
	if v, ok := tags["genre"]; ok {
		tag.SetGenre(v)
	}

	for key, frameID := range textFrameIDs {
		if v, ok := tags[key]; ok {
			tag.AddTextFrame(frameID, id3v2.EncodingUTF8, v)
		}
	}

	for _, key := range []string{"comment", "description"} {
		v, ok := tags[key]
		if !ok {
			continue
		}
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: key,
			Text:        v,
		})
	}
}

// writeChapterFrames writes one CHAP frame per chapter.
//
// Byte offsets are unknown after VBR transcoding, so the ignored-offset
// sentinel is used and players fall back to the time fields, which is
// the normal arrangement for MP3 chapters.
func (t *Tagger) writeChapterFrames(tag *id3v2.Tag, chapters []model.Chapter) {
	for i, ch := range chapters {
		tag.AddChapterFrame(id3v2.ChapterFrame{
			ElementID:   fmt.Sprintf("chp%d", i),
			StartTime:   ch.Start,
			EndTime:     ch.End,
			StartOffset: id3v2.IgnoredOffset,
			EndOffset:   id3v2.IgnoredOffset,
			Title: &id3v2.TextFrame{
				Encoding: id3v2.EncodingUTF8,
				Text:     ch.Title,
			},
		})
	}
}

// writeArtwork embeds the cover as an attached picture frame.
func (t *Tagger) writeArtwork(tag *id3v2.Tag, artwork *model.Artwork) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    artwork.MIMEType,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork.Data,
	})
}
