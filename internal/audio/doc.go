// Package audio writes ID3v2 tags to converted MP3 files.
//
// Use the Tagger to write the reconciled tag set after transcoding:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(outputPath, tags, chapters, artwork)
//
// The tagger writes:
//   - Text frames for the mapped container metadata (title, artist,
//     album, album artist, date, genre, composer, copyright)
//   - Comment frames for comment/description fields
//   - One CHAP frame per chapter with time-based boundaries
//   - Cover art as an attached picture (front cover)
//
// The transcode step strips all container metadata, so the tagger is the
// single writer of the output tag set; fields absent from the source are
// never invented.
package audio
