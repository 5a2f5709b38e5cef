// Package model defines the core data structures used throughout
// the audiobook converter.
//
// # Audiobook
//
// Audiobook represents one discovered M4B source file with computed paths:
//
//	book := model.NewAudiobook("/books/Dune.m4b", "/books/converted_mp3")
//	fmt.Println(book.OutputPath) // Where the MP3 will be written
//	fmt.Println(book.CuePath())  // Where a cue sidecar would live
//
// # Chapter
//
// Chapter is an ordered marker with a title and start/end offsets. Chapter
// lists are produced by the extractor, validated for ordering, and written
// to the output file as ID3v2 CHAP frames.
//
// # Artwork
//
// Artwork is a resolved cover image (bytes + MIME type) from a sidecar
// file, a well-known cover file, or the container itself.
//
// # Result
//
// Result is the per-file conversion outcome used for reporting: success
// flag, error, chapter count, and artwork status.
package model
