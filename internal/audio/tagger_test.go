package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	id3v2 "github.com/bogem/id3v2/v2"
	"github.com/handiism/audiobook-converter/internal/model"
)

// fakeMP3 writes a stand-in output file. The tagger only needs a real
// file to prepend its tag to; valid MPEG frames are not required.
func fakeMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.mp3")
	if err := os.WriteFile(path, make([]byte, 256), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveTags_TextFrames(t *testing.T) {
	path := fakeMP3(t)

	err := NewTagger(nil).SaveTags(path, map[string]string{
		"title":  "Test Book",
		"artist": "Test Author",
		"album":  "Test Book",
		"date":   "2021",
	}, nil, nil)
	if err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Test Book" {
		t.Errorf("title = %q, want %q", tag.Title(), "Test Book")
	}
	if tag.Artist() != "Test Author" {
		t.Errorf("artist = %q, want %q", tag.Artist(), "Test Author")
	}
	if got := tag.GetTextFrame("TDRC").Text; got != "2021" {
		t.Errorf("date = %q, want %q", got, "2021")
	}
}

func TestSaveTags_AbsentFieldsNotWritten(t *testing.T) {
	path := fakeMP3(t)

	if err := NewTagger(nil).SaveTags(path, map[string]string{"title": "X"}, nil, nil); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if tag.Album() != "" {
		t.Errorf("album should be absent, got %q", tag.Album())
	}
	if tag.Artist() != "" {
		t.Errorf("artist should be absent, got %q", tag.Artist())
	}
}

func TestSaveTags_ChapterFrames(t *testing.T) {
	path := fakeMP3(t)

	chapters := []model.Chapter{
		{Title: "One", Start: 0, End: 30 * time.Minute},
		{Title: "Two", Start: 30 * time.Minute, End: time.Hour},
	}

	if err := NewTagger(nil).SaveTags(path, nil, chapters, nil); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	frames := tag.GetFrames("CHAP")
	if len(frames) != 2 {
		t.Fatalf("got %d chapter frames, want 2", len(frames))
	}

	first, ok := frames[0].(id3v2.ChapterFrame)
	if !ok {
		t.Fatalf("frame type %T, want ChapterFrame", frames[0])
	}
	if first.Title.Text != "One" {
		t.Errorf("chapter title = %q, want %q", first.Title.Text, "One")
	}
	if first.EndTime != 30*time.Minute {
		t.Errorf("chapter end = %v, want 30m", first.EndTime)
	}
}

func TestSaveTags_Artwork(t *testing.T) {
	path := fakeMP3(t)

	art := &model.Artwork{Data: []byte{0xFF, 0xD8, 0xFF}, MIMEType: "image/jpeg"}
	if err := NewTagger(nil).SaveTags(path, nil, nil, art); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	frames := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(frames) != 1 {
		t.Fatalf("got %d picture frames, want 1", len(frames))
	}
	pic, ok := frames[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("frame type %T, want PictureFrame", frames[0])
	}
	if pic.MimeType != "image/jpeg" || pic.PictureType != id3v2.PTFrontCover {
		t.Errorf("picture frame = %q/%d, want image/jpeg front cover", pic.MimeType, pic.PictureType)
	}
}

func TestSaveTags_DisabledConfig(t *testing.T) {
	path := fakeMP3(t)

	cfg := &TagConfig{WriteTags: false, WriteChapters: false, WriteArtwork: false}
	err := NewTagger(cfg).SaveTags(path,
		map[string]string{"title": "X"},
		[]model.Chapter{{Title: "One", Start: 0, End: time.Minute}},
		&model.Artwork{Data: []byte{1}, MIMEType: "image/jpeg"})
	if err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "" || tag.HasFrames() {
		t.Errorf("disabled config must write nothing, title=%q hasFrames=%v", tag.Title(), tag.HasFrames())
	}
}
