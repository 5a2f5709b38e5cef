package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/audiobook-converter/internal/model"
)

type fakeEmbedded struct {
	data []byte
	err  error
}

func (f *fakeEmbedded) ExtractArtwork(_ context.Context, _ string) ([]byte, error) {
	return f.data, f.err
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func newBook(t *testing.T, dir string) *model.Audiobook {
	t.Helper()
	writeFile(t, filepath.Join(dir, "Dune.m4b"), []byte("fake container"))
	return model.NewAudiobook(filepath.Join(dir, "Dune.m4b"), filepath.Join(dir, "out"))
}

func TestResolve_BaseNameBeatsCoverFile(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "Dune.jpg"), jpegBytes(t))
	writeFile(t, filepath.Join(dir, "cover.jpg"), pngBytes(t))

	art, warnings := NewResolver(nil).Resolve(context.Background(), book)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if art == nil {
		t.Fatal("expected artwork")
	}
	if art.Source != "sidecar" || art.MIMEType != "image/jpeg" {
		t.Errorf("got source %q mime %q, want sidecar image/jpeg", art.Source, art.MIMEType)
	}
}

func TestResolve_BaseNameCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "DUNE.PNG"), pngBytes(t))

	art, _ := NewResolver(nil).Resolve(context.Background(), book)

	if art == nil || art.MIMEType != "image/png" {
		t.Fatalf("expected png sidecar match, got %+v", art)
	}
}

func TestResolve_CoverFileWins(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "cover.jpg"), jpegBytes(t))

	art, _ := NewResolver(&fakeEmbedded{err: errors.New("no stream")}).Resolve(context.Background(), book)

	if art == nil || art.Source != "cover file" {
		t.Fatalf("expected cover file match, got %+v", art)
	}
}

func TestResolve_CoverNamePrecedence(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "folder.jpg"), pngBytes(t))
	writeFile(t, filepath.Join(dir, "cover.png"), pngBytes(t))

	art, _ := NewResolver(nil).Resolve(context.Background(), book)

	// "cover" is listed before "folder", regardless of extension.
	if art == nil || art.MIMEType != "image/png" {
		t.Fatalf("expected artwork, got %+v", art)
	}
	if filepath.Base(book.Path) == "" {
		t.Fatal("sanity")
	}
	if art.Source != "cover file" {
		t.Errorf("source = %q, want cover file", art.Source)
	}
}

func TestResolve_EmbeddedFallback(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)

	art, warnings := NewResolver(&fakeEmbedded{data: jpegBytes(t)}).Resolve(context.Background(), book)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if art == nil || art.Source != "embedded" {
		t.Fatalf("expected embedded artwork, got %+v", art)
	}
}

func TestResolve_NoArtwork(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)

	art, warnings := NewResolver(&fakeEmbedded{err: errors.New("no stream")}).Resolve(context.Background(), book)

	if art != nil {
		t.Errorf("expected no artwork, got %+v", art)
	}
	if len(warnings) != 0 {
		t.Errorf("missing artwork should not warn: %v", warnings)
	}
}

func TestResolve_CorruptSidecarFallsThrough(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "Dune.jpg"), []byte("not an image"))
	writeFile(t, filepath.Join(dir, "cover.jpg"), jpegBytes(t))

	art, warnings := NewResolver(nil).Resolve(context.Background(), book)

	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if art == nil || art.Source != "cover file" {
		t.Fatalf("expected fallback to cover file, got %+v", art)
	}
}

func TestResolve_IgnoresUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	book := newBook(t, dir)
	writeFile(t, filepath.Join(dir, "Dune.txt"), []byte("notes"))
	writeFile(t, filepath.Join(dir, "cover.svg"), []byte("<svg/>"))

	art, _ := NewResolver(nil).Resolve(context.Background(), book)

	if art != nil {
		t.Errorf("unsupported extensions must not match, got %+v", art)
	}
}
