// Package artwork finds the cover image to embed in a converted file.
//
// Candidates are checked in a fixed precedence order, first match wins:
//
//  1. A sidecar image whose base name matches the source file's base name
//     (any supported extension, case-insensitive).
//  2. A well-known cover file in the same directory: cover, folder,
//     albumart, front, artwork (checked in that order).
//  3. Artwork embedded in the source container itself.
//
// An unreadable or corrupt candidate produces a warning and the search
// moves on. Finding nothing is not an error; the output simply carries
// no picture frame. At most one image is ever embedded.
package artwork

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/audiobook-converter/internal/io"
	"github.com/handiism/audiobook-converter/internal/model"
)

// supportedExtensions is the recognized image format set, lowercase,
// without dots.
var supportedExtensions = []string{"jpg", "jpeg", "png", "bmp", "gif", "tiff", "webp"}

// coverNames are well-known cover file base names, in precedence order.
var coverNames = []string{"cover", "folder", "albumart", "front", "artwork"}

// EmbeddedSource extracts artwork stored inside a container file.
//
// The production implementation shells out to ffmpeg; tests substitute
// a fake.
type EmbeddedSource interface {
	ExtractArtwork(ctx context.Context, inputPath string) ([]byte, error)
}

// Resolver locates the best available cover image for a source file.
type Resolver struct {
	embedded EmbeddedSource
	images   *ioutils.ImageService
}

// NewResolver creates a Resolver.
//
// embedded may be nil, in which case the container fallback step is
// skipped and only sidecar files are considered.
func NewResolver(embedded EmbeddedSource) *Resolver {
	return &Resolver{
		embedded: embedded,
		images:   ioutils.NewImageService(),
	}
}

// Resolve returns the winning cover image for the book, or nil when no
// candidate exists.
//
// Warnings describe candidates that were found but could not be used.
func (r *Resolver) Resolve(ctx context.Context, book *model.Audiobook) (*model.Artwork, []string) {
	var warnings []string

	entries, err := os.ReadDir(book.Dir())
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("cannot list %s for cover art: %v", book.Dir(), err))
		entries = nil
	}

	// 1. Sidecar matching the source base name.
	if path := matchBaseName(entries, book.Dir(), book.BaseName()); path != "" {
		art, warn := r.load(path, "sidecar")
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if art != nil {
			return art, warnings
		}
	}

	// 2. Well-known cover file names, in listed order.
	for _, name := range coverNames {
		path := matchBaseName(entries, book.Dir(), name)
		if path == "" {
			continue
		}
		art, warn := r.load(path, "cover file")
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if art != nil {
			return art, warnings
		}
	}

	// 3. Artwork embedded in the container.
	if r.embedded != nil {
		data, err := r.embedded.ExtractArtwork(ctx, book.Path)
		if err == nil {
			art, warn := r.identify(data, "embedded")
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if art != nil {
				return art, warnings
			}
		}
	}

	return nil, warnings
}

// load reads a candidate file and verifies it decodes as an image.
func (r *Resolver) load(path, source string) (*model.Artwork, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Sprintf("cannot read cover candidate %s: %v", path, err)
	}
	art, warn := r.identify(data, source)
	if art == nil && warn != "" {
		warn = fmt.Sprintf("%s: %s", filepath.Base(path), warn)
	}
	return art, warn
}

// identify sniffs the image type and wraps the bytes as Artwork.
func (r *Resolver) identify(data []byte, source string) (*model.Artwork, string) {
	mime, err := r.images.DetectMIME(data)
	if err != nil {
		return nil, fmt.Sprintf("not a usable image: %v", err)
	}
	return &model.Artwork{Data: data, MIMEType: mime, Source: source}, ""
}

// matchBaseName finds a directory entry whose name is base + a supported
// image extension, comparing case-insensitively. Extensions are tried in
// their listed precedence order.
func matchBaseName(entries []os.DirEntry, dir, base string) string {
	for _, ext := range supportedExtensions {
		want := strings.ToLower(base + "." + ext)
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.ToLower(entry.Name()) == want {
				return filepath.Join(dir, entry.Name())
			}
		}
	}
	return ""
}
