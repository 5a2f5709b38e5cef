package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/handiism/audiobook-converter/internal/artwork"
	"github.com/handiism/audiobook-converter/internal/audio"
	"github.com/handiism/audiobook-converter/internal/chapters"
	"github.com/handiism/audiobook-converter/internal/config"
	"github.com/handiism/audiobook-converter/internal/cue"
	"github.com/handiism/audiobook-converter/internal/encoder"
	"github.com/handiism/audiobook-converter/internal/ffprobe"
	ioutils "github.com/handiism/audiobook-converter/internal/io"
	"github.com/handiism/audiobook-converter/internal/model"
	"github.com/handiism/audiobook-converter/internal/tags"
	"golang.org/x/sync/errgroup"
)

// sourceExtension is the recognized input file extension, compared
// case-insensitively. Only files with this extension are ever considered,
// so re-running on a folder containing prior outputs is safe.
const sourceExtension = ".m4b"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Prober inspects a container file for metadata and chapters.
//
// Production uses ffprobe; tests substitute a fake.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// ffprobeProber is the production Prober backed by the ffprobe binary.
type ffprobeProber struct {
	binary string
}

func (p ffprobeProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.binary, path)
}

// checker is implemented by encoders that can verify their availability
// before the batch starts.
type checker interface {
	Check(ctx context.Context) error
}

// artworkResolver is the seam to the artwork package.
type artworkResolver interface {
	Resolve(ctx context.Context, book *model.Audiobook) (*model.Artwork, []string)
}

// Manager coordinates the conversion batch.
//
// Files are processed strictly one at a time: a file is fully inspected,
// transcoded, and tagged before the next begins. All intermediate data
// (chapters, artwork bytes, tag map) is scoped to the file's iteration.
type Manager struct {
	settings  *config.Settings
	prober    Prober
	encoder   encoder.Encoder
	extractor *chapters.Extractor
	resolver  artworkResolver
	mapper    *tags.Mapper
	tagger    *audio.Tagger
	images    *ioutils.ImageService

	totalFiles     int32
	processedFiles int32
	succeeded      int32
	failed         int32

	onProgress func(ProgressEvent)
}

// NewManager creates a conversion Manager wired to the external ffmpeg
// and ffprobe binaries named in settings.
//
// onProgress receives every progress event; pass nil to discard them.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	ff := encoder.NewFFmpeg(settings.FFmpegPath)

	return &Manager{
		settings:  settings,
		prober:    ffprobeProber{binary: settings.FFprobePath},
		encoder:   ff,
		extractor: chapters.NewExtractor(),
		resolver:  artwork.NewResolver(ff),
		mapper:    tags.NewMapper(),
		tagger: audio.NewTagger(&audio.TagConfig{
			WriteTags:     settings.ModifyTags,
			WriteChapters: settings.WriteChapters,
			WriteArtwork:  settings.SaveCoverArtInTags,
		}),
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Discover lists the audiobooks to convert, in stable name order.
//
// The input folder is scanned non-recursively for the source extension.
// A missing or unreadable input folder is fatal: there is nothing to
// process and the whole run aborts.
func (m *Manager) Discover() ([]*model.Audiobook, error) {
	entries, err := os.ReadDir(m.settings.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input folder %s: %w", m.settings.InputPath, err)
	}

	outputDir := m.settings.OutputDir()

	var books []*model.Audiobook
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), sourceExtension) {
			continue
		}
		books = append(books, model.NewAudiobook(filepath.Join(m.settings.InputPath, entry.Name()), outputDir))
	}

	sort.Slice(books, func(i, j int) bool { return books[i].Path < books[j].Path })
	return books, nil
}

// Run converts every discovered file and returns one Result per file, in
// discovery order.
//
// Per-file failures are captured in the Result and never abort the
// batch; only discovery errors, a missing encoder, or context
// cancellation are fatal.
func (m *Manager) Run(ctx context.Context) ([]model.Result, error) {
	if c, ok := m.encoder.(checker); ok {
		if err := c.Check(ctx); err != nil {
			return nil, err
		}
	}

	books, err := m.Discover()
	if err != nil {
		return nil, err
	}

	atomic.StoreInt32(&m.totalFiles, int32(len(books)))

	if len(books) == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No %s files found in %s", sourceExtension, m.settings.InputPath), Level: LevelWarning})
		return nil, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d %s file(s)", len(books), sourceExtension), Level: LevelInfo})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Output folder: %s", m.settings.OutputDir()), Level: LevelInfo})

	if !m.settings.DryRun {
		if err := ioutils.EnsureDir(m.settings.OutputDir()); err != nil {
			return nil, fmt.Errorf("create output folder: %w", err)
		}
	}

	results := make([]model.Result, 0, len(books))
	for _, book := range books {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		result := m.convertOne(ctx, book)
		results = append(results, result)

		atomic.AddInt32(&m.processedFiles, 1)
		if result.Success {
			atomic.AddInt32(&m.succeeded, 1)
		} else {
			atomic.AddInt32(&m.failed, 1)
		}
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Conversion complete: %d converted, %d failed",
			atomic.LoadInt32(&m.succeeded), atomic.LoadInt32(&m.failed)),
		Level: LevelSuccess,
	})

	return results, nil
}

// GetProgress returns current batch progress counters.
func (m *Manager) GetProgress() (processed, total, succeeded, failed int32) {
	return atomic.LoadInt32(&m.processedFiles),
		atomic.LoadInt32(&m.totalFiles),
		atomic.LoadInt32(&m.succeeded),
		atomic.LoadInt32(&m.failed)
}

// inspection holds everything gathered about one file before encoding.
type inspection struct {
	chapters []model.Chapter
	tags     map[string]string
	artwork  *model.Artwork
	cueUsed  bool
}

// convertOne runs the full pipeline for a single file:
// Inspecting -> Encoding -> Succeeded/Failed.
func (m *Manager) convertOne(ctx context.Context, book *model.Audiobook) model.Result {
	result := model.Result{Book: book}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Processing: %s", filepath.Base(book.Path)), Level: LevelInfo})

	insp := m.inspect(ctx, book)
	result.Chapters = len(insp.chapters)
	result.CueUsed = insp.cueUsed
	if insp.artwork != nil {
		result.ArtworkEmbedded = true
		result.ArtworkSource = insp.artwork.Source
	}

	m.reportInspection(insp)

	if m.settings.DryRun {
		result.Success = true
		return result
	}

	if err := m.encoder.Encode(ctx, encoder.Job{
		InputPath:  book.Path,
		OutputPath: book.OutputPath,
		Quality:    m.settings.Quality,
	}); err != nil {
		result.Err = err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed: %s: %v", filepath.Base(book.Path), err), Level: LevelError})
		return result
	}

	if err := m.tagger.SaveTags(book.OutputPath, insp.tags, insp.chapters, insp.artwork); err != nil {
		// A transcoded file with broken tags is not a success.
		result.Err = err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed: %s: %v", filepath.Base(book.Path), err), Level: LevelError})
		return result
	}

	result.Success = true
	m.progress(ProgressEvent{Message: fmt.Sprintf("Converted: %s", filepath.Base(book.OutputPath)), Level: LevelSuccess})
	return result
}

// inspect gathers chapters, tags, and artwork for one file.
//
// The container probe (plus cue sidecar) and the artwork resolution are
// independent I/O, so they run side by side; this is the only fan-out in
// the pipeline and it never outlives the file's iteration. Inspection
// problems degrade to warnings: a file that cannot be probed is still
// transcoded, just without chapters and tags.
func (m *Manager) inspect(ctx context.Context, book *model.Audiobook) inspection {
	var insp inspection

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		probe, err := m.prober.Inspect(gctx, book.Path)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not read metadata from %s: %v", filepath.Base(book.Path), err), Level: LevelWarning})
			return nil
		}

		cueTracks := m.readCueSheet(book)

		var warnings []string
		insp.chapters, warnings = m.extractor.Extract(probe, cueTracks, probe.Duration())
		for _, warning := range warnings {
			m.progress(ProgressEvent{Message: warning, Level: LevelWarning})
		}
		insp.cueUsed = len(cueTracks) > 0 && len(insp.chapters) > 0
		insp.tags = m.mapper.Map(probe)
		return nil
	})

	g.Go(func() error {
		if !m.settings.SaveCoverArtInTags {
			return nil
		}
		art, warnings := m.resolver.Resolve(gctx, book)
		for _, warning := range warnings {
			m.progress(ProgressEvent{Message: warning, Level: LevelWarning})
		}
		insp.artwork = m.prepareArtwork(gctx, art)
		return nil
	})

	// Goroutines report problems as warnings and never return errors.
	_ = g.Wait()

	return insp
}

// readCueSheet parses the cue sidecar if one exists.
func (m *Manager) readCueSheet(book *model.Audiobook) []cue.Track {
	cuePath := book.CuePath()
	if _, err := os.Stat(cuePath); err != nil {
		return nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found cue sheet: %s", filepath.Base(cuePath)), Level: LevelVerbose})

	tracks, err := cue.ParseFile(cuePath)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not parse cue sheet %s: %v", filepath.Base(cuePath), err), Level: LevelWarning})
		return nil
	}
	return tracks
}

// prepareArtwork applies the configured resize/convert steps to the
// resolved cover before embedding.
func (m *Manager) prepareArtwork(ctx context.Context, art *model.Artwork) *model.Artwork {
	if art == nil {
		return nil
	}

	data := art.Data
	mime := art.MIMEType

	if m.settings.CoverArtInTagsResize {
		if resized, err := m.images.ResizeImage(ctx, data, m.settings.CoverArtInTagsMaxSize, m.settings.CoverArtInTagsMaxSize); err == nil {
			data = resized
			mime = "image/jpeg"
		}
	}
	if m.settings.ConvertCoverArtToJPG && mime != "image/jpeg" {
		if converted, err := m.images.ConvertToJPEG(ctx, data); err == nil {
			data = converted
			mime = "image/jpeg"
		}
	}

	return &model.Artwork{Data: data, MIMEType: mime, Source: art.Source}
}

// reportInspection emits the per-file sidecar/chapter/artwork lines.
func (m *Manager) reportInspection(insp inspection) {
	switch {
	case len(insp.chapters) == 0:
		m.progress(ProgressEvent{Message: "No chapters found", Level: LevelVerbose})
	case insp.cueUsed:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Chapters: %d (cue sheet contributed)", len(insp.chapters)), Level: LevelInfo})
	default:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Chapters: %d", len(insp.chapters)), Level: LevelInfo})
	}

	if insp.artwork != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Artwork: %s", insp.artwork.Source), Level: LevelInfo})
	} else {
		m.progress(ProgressEvent{Message: "Artwork: none", Level: LevelVerbose})
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
