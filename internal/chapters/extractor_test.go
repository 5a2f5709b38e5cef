package chapters

import (
	"testing"
	"time"

	"github.com/handiism/audiobook-converter/internal/cue"
	"github.com/handiism/audiobook-converter/internal/ffprobe"
)

func containerChapter(title, start, end string) ffprobe.Chapter {
	tags := map[string]string{}
	if title != "" {
		tags["title"] = title
	}
	return ffprobe.Chapter{StartTime: start, EndTime: end, Tags: tags}
}

func TestExtract_ContainerChaptersPreserved(t *testing.T) {
	probe := ffprobe.Result{Chapters: []ffprobe.Chapter{
		containerChapter("One", "0.0", "100.0"),
		containerChapter("Two", "100.0", "250.5"),
		containerChapter("Three", "250.5", "400.0"),
	}}

	chs, warnings := NewExtractor().Extract(probe, nil, 400*time.Second)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(chs) != 3 {
		t.Fatalf("got %d chapters, want 3", len(chs))
	}
	if chs[1].Title != "Two" {
		t.Errorf("chapter 2 title = %q, want %q", chs[1].Title, "Two")
	}
	if chs[1].Start != 100*time.Second || chs[1].End != 250*time.Second+500*time.Millisecond {
		t.Errorf("chapter 2 boundaries not preserved: %v - %v", chs[1].Start, chs[1].End)
	}
}

func TestExtract_ZeroChapters(t *testing.T) {
	chs, warnings := NewExtractor().Extract(ffprobe.Result{}, nil, time.Hour)

	if len(chs) != 0 {
		t.Errorf("got %d chapters, want 0", len(chs))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestExtract_UntitledChaptersGetDefaults(t *testing.T) {
	probe := ffprobe.Result{Chapters: []ffprobe.Chapter{
		containerChapter("", "0.0", "100.0"),
		containerChapter("", "100.0", "200.0"),
	}}

	chs, _ := NewExtractor().Extract(probe, nil, 200*time.Second)

	if len(chs) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chs))
	}
	if chs[0].Title != "Chapter 1" || chs[1].Title != "Chapter 2" {
		t.Errorf("default titles wrong: %q, %q", chs[0].Title, chs[1].Title)
	}
}

func TestExtract_MalformedChaptersDropped(t *testing.T) {
	probe := ffprobe.Result{Chapters: []ffprobe.Chapter{
		containerChapter("Good", "0.0", "100.0"),
		containerChapter("Negative", "-5.0", "50.0"),
		containerChapter("Inverted", "300.0", "200.0"),
		containerChapter("Overlapping", "50.0", "150.0"),
		containerChapter("AlsoGood", "100.0", "200.0"),
	}}

	chs, warnings := NewExtractor().Extract(probe, nil, 200*time.Second)

	if len(chs) != 2 {
		t.Fatalf("got %d chapters, want 2 (%v)", len(chs), chs)
	}
	if chs[0].Title != "Good" || chs[1].Title != "AlsoGood" {
		t.Errorf("wrong survivors: %q, %q", chs[0].Title, chs[1].Title)
	}
	if len(warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
}

func TestExtract_CueFallbackWhenContainerEmpty(t *testing.T) {
	tracks := []cue.Track{
		{Number: 1, Title: "Opening", Start: 0},
		{Number: 2, Title: "Middle", Start: 30 * time.Minute},
		{Number: 3, Title: "Finale", Start: 50 * time.Minute},
	}

	chs, warnings := NewExtractor().Extract(ffprobe.Result{}, tracks, time.Hour)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(chs) != 3 {
		t.Fatalf("got %d chapters, want 3", len(chs))
	}
	if chs[0].End != 30*time.Minute {
		t.Errorf("chapter 1 end = %v, want 30m", chs[0].End)
	}
	if chs[2].Start != 50*time.Minute || chs[2].End != time.Hour {
		t.Errorf("final chapter = %v - %v, want 50m - 1h", chs[2].Start, chs[2].End)
	}
}

func TestExtract_CueFinalTrackDroppedWithoutDuration(t *testing.T) {
	tracks := []cue.Track{
		{Number: 1, Title: "Opening", Start: 0},
		{Number: 2, Title: "Middle", Start: 30 * time.Minute},
	}

	// Duration unknown: final track cannot be closed.
	chs, warnings := NewExtractor().Extract(ffprobe.Result{}, tracks, 0)

	if len(chs) != 1 {
		t.Fatalf("got %d chapters, want 1", len(chs))
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestExtract_CueTitlesFillUntitledContainerChapters(t *testing.T) {
	probe := ffprobe.Result{Chapters: []ffprobe.Chapter{
		containerChapter("Named", "0.0", "100.0"),
		containerChapter("", "100.0", "200.0"),
	}}
	tracks := []cue.Track{
		{Number: 1, Title: "Cue One", Start: 0},
		{Number: 2, Title: "Cue Two", Start: 100 * time.Second},
	}

	chs, _ := NewExtractor().Extract(probe, tracks, 200*time.Second)

	if chs[0].Title != "Named" {
		t.Errorf("container title overwritten: %q", chs[0].Title)
	}
	if chs[1].Title != "Cue Two" {
		t.Errorf("untitled chapter should take cue title, got %q", chs[1].Title)
	}
	// Timing stays with the container.
	if chs[1].Start != 100*time.Second {
		t.Errorf("cue must not change container timing, start = %v", chs[1].Start)
	}
}
