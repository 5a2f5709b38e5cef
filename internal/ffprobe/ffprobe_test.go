package ffprobe

import (
	"encoding/json"
	"testing"
	"time"
)

func TestResult_Decode(t *testing.T) {
	payload := `{
		"chapters": [
			{"id": 0, "start_time": "0.000000", "end_time": "1800.500000", "tags": {"title": "Opening"}},
			{"id": 1, "start_time": "1800.500000", "end_time": "3600.000000", "tags": {}}
		],
		"format": {
			"filename": "book.m4b",
			"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
			"duration": "3600.000000",
			"tags": {"Title": "Test Book", "artist": "Test Author"}
		}
	}`

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(result.Chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(result.Chapters))
	}
	if result.Chapters[0].Title() != "Opening" {
		t.Errorf("Title() = %q, want %q", result.Chapters[0].Title(), "Opening")
	}
	if result.Chapters[1].Title() != "" {
		t.Errorf("untitled chapter Title() = %q, want empty", result.Chapters[1].Title())
	}
	if got := result.Chapters[0].End(); got != 1800*time.Second+500*time.Millisecond {
		t.Errorf("End() = %v, want 30m0.5s", got)
	}
	if got := result.Duration(); got != time.Hour {
		t.Errorf("Duration() = %v, want 1h", got)
	}
}

func TestResult_TagCaseInsensitive(t *testing.T) {
	result := Result{Format: Format{Tags: map[string]string{"Title": "X", "ARTIST": "Y"}}}

	tests := []struct {
		key   string
		want  string
		found bool
	}{
		{"title", "X", true},
		{"artist", "Y", true},
		{"album", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := result.Tag(tt.key)
			if ok != tt.found || got != tt.want {
				t.Errorf("Tag(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestChapter_MalformedOffsets(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
	}{
		{"empty fields", Chapter{}},
		{"garbage start", Chapter{StartTime: "abc", EndTime: "10.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.chapter.Start() >= 0 && tt.chapter.End() >= 0 {
				t.Error("malformed offsets should parse to negative durations")
			}
		})
	}
}
