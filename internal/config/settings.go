package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Input/output
	InputPath        string `json:"input_path"`
	OutputFolderName string `json:"output_folder_name"`
	OutputPath       string `json:"output_path"` // overrides OutputFolderName when set

	// External tools
	FFmpegPath  string `json:"ffmpeg_path"`
	FFprobePath string `json:"ffprobe_path"`

	// Encoding
	// Quality is the libmp3lame VBR quality level (0 = best, 9 = worst).
	// It applies to the whole batch; it is never varied per file.
	Quality int `json:"quality"`

	// Cover art settings
	SaveCoverArtInTags    bool `json:"save_cover_art_in_tags"`
	CoverArtInTagsResize  bool `json:"cover_art_in_tags_resize"`
	CoverArtInTagsMaxSize int  `json:"cover_art_in_tags_max_size"`
	ConvertCoverArtToJPG  bool `json:"convert_cover_art_to_jpg"`

	// Tag settings
	ModifyTags    bool `json:"modify_tags"`
	WriteChapters bool `json:"write_chapters"`

	// Output verbosity
	VerboseOutput bool `json:"verbose_output"`

	// DryRun inspects and reports without encoding. Set from the CLI,
	// not normally persisted.
	DryRun bool `json:"-"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		InputPath:        filepath.Join(homeDir, "Audiobooks"),
		OutputFolderName: "converted_mp3",

		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		// -q:a 2 targets roughly 190 kbps VBR, plenty for spoken word.
		Quality: 2,

		SaveCoverArtInTags:    true,
		CoverArtInTagsResize:  true,
		CoverArtInTagsMaxSize: 1000,
		ConvertCoverArtToJPG:  true,

		ModifyTags:    true,
		WriteChapters: true,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// OutputDir returns the directory converted files are written to.
//
// An explicit OutputPath wins; otherwise the fixed output subfolder is
// placed inside the input folder, matching the converter's default layout.
func (s *Settings) OutputDir() string {
	if s.OutputPath != "" {
		return s.OutputPath
	}
	return filepath.Join(s.InputPath, s.OutputFolderName)
}
