// Package config provides configuration management for the audiobook converter.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scans ~/Audiobooks, writes to a converted_mp3 subfolder
//	// VBR quality 2 (~190 kbps), tagging and chapters enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.InputPath = "/media/audiobooks"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Input folder and output folder/subfolder name
//   - ffmpeg/ffprobe binary overrides
//   - VBR quality level (fixed for the whole batch)
//   - Cover art embedding, resizing, and JPEG conversion
//   - ID3 tag and chapter writing switches
package config
