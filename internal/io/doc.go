// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/audiobooks/converted_mp3")
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Identify a candidate cover image
//	mime, err := svc.DetectMIME(imageData)
//
//	// Resize image to fit within 1000x1000
//	resized, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
//
// Decoders for all supported cover formats (jpg, jpeg, png, bmp, gif,
// tiff, webp) are registered by importing this package.
package ioutils
