// Package convert provides the conversion orchestration logic for
// turning a folder of M4B audiobooks into tagged MP3 files.
//
// # Manager
//
// The Manager coordinates the entire batch:
//
//  1. Discover .m4b files in the input folder (non-recursive)
//  2. Inspect each file: container chapters and metadata via ffprobe,
//     optional cue sheet sidecar, cover art from sidecar files or the
//     container itself
//  3. Transcode audio with an external ffmpeg process (fixed VBR quality)
//  4. Write the reconciled ID3v2 tag set to the output file
//  5. Collect one Result per file for reporting
//
// # Basic Usage
//
//	manager := convert.NewManager(settings, func(event convert.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	results, err := manager.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // nothing to process, or encoder missing
//	}
//
// # Failure Model
//
// Files are processed strictly one at a time. Inspection problems
// (unreadable metadata, malformed chapters, corrupt cover candidates)
// degrade to warnings; encoding or tagging failures mark that one file
// Failed and the batch continues. Only a missing/unreadable input
// folder, a missing ffmpeg binary, or cancellation aborts the run.
//
// # Progress Tracking
//
// Progress is reported via a callback that receives ProgressEvent
// (Info, Verbose, Warning, Error, Success); counters for UIs are
// available through GetProgress.
package convert
