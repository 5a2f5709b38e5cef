package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/audiobook-converter/internal/config"
	"github.com/handiism/audiobook-converter/internal/convert"
)

func main() {
	// Command line flags
	var (
		inputFlag   = flag.String("input", "", "Folder containing .m4b files (overrides config)")
		outputFlag  = flag.String("output", "", "Output directory (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		qualityFlag = flag.Int("quality", -1, "libmp3lame VBR quality, 0 (best) to 9 (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "Inspect files without converting")
	)

	flag.Usage = func() {
		fmt.Println("Audiobook Converter - Convert M4B audiobooks to MP3")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  audiobook-convert -input <folder> [options]")
		fmt.Println("  audiobook-convert <folder> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: audiobook-tui")
		fmt.Println()
		flag.PrintDefaults()
	}

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *inputFlag != "" {
		settings.InputPath = *inputFlag
	} else if flag.NArg() > 0 {
		settings.InputPath = flag.Arg(0)
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *qualityFlag >= 0 {
		settings.Quality = *qualityFlag
	}
	if *verboseFlag {
		settings.VerboseOutput = true
	}
	settings.DryRun = *dryRunFlag

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := convert.NewManager(settings, func(event convert.ProgressEvent) {
		if event.Level == convert.LevelVerbose && !settings.VerboseOutput {
			return
		}

		prefix := ""
		switch event.Level {
		case convert.LevelError:
			prefix = "❌ "
		case convert.LevelWarning:
			prefix = "⚠️  "
		case convert.LevelSuccess:
			prefix = "✅ "
		case convert.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎧 Audiobook Converter")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	results, err := manager.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nConversion cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if settings.DryRun {
		fmt.Println("\n[Dry run - nothing converted]")
		return
	}

	_, _, succeeded, failed := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Converted %d/%d file(s)\n", succeeded, len(results))
	if failed > 0 {
		for _, result := range results {
			if !result.Success {
				fmt.Printf("   ✗ %s: %v\n", result.Book.BaseName(), result.Err)
			}
		}
		os.Exit(1)
	}
}
