package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scorefetch/scorefetch/internal/config"
	"github.com/scorefetch/scorefetch/internal/download"
)

func main() {
	// Command line flags
	var (
		urlFlag         = flag.String("url", "", "Demo page URL (overrides config)")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		concurrencyFlag = flag.Int("concurrency", 0, "Max concurrent downloads (overrides config)")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Extract score URLs without downloading")
	)

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
	settings.ApplyEnv()

	// Apply flags
	if *urlFlag != "" {
		settings.PageURL = *urlFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *concurrencyFlag > 0 {
		settings.MaxConcurrentDownloads = *concurrencyFlag
	}

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
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := "   "
		switch event.Level {
		case download.LevelError:
			prefix = " ✗ "
		case download.LevelWarning:
			prefix = " ! "
		case download.LevelSuccess:
			prefix = " ✓ "
		case download.LevelInfo:
			prefix = " › "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("scorefetch")
	fmt.Println("Loading demo page...")

	if err := manager.Discover(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("Cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		for _, ref := range manager.Refs() {
			fmt.Printf("  %s -> %s\n", ref.URL, ref.Filename)
		}
		fmt.Println("[Dry run - not downloading]")
		return
	}

	if err := manager.StartDownloads(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	// Individual download failures are best-effort: already reported above,
	// and the process still exits zero.
	received, done, failed, total := manager.GetProgress()
	fmt.Println()
	fmt.Printf("Complete! Downloaded %d/%d files (%.2f MB) to %s\n",
		done, total, float64(received)/1024/1024, settings.OutputDir)
	if failed > 0 {
		fmt.Printf("%d file(s) failed, see messages above.\n", failed)
	}
}
