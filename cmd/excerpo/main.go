package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/excerpo/internal/common"
	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
	"github.com/ternarybob/excerpo/internal/services/extractor"
	"github.com/ternarybob/excerpo/internal/services/reader"
	"github.com/ternarybob/excerpo/internal/services/serializer"
	"github.com/ternarybob/excerpo/internal/storage/badger"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	filePath     = flag.String("file", "", "PDF file to extract")
	filePathF    = flag.String("f", "", "PDF file to extract (shorthand)")
	outDir       = flag.String("out", "", "Output directory (overrides config)")
	formatFlag   = flag.String("format", "", "Output format: json, text or both (overrides config)")
	imagesFlag   = flag.String("images", "", "Extract embedded images: true or false (overrides config)")
	noCache      = flag.Bool("no-cache", false, "Disable the extraction cache for this run")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Excerpo version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> files -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner
	var err error

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, statErr := os.Stat("excerpo.toml"); statErr == nil {
			configFiles = append(configFiles, "excerpo.toml")
		}
	}

	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	applyCLIOverrides(config)

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	source := *filePath
	if *filePathF != "" {
		source = *filePathF
	}
	if source == "" {
		fmt.Fprintln(os.Stderr, "Usage: excerpo -file <document.pdf> [-config excerpo.toml] [-out dir]")
		os.Exit(2)
	}

	os.Exit(run(source))
}

// applyCLIOverrides applies command-line flag overrides (highest priority)
func applyCLIOverrides(config *common.Config) {
	if *outDir != "" {
		config.Extraction.OutputDir = *outDir
	}
	if *formatFlag != "" {
		config.Extraction.OutputFormat = *formatFlag
	}
	switch *imagesFlag {
	case "true":
		config.Extraction.EnableImages = true
	case "false":
		config.Extraction.EnableImages = false
	}
	if *noCache {
		config.Extraction.CacheEnabled = false
	}
}

func run(source string) int {
	ctx := context.Background()

	// Cache is optional; a nil cache disables hash-based deduplication
	var cache interfaces.CacheStorage
	if config.Extraction.CacheEnabled {
		db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
		if err != nil {
			logger.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		} else {
			defer db.Close()
			cache = badger.NewCacheStorage(db, logger)
		}
	}

	docReader := reader.NewReader(logger)
	writer := serializer.NewWriter(config.Extraction.OutputDir, logger)
	service := extractor.NewService(docReader, writer, cache, config.Extraction, logger)

	result, err := service.Extract(ctx, source)

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		logger.Error().Err(err).Msg("Input rejected")
		return 2
	}

	var writeErr *models.WriteError
	if errors.As(err, &writeErr) {
		// The in-memory result is still valid; report it before failing.
		logger.Error().Err(err).Msg("Failed to persist extraction artifacts")
		printOutcome(result)
		return 1
	}

	if err != nil {
		logger.Error().Err(err).Msg("Extraction failed")
		return 1
	}

	printOutcome(result)
	if !result.Success {
		return 1
	}
	return 0
}

// printOutcome surfaces the success flag and the per-page error list so
// partial successes are distinguishable from total failures.
func printOutcome(result *models.ExtractionResult) {
	fmt.Printf("\nFile:    %s\n", filepath.Base(result.SourcePath))
	fmt.Printf("Hash:    %s\n", result.ContentHash)
	fmt.Printf("Success: %t", result.Success)
	if result.CacheHit {
		fmt.Printf(" (cached)")
	}
	fmt.Println()
	fmt.Printf("Pages:   %d\n", len(result.Pages))
	fmt.Printf("Words:   %d  Characters: %d  Images: %d\n",
		result.Totals.Words, result.Totals.Chars, result.Totals.Images)

	if len(result.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
