// -----------------------------------------------------------------------
// Extractor Service - Orchestrates the PDF extraction pipeline
// Validation -> hashing -> cache lookup -> page iteration -> persistence
// -----------------------------------------------------------------------

package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/excerpo/internal/common"
	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
)

// Service implements the ExtractorService interface
type Service struct {
	reader interfaces.DocumentReader
	writer interfaces.ResultWriter
	cache  interfaces.CacheStorage
	config common.ExtractionConfig
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.ExtractorService = (*Service)(nil)

// NewService creates a new extractor service. cache may be nil to disable
// result caching entirely.
func NewService(reader interfaces.DocumentReader, writer interfaces.ResultWriter, cache interfaces.CacheStorage, config common.ExtractionConfig, logger arbor.ILogger) *Service {
	return &Service{
		reader: reader,
		writer: writer,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Extract processes the PDF at path. Expected failure modes (corrupt file,
// encryption, bad pages) are reported through the result; only validation
// and artifact-write failures come back as errors.
func (s *Service) Extract(ctx context.Context, path string) (*models.ExtractionResult, error) {
	start := time.Now()

	info, err := s.validate(path)
	if err != nil {
		return nil, err
	}

	hash, err := FileHash(path)
	if err != nil {
		return nil, err
	}

	if cached := s.lookupCache(hash); cached != nil {
		s.logger.Info().
			Str("file", filepath.Base(path)).
			Str("hash", hash).
			Msg("Cache hit, skipping extraction")
		return cached, nil
	}

	s.logger.Info().
		Str("file", filepath.Base(path)).
		Int64("size_bytes", info.Size()).
		Msg("Processing PDF")

	result := &models.ExtractionResult{
		ID:            common.NewExtractionID(),
		SourcePath:    path,
		ContentHash:   hash,
		Pages:         []models.PageRecord{},
		Timestamp:     time.Now().Format(time.RFC3339),
		FileSizeBytes: info.Size(),
	}

	s.extractDocument(ctx, path, result)
	result.ExtractionTime = time.Since(start).Seconds()

	jsonPath, summaryPath, werr := s.save(result)
	if werr != nil {
		return result, werr
	}

	if result.Success && jsonPath != "" {
		s.registerCache(result, jsonPath, summaryPath)
	}

	s.logger.Info().
		Str("file", filepath.Base(path)).
		Bool("success", result.Success).
		Int("pages", len(result.Pages)).
		Int("words", result.Totals.Words).
		Int("images", result.Totals.Images).
		Str("seconds", fmt.Sprintf("%.2f", result.ExtractionTime)).
		Msg("Extraction completed")

	return result, nil
}

// validate checks existence and extension before any document-open attempt.
func (s *Service) validate(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &models.ValidationError{Path: path, Reason: "file does not exist"}
	}
	if info.IsDir() {
		return nil, &models.ValidationError{Path: path, Reason: "path is a directory"}
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, &models.ValidationError{Path: path, Reason: "not a .pdf file"}
	}
	return info, nil
}

// lookupCache returns a prior result for hash if its JSON artifact is still
// on disk. A stale entry (artifact removed) falls through to reprocessing.
func (s *Service) lookupCache(hash string) *models.ExtractionResult {
	if s.cache == nil {
		return nil
	}

	entry, err := s.cache.Get(hash)
	if err != nil {
		s.logger.Warn().Err(err).Str("hash", hash).Msg("Cache lookup failed")
		return nil
	}
	if entry == nil {
		return nil
	}

	result, err := s.writer.ReadJSON(entry.JSONPath)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", entry.JSONPath).Msg("Cached artifact unreadable, reprocessing")
		return nil
	}

	result.CacheHit = true
	return result
}

// extractDocument opens the document and walks its pages in order. A failure
// to open is a whole-document failure recorded on the result; a single bad
// page is recorded and processing continues.
func (s *Service) extractDocument(ctx context.Context, path string, result *models.ExtractionResult) {
	doc, err := s.reader.Open(ctx, path)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return
	}
	defer doc.Close()

	result.Metadata = doc.Metadata()

	fontsUsed := make(map[string]struct{})
	pageCount := doc.PageCount()

	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		text, fonts, err := doc.PageText(pageNr)
		if err != nil {
			record := failedPageRecord(pageNr, err)
			result.Pages = append(result.Pages, record)
			result.Errors = append(result.Errors, record.Error)
			s.logger.Warn().Str("error", record.Error).Msg("Page extraction failed")
			continue
		}

		var images []models.PageImage
		var warnings []string
		if s.config.EnableImages {
			var imgErr error
			images, warnings, imgErr = doc.PageImages(pageNr)
			if imgErr != nil {
				// Image trouble degrades the page, it does not fail it.
				warnings = append(warnings, fmt.Sprintf("image extraction: %v", imgErr))
			}
		}

		record := buildPageRecord(pageNr, text, fonts, images, warnings)
		result.Pages = append(result.Pages, record)

		result.Totals.Words += record.WordCount
		result.Totals.Chars += record.CharCount
		result.Totals.Images += len(record.Images)
		for _, f := range record.Fonts {
			fontsUsed[f] = struct{}{}
		}

		if pageNr%10 == 0 {
			s.logger.Info().Int("processed", pageNr).Int("total", pageCount).Msg("Extraction progress")
		}
	}

	if len(fontsUsed) > 0 {
		result.FontsUsed = make([]string, 0, len(fontsUsed))
		for f := range fontsUsed {
			result.FontsUsed = append(result.FontsUsed, f)
		}
		sort.Strings(result.FontsUsed)
	}

	result.Success = len(result.Errors) == 0
}

// save writes artifacts according to the configured output format. A write
// failure is returned alongside the still-valid in-memory result.
func (s *Service) save(result *models.ExtractionResult) (jsonPath, summaryPath string, err error) {
	format := strings.ToLower(s.config.OutputFormat)

	if format == "json" || format == "both" || format == "" {
		jsonPath, err = s.writer.WriteJSON(result)
		if err != nil {
			return "", "", err
		}
	}
	if format == "text" || format == "both" {
		summaryPath, err = s.writer.WriteSummary(result)
		if err != nil {
			return jsonPath, "", err
		}
	}
	return jsonPath, summaryPath, nil
}

func (s *Service) registerCache(result *models.ExtractionResult, jsonPath, summaryPath string) {
	if s.cache == nil {
		return
	}

	entry := &models.CacheEntry{
		ContentHash: result.ContentHash,
		SourcePath:  result.SourcePath,
		JSONPath:    jsonPath,
		SummaryPath: summaryPath,
		PageCount:   len(result.Pages),
		TotalWords:  result.Totals.Words,
		TotalImages: result.Totals.Images,
		CreatedAt:   time.Now(),
	}
	if err := s.cache.Put(entry); err != nil {
		s.logger.Warn().Err(err).Str("hash", result.ContentHash).Msg("Failed to register cache entry")
	}
}
