// -----------------------------------------------------------------------
// Result Serializer - Persists extraction results as JSON and text summary
// -----------------------------------------------------------------------

package serializer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
)

// Source files above this size are serialized compact instead of indented.
const compactThresholdBytes = 50 * 1024 * 1024

// Writer implements the ResultWriter interface
type Writer struct {
	outputDir string
	logger    arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.ResultWriter = (*Writer)(nil)

// NewWriter creates a result writer targeting outputDir
func NewWriter(outputDir string, logger arbor.ILogger) *Writer {
	return &Writer{
		outputDir: outputDir,
		logger:    logger,
	}
}

// WriteJSON writes the full structured result. Field names and nesting
// round-trip losslessly through ReadJSON.
func (w *Writer) WriteJSON(result *models.ExtractionResult) (string, error) {
	path, err := w.artifactPath(result.SourcePath, ".json")
	if err != nil {
		return "", err
	}

	var data []byte
	if result.FileSizeBytes > compactThresholdBytes {
		data, err = json.Marshal(result)
	} else {
		data, err = json.MarshalIndent(result, "", "  ")
	}
	if err != nil {
		return "", &models.WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &models.WriteError{Path: path, Err: err}
	}

	w.logger.Info().Str("path", path).Msg("Saved JSON result")
	return path, nil
}

// WriteSummary writes the human-readable summary report.
func (w *Writer) WriteSummary(result *models.ExtractionResult) (string, error) {
	path, err := w.artifactPath(result.SourcePath, "_summary.txt")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(summaryReport(result)), 0644); err != nil {
		return "", &models.WriteError{Path: path, Err: err}
	}

	w.logger.Info().Str("path", path).Msg("Saved summary report")
	return path, nil
}

// ReadJSON loads a previously written JSON artifact.
func (w *Writer) ReadJSON(path string) (*models.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}
	return &result, nil
}

// artifactPath derives <stem>_<timestamp><suffix> inside the output
// directory, adding a numeric suffix on the rare same-second collision.
func (w *Writer) artifactPath(sourcePath, suffix string) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", &models.WriteError{Path: w.outputDir, Err: err}
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	ts := time.Now().Format("20060102_150405")

	path := filepath.Join(w.outputDir, fmt.Sprintf("%s_%s%s", stem, ts, suffix))
	for seq := 1; ; seq++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(w.outputDir, fmt.Sprintf("%s_%s_%d%s", stem, ts, seq, suffix))
	}
	return path, nil
}

// summaryReport renders the result as a concise text report, one section per
// concern and a one-line summary per page.
func summaryReport(result *models.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PDF EXTRACTION SUMMARY\n%s\n\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "File: %s\n", filepath.Base(result.SourcePath))
	fmt.Fprintf(&b, "Size: %.1f MB\n", float64(result.FileSizeBytes)/(1024*1024))
	fmt.Fprintf(&b, "Hash: %s\n", result.ContentHash)
	fmt.Fprintf(&b, "Processed: %s\n", result.Timestamp)
	fmt.Fprintf(&b, "Time: %.2f seconds\n", result.ExtractionTime)
	fmt.Fprintf(&b, "Success: %t\n", result.Success)

	fmt.Fprintf(&b, "\nCONTENT STATISTICS\n%s\n", strings.Repeat("-", 30))
	fmt.Fprintf(&b, "Pages: %d\n", len(result.Pages))
	fmt.Fprintf(&b, "Words: %d\n", result.Totals.Words)
	fmt.Fprintf(&b, "Characters: %d\n", result.Totals.Chars)
	fmt.Fprintf(&b, "Images: %d\n", result.Totals.Images)
	fmt.Fprintf(&b, "Fonts: %d\n", len(result.FontsUsed))

	fmt.Fprintf(&b, "\nMETADATA\n%s\n", strings.Repeat("-", 30))
	writeMetaLine(&b, "Title", result.Metadata.Title)
	writeMetaLine(&b, "Author", result.Metadata.Author)
	writeMetaLine(&b, "Subject", result.Metadata.Subject)
	writeMetaLine(&b, "Creator", result.Metadata.Creator)
	writeMetaLine(&b, "Producer", result.Metadata.Producer)
	writeMetaLine(&b, "Creation Date", result.Metadata.CreationDate)
	fmt.Fprintf(&b, "Page Count: %d\n", result.Metadata.PageCount)

	if n := len(result.FontsUsed); n > 0 && n <= 10 {
		fmt.Fprintf(&b, "\nFONTS USED\n%s\n", strings.Repeat("-", 30))
		for _, font := range result.FontsUsed {
			fmt.Fprintf(&b, "- %s\n", font)
		}
	}

	fmt.Fprintf(&b, "\nPAGES\n%s\n", strings.Repeat("-", 30))
	for _, page := range result.Pages {
		if page.Error != "" {
			fmt.Fprintf(&b, "Page %d: FAILED (%s)\n", page.PageNumber, page.Error)
			continue
		}
		fmt.Fprintf(&b, "Page %d: %d words, %d chars, %d fonts, %d images\n",
			page.PageNumber, page.WordCount, page.CharCount, len(page.Fonts), len(page.Images))
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\nERRORS\n%s\n", strings.Repeat("-", 30))
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	rate := 0.0
	if result.ExtractionTime > 0 {
		rate = float64(result.Totals.Words) / result.ExtractionTime
	}
	fmt.Fprintf(&b, "\nProcessing Rate: %.0f words/second\n", rate)

	return b.String()
}

func writeMetaLine(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", key, value)
	}
}
