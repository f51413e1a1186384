package serializer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/excerpo/internal/models"
)

func sampleResult() *models.ExtractionResult {
	return &models.ExtractionResult{
		ID:          "ext_test",
		SourcePath:  "/docs/report.pdf",
		ContentHash: "5eb63bbbe01eeed093cb22bb8f5acdc3",
		Metadata: models.DocumentMetadata{
			Title:     "Quarterly Report",
			Author:    "Finance",
			PageCount: 2,
			FileSize:  2048,
		},
		Pages: []models.PageRecord{
			{
				PageNumber: 1,
				Text:       "first page text",
				WordCount:  3,
				CharCount:  15,
				Fonts:      []string{"Helvetica (12.0pt)"},
				Images:     []models.PageImage{{Index: 0, Format: "png", Width: 16, Height: 16, SizeBytes: 95}},
			},
			{
				PageNumber: 2,
				Text:       "second page",
				WordCount:  2,
				CharCount:  11,
				Fonts:      []string{},
			},
		},
		Totals:         models.ExtractionTotals{Words: 5, Chars: 26, Images: 1},
		FontsUsed:      []string{"Helvetica (12.0pt)"},
		Success:        true,
		Timestamp:      "2026-08-28T10:00:00Z",
		ExtractionTime: 0.42,
		FileSizeBytes:  2048,
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	original := sampleResult()
	path, err := writer.WriteJSON(original)
	require.NoError(t, err)
	assert.FileExists(t, path)

	reloaded, err := writer.ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestArtifactFilenames(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	result := sampleResult()
	jsonPath, err := writer.WriteJSON(result)
	require.NoError(t, err)
	summaryPath, err := writer.WriteSummary(result)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^report_\d{8}_\d{6}\.json$`), filepath.Base(jsonPath))
	assert.Regexp(t, regexp.MustCompile(`^report_\d{8}_\d{6}_summary\.txt$`), filepath.Base(summaryPath))
}

func TestArtifactCollisionSuffix(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	result := sampleResult()
	first, err := writer.WriteJSON(result)
	require.NoError(t, err)
	second, err := writer.WriteJSON(result)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same-second writes must not overwrite each other")
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}

func TestWriteSummaryContents(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	result := sampleResult()
	result.Errors = []string{"page 2: corrupt page content"}
	result.Success = false
	path, err := writer.WriteSummary(result)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	summary := string(data)

	assert.Contains(t, summary, "PDF EXTRACTION SUMMARY")
	assert.Contains(t, summary, "File: report.pdf")
	assert.Contains(t, summary, "Pages: 2")
	assert.Contains(t, summary, "Words: 5")
	assert.Contains(t, summary, "Images: 1")
	assert.Contains(t, summary, "Title: Quarterly Report")
	assert.Contains(t, summary, "Helvetica (12.0pt)")
	assert.Contains(t, summary, "Page 1: 3 words")
	assert.Contains(t, summary, "Success: false")
	assert.Contains(t, summary, "page 2: corrupt page content")
}

func TestWriteJSONCompactForLargeSources(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	result := sampleResult()
	result.FileSizeBytes = 60 * 1024 * 1024
	path, err := writer.WriteJSON(result)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n  ", "large sources are serialized compact")

	var reloaded models.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &reloaded))
	assert.Equal(t, result.ContentHash, reloaded.ContentHash)
}

func TestWriteErrorOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	logger := arbor.NewLogger()
	writer := NewWriter(blocked, logger)

	_, err := writer.WriteJSON(sampleResult())
	var writeErr *models.WriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestReadJSONMissing(t *testing.T) {
	logger := arbor.NewLogger()
	writer := NewWriter(t.TempDir(), logger)

	_, err := writer.ReadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
