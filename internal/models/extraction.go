// -----------------------------------------------------------------------
// Extraction Models - Structured results produced by the extraction pipeline
// -----------------------------------------------------------------------

package models

import "time"

// DocumentMetadata is the normalized document-level metadata of a PDF.
// The underlying library reports a loosely typed info dictionary; we map it
// into a fixed set of optional fields so downstream consumers have a stable
// contract.
type DocumentMetadata struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	PageCount    int    `json:"page_count"`
	FileSize     int64  `json:"file_size"`
	IsEncrypted  bool   `json:"is_encrypted"`
}

// PageImage describes one embedded image found on a page.
type PageImage struct {
	Index     int    `json:"index"`
	Name      string `json:"name,omitempty"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

// PageRecord is the extraction result for a single page. Records are ordered
// by page number within their parent ExtractionResult and never shared.
type PageRecord struct {
	PageNumber int         `json:"page_number"`
	Text       string      `json:"text"`
	WordCount  int         `json:"word_count"`
	CharCount  int         `json:"char_count"`
	Fonts      []string    `json:"fonts"`
	Images     []PageImage `json:"images,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ExtractionTotals aggregates counts across all successfully processed pages.
type ExtractionTotals struct {
	Words  int `json:"words"`
	Chars  int `json:"chars"`
	Images int `json:"images"`
}

// ExtractionResult is the aggregate result for one document. It is assembled
// once per extraction run and immutable afterwards.
type ExtractionResult struct {
	ID             string           `json:"id"`
	SourcePath     string           `json:"source_path"`
	ContentHash    string           `json:"content_hash"`
	Metadata       DocumentMetadata `json:"metadata"`
	Pages          []PageRecord     `json:"pages"`
	Totals         ExtractionTotals `json:"totals"`
	FontsUsed      []string         `json:"fonts_used,omitempty"`
	Success        bool             `json:"success"`
	Errors         []string         `json:"errors,omitempty"`
	Timestamp      string           `json:"timestamp"`
	ExtractionTime float64          `json:"extraction_time"`
	FileSizeBytes  int64            `json:"file_size_bytes"`

	// CacheHit is set when the result was reloaded from a prior artifact
	// rather than freshly extracted. Not serialized.
	CacheHit bool `json:"-"`
}

// CacheEntry maps a file content hash to the artifacts of a prior successful
// extraction. Entries are only ever replaced, never mutated in place.
type CacheEntry struct {
	ContentHash string    `json:"content_hash" badgerhold:"key"`
	SourcePath  string    `json:"source_path"`
	JSONPath    string    `json:"json_path"`
	SummaryPath string    `json:"summary_path,omitempty"`
	PageCount   int       `json:"page_count"`
	TotalWords  int       `json:"total_words"`
	TotalImages int       `json:"total_images"`
	CreatedAt   time.Time `json:"created_at"`
}
