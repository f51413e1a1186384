// -----------------------------------------------------------------------
// PDF Reader Adapter - Scoped access to pages, fonts, images and metadata
// Uses pdfcpu for document structure and rsc.io/pdf for text content
// -----------------------------------------------------------------------

package reader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	pdfr "rsc.io/pdf"

	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
)

// Reader implements the DocumentReader interface using pdfcpu and rsc.io/pdf
type Reader struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.DocumentReader = (*Reader)(nil)

// NewReader creates a new PDF document reader
func NewReader(logger arbor.ILogger) *Reader {
	return &Reader{logger: logger}
}

// Open opens the PDF at path. The returned Document owns an open file handle
// and a temp directory for image extraction; callers must Close it on every
// exit path.
func (r *Reader) Open(ctx context.Context, path string) (interfaces.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &models.DocumentOpenError{Path: path, Err: err}
	}
	if info.Size() == 0 {
		return nil, &models.DocumentOpenError{Path: path, Err: fmt.Errorf("zero-length file")}
	}

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, &models.DocumentOpenError{Path: path, Err: classifyOpenError(err)}
	}

	// pdfcpu may open owner-password-only documents with an empty user
	// password. We treat any encrypted document without a supplied password
	// as unreadable so the failure mode is deterministic.
	if pdfCtx.Encrypt != nil {
		return nil, &models.DocumentOpenError{
			Path: path,
			Err:  fmt.Errorf("document is encrypted and no password was supplied"),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DocumentOpenError{Path: path, Err: err}
	}

	textReader, err := newTextReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, &models.DocumentOpenError{Path: path, Err: classifyOpenError(err)}
	}

	doc := &Document{
		path:   path,
		file:   f,
		pdfCtx: pdfCtx,
		text:   textReader,
		logger: r.logger,
		meta:   buildMetadata(pdfCtx, info.Size()),
	}

	r.logger.Debug().
		Str("path", path).
		Int("page_count", doc.meta.PageCount).
		Int64("file_size", doc.meta.FileSize).
		Msg("Opened PDF document")

	return doc, nil
}

// newTextReader wraps rsc.io/pdf reader construction, converting its panics
// on malformed cross-reference data into errors.
func newTextReader(f *os.File, size int64) (rd *pdfr.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed document structure: %v", rec)
		}
	}()
	return pdfr.NewReader(f, size)
}

// classifyOpenError keeps encryption failures distinguishable from plain
// corruption in the resulting error message.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("document is encrypted: %w", err)
	}
	return fmt.Errorf("not a valid PDF: %w", err)
}

func buildMetadata(pdfCtx *model.Context, fileSize int64) models.DocumentMetadata {
	return models.DocumentMetadata{
		Title:        strings.TrimSpace(pdfCtx.Title),
		Author:       strings.TrimSpace(pdfCtx.Author),
		Subject:      strings.TrimSpace(pdfCtx.Subject),
		Creator:      strings.TrimSpace(pdfCtx.Creator),
		Producer:     strings.TrimSpace(pdfCtx.Producer),
		CreationDate: strings.TrimSpace(pdfCtx.XRefTable.CreationDate),
		PageCount:    pdfCtx.PageCount,
		FileSize:     fileSize,
		IsEncrypted:  pdfCtx.Encrypt != nil,
	}
}
