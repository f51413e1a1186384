package models

import "fmt"

// ValidationError reports a bad input path or extension. Extraction is not
// attempted when validation fails.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

// DocumentOpenError reports a whole-document failure: the file could not be
// opened as a PDF (corrupt, encrypted without password, zero-length).
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("cannot open document %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// PageExtractionError reports a single page failing to extract. It is
// recorded on that page and never aborts the document.
type PageExtractionError struct {
	PageNumber int
	Err        error
}

func (e *PageExtractionError) Error() string {
	return fmt.Sprintf("page %d: %v", e.PageNumber, e.Err)
}

func (e *PageExtractionError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist extraction artifacts. The
// in-memory result remains valid when this is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
