// -----------------------------------------------------------------------
// Extractor Service Interface - Orchestrates the extraction pipeline
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/excerpo/internal/models"
)

// ExtractorService runs the full extraction pipeline for one document:
// validation, hashing, cache lookup, page iteration, artifact persistence,
// cache registration.
type ExtractorService interface {
	// Extract processes the PDF at path and returns its structured result.
	// Expected failure modes (corrupt file, bad pages, encryption) are
	// reported through the result's Success flag and error list, not as a
	// returned error. A returned error is a ValidationError (extraction not
	// attempted) or a WriteError (result valid, artifacts not persisted).
	Extract(ctx context.Context, path string) (*models.ExtractionResult, error)
}
