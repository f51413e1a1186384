// -----------------------------------------------------------------------
// Document Reader Interface - Scoped access to one open PDF document
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/excerpo/internal/models"
)

// DocumentReader opens PDF documents for extraction. Implementations hold no
// state between Open calls; each returned Document owns its file handle.
type DocumentReader interface {
	// Open validates and opens the document at path. The caller must Close
	// the returned Document on every exit path.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is one open PDF. Page numbers are 1-indexed. Not safe for
// concurrent page access; pages are read strictly sequentially.
type Document interface {
	// PageCount returns the total number of pages.
	PageCount() int

	// Metadata returns normalized document-level metadata.
	Metadata() models.DocumentMetadata

	// PageText extracts the text of one page along with the distinct font
	// descriptors used on it. An empty font list is not an error.
	PageText(pageNr int) (string, []string, error)

	// PageImages extracts descriptors for the embedded images on one page.
	// Returned warnings cover individual images that could not be decoded.
	PageImages(pageNr int) ([]models.PageImage, []string, error)

	// Close releases the underlying file handle.
	Close() error
}
