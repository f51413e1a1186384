package interfaces

import "github.com/ternarybob/excerpo/internal/models"

// ResultWriter persists extraction results as output artifacts.
type ResultWriter interface {
	// WriteJSON writes the full structured result and returns the artifact path.
	WriteJSON(result *models.ExtractionResult) (string, error)

	// WriteSummary writes the human-readable text summary and returns its path.
	WriteSummary(result *models.ExtractionResult) (string, error)

	// ReadJSON loads a previously written JSON artifact.
	ReadJSON(path string) (*models.ExtractionResult, error)
}
