package common

import (
	"github.com/google/uuid"
)

// NewExtractionID generates a unique extraction run ID with the "ext_" prefix
// Format: ext_<uuid>
func NewExtractionID() string {
	return "ext_" + uuid.New().String()
}
