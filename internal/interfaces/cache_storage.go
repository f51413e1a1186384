package interfaces

import "github.com/ternarybob/excerpo/internal/models"

// CacheStorage maps file content hashes to prior extraction artifacts.
// Implementations are constructed explicitly and injected into the
// orchestrator so tests can supply an isolated in-memory cache.
type CacheStorage interface {
	// Get returns the entry for hash, or nil when there is no hit.
	Get(hash string) (*models.CacheEntry, error)

	// Put stores or replaces the entry for its content hash.
	Put(entry *models.CacheEntry) error

	// Delete removes the entry for hash. Missing entries are not an error.
	Delete(hash string) error
}
