package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/excerpo/internal/interfaces"
	"github.com/ternarybob/excerpo/internal/models"
)

// CacheStorage implements the CacheStorage interface for Badger
type CacheStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCacheStorage creates a new CacheStorage instance
func NewCacheStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CacheStorage {
	return &CacheStorage{
		db:     db,
		logger: logger,
	}
}

// Get returns the cache entry for hash, or nil when there is no hit.
func (s *CacheStorage) Get(hash string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	if err := s.db.Store().Get(hash, &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores or replaces the entry for its content hash.
func (s *CacheStorage) Put(entry *models.CacheEntry) error {
	if entry.ContentHash == "" {
		return fmt.Errorf("cache entry content hash is required")
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(entry.ContentHash, entry); err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}

	s.logger.Debug().Str("hash", entry.ContentHash).Str("json", entry.JSONPath).Msg("Registered cache entry")
	return nil
}

// Delete removes the entry for hash. Missing entries are not an error.
func (s *CacheStorage) Delete(hash string) error {
	if err := s.db.Store().Delete(hash, &models.CacheEntry{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
