package badger

import (
	"fmt"
	"os"
	"path/filepath"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/excerpo/internal/common"
)

// BadgerDB manages the Badger database connection
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	config *common.BadgerConfig
}

// NewBadgerDB creates a new Badger database connection. With InMemory set,
// nothing touches disk and each connection gets an isolated store.
func NewBadgerDB(logger arbor.ILogger, config *common.BadgerConfig) (*BadgerDB, error) {
	options := badgerhold.DefaultOptions
	options.Logger = nil // Disable default badger logger to use arbor

	if config.InMemory {
		options.Options = badgerdb.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else {
		// If reset_on_startup is enabled, delete the existing database
		if config.ResetOnStartup {
			if _, err := os.Stat(config.Path); err == nil {
				logger.Debug().Str("path", config.Path).Msg("Deleting existing database (reset_on_startup=true)")
				if err := os.RemoveAll(config.Path); err != nil {
					logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to delete database directory")
				}
			}
		}

		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		options.Dir = config.Path
		options.ValueDir = config.Path
	}

	logger.Debug().Str("path", config.Path).Bool("in_memory", config.InMemory).Msg("Opening Badger database connection")

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &BadgerDB{
		store:  store,
		logger: logger,
		config: config,
	}, nil
}

// Store returns the underlying badgerhold store
func (db *BadgerDB) Store() *badgerhold.Store {
	return db.store
}

// Close closes the database connection
func (db *BadgerDB) Close() error {
	if db.store == nil {
		return nil
	}
	db.logger.Debug().Msg("Closing Badger database connection")
	return db.store.Close()
}
