// Package datastore implements the JSON-document store backing every
// collection. Each collection is a single pretty-printed JSON file that
// is read and rewritten whole; there is no locking, so concurrent
// writers to the same path are last-writer-wins.
package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casadecultura/backend/internal/infrastructure/logger"
)

// Store reads and writes JSON documents on local disk.
type Store struct {
	logger *logger.Logger
}

// New creates a new store.
func New(appLogger *logger.Logger) *Store {
	return &Store{logger: appLogger}
}

// Load reads the JSON document at path into out. A missing or
// unparseable file is a recoverable condition: the default document is
// written back (best effort) and returned, and healed reports that this
// happened. Only a failure to re-marshal the default is a hard error.
func Load[T any](s *Store, path string, def T) (doc T, healed bool, err error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var out T
		if uerr := json.Unmarshal(data, &out); uerr == nil {
			return out, false, nil
		}
		s.logger.Warnw("Collection file is corrupt, resetting to default", "path", path)
	} else if !os.IsNotExist(err) {
		s.logger.Warnw("Collection file is unreadable, resetting to default", "path", path, "error", err.Error())
	}

	if werr := s.Save(path, def); werr != nil {
		// The caller still gets a usable default; the write is retried
		// on the next Save anyway.
		s.logger.Errorw("Failed to write default collection", "path", path, "error", werr.Error())
	}

	return def, true, nil
}

// Save serializes the full document and overwrites the file. Documents
// are pretty-printed so data files stay diffable and hand-editable.
func (s *Store) Save(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}

// Exists reports whether a document is present at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
