package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// invalidDateDisplay is shown for backup files whose filename timestamp
// cannot be decoded. Such files are still listed and restorable.
const invalidDateDisplay = "invalid date"

// displayLayout renders a decoded backup timestamp for listings.
const displayLayout = "02/01/2006 15:04:05"

// BackupService snapshots and restores the events and news collections.
// A restore writes a safety snapshot of the current live data before
// touching either collection; the two live-file writes themselves are
// sequential and not mutually atomic.
type BackupService struct {
	store      *datastore.Store
	eventsPath string
	newsPath   string
	backupDir  string
	logger     *logger.Logger
}

// NewBackupService creates a new backup service.
func NewBackupService(store *datastore.Store, eventsPath, newsPath, backupDir string, logger *logger.Logger) *BackupService {
	return &BackupService{
		store:      store,
		eventsPath: eventsPath,
		newsPath:   newsPath,
		backupDir:  backupDir,
		logger:     logger,
	}
}

func (s *BackupService) loadLive() ([]entities.Event, []entities.News, error) {
	events, _, err := datastore.Load(s.store, s.eventsPath, []entities.Event{})
	if err != nil {
		return nil, nil, fmt.Errorf("load events: %w", err)
	}

	news, _, err := datastore.Load(s.store, s.newsPath, []entities.News{})
	if err != nil {
		return nil, nil, fmt.Errorf("load news: %w", err)
	}

	return events, news, nil
}

// CreateBackup snapshots the current events and news collections into a
// timestamped file in the backup directory.
func (s *BackupService) CreateBackup(ctx context.Context) (*entities.BackupRecord, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	events, news, err := s.loadLive()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	name := backupFilename(now)
	doc := entities.Backup{
		Timestamp: now,
		Events:    events,
		News:      news,
	}

	path := filepath.Join(s.backupDir, name)
	if err := s.store.Save(path, doc); err != nil {
		return nil, fmt.Errorf("write backup: %w", err)
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	s.logger.Info("Backup created", "filename", name, "events", len(events), "news", len(news))

	return &entities.BackupRecord{
		Filename:      name,
		Timestamp:     now.Format(stampLayout),
		FormattedDate: now.Format(displayLayout),
		Size:          size,
	}, nil
}

// ListBackups enumerates the backup directory. Records are sorted by raw
// filename descending; for the fixed-width timestamp encoding this
// matches reverse chronological order, and it stays deterministic even
// for filenames whose timestamp does not decode.
func (s *BackupService) ListBackups(ctx context.Context) ([]entities.BackupRecord, error) {
	dirEntries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.BackupRecord{}, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	records := make([]entities.BackupRecord, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !isBackupFile(entry.Name()) {
			continue
		}

		stamp := stampFromFilename(entry.Name())
		record := entities.BackupRecord{
			Filename:      entry.Name(),
			Timestamp:     stamp,
			FormattedDate: invalidDateDisplay,
		}

		if t, err := decodeBackupStamp(stamp); err == nil {
			record.Timestamp = t.Format(stampLayout)
			record.FormattedDate = t.Format(displayLayout)
		}

		if info, err := entry.Info(); err == nil {
			record.Size = info.Size()
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Filename > records[j].Filename
	})

	return records, nil
}

// Restore replaces the live events and news collections with the
// contents of the named backup. The current live state is written to a
// backup-before-restore snapshot first; if that snapshot cannot be
// written durably, the restore is aborted and live data is untouched.
func (s *BackupService) Restore(ctx context.Context, filename string) (*ports.RestoreResult, error) {
	// The filename comes from the client; never let it escape the
	// backup directory.
	if filename == "" || filepath.Base(filename) != filename {
		return nil, entities.ErrBackupNotFound
	}

	path := filepath.Join(s.backupDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entities.ErrBackupNotFound
		}
		return nil, fmt.Errorf("read backup: %w", err)
	}

	// Structural validation only: the document must carry both
	// collections, and neither may be null. Entity contents are
	// restored as-is.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, entities.ErrInvalidBackup
	}
	for _, key := range []string{"events", "news"} {
		raw, ok := probe[key]
		if !ok || string(raw) == "null" {
			return nil, entities.ErrInvalidBackup
		}
	}

	var backup entities.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, entities.ErrInvalidBackup
	}

	// Safety snapshot of the current live state. This must be on disk
	// before either live file changes so a failure mid-restore stays
	// recoverable.
	liveEvents, liveNews, err := s.loadLive()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	safetyName := beforeRestoreFilename(now)
	safetyDoc := entities.Backup{
		Timestamp: now,
		Events:    liveEvents,
		News:      liveNews,
	}

	if err := s.store.Save(filepath.Join(s.backupDir, safetyName), safetyDoc); err != nil {
		return nil, fmt.Errorf("write pre-restore snapshot: %w", err)
	}

	if err := s.store.Save(s.eventsPath, backup.Events); err != nil {
		return nil, fmt.Errorf("restore events: %w", err)
	}

	if err := s.store.Save(s.newsPath, backup.News); err != nil {
		// Events are already restored; the safety snapshot holds the
		// previous state of both collections.
		return nil, fmt.Errorf("restore news: %w", err)
	}

	s.logger.Info("Backup restored",
		"filename", filename,
		"safety_snapshot", safetyName,
		"events", len(backup.Events),
		"news", len(backup.News),
	)

	return &ports.RestoreResult{
		Restored:       filename,
		SafetySnapshot: safetyName,
		Events:         len(backup.Events),
		News:           len(backup.News),
	}, nil
}
