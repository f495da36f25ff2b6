package record

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Awindblowsggggg/Telegrambot/core/logger"
	"log/slog"
)

// FileStore keeps every record in a single JSON file keyed by the
// composite record key. The whole file is loaded once at startup and
// rewritten after every persist. That is fine for the volumes this bot
// sees (a handful of records per day); a mutex serializes the
// read-modify-write against concurrent conversations.
type FileStore struct {
	path string

	mu   sync.Mutex
	recs map[string]Record
}

// NewFileStore loads the store file, creating an empty store when the
// file does not exist yet. A file with corrupt JSON is moved aside to
// <path>.corrupt and reported as an error rather than silently dropped.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		recs: make(map[string]Record),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.recs); err != nil {
		backup := path + ".corrupt"
		_ = os.Rename(path, backup)
		return nil, fmt.Errorf("record store: corrupt JSON in %s (backed up to %s): %w", path, backup, err)
	}

	logger.Info(context.Background(), "records", "store.loaded",
		slog.String("status", "ok"),
		slog.String("path", path),
		slog.Int("count", len(s.recs)),
	)
	return s, nil
}

// Persist stores the record and rewrites the backing file before returning.
func (s *FileStore) Persist(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	prev, overwrite := s.recs[key]
	s.recs[key] = rec

	start := time.Now()
	if err := s.writeLocked(); err != nil {
		// Roll the in-memory map back so lookups keep answering from
		// what is actually on disk.
		if overwrite {
			s.recs[key] = prev
		} else {
			delete(s.recs, key)
		}
		logger.Error(ctx, "records", "store.persist",
			slog.String("status", "fail"),
			slog.String("vehicle_id", rec.VehicleID),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.Info(ctx, "records", "store.persist",
		slog.String("status", "ok"),
		slog.String("vehicle_id", rec.VehicleID),
		slog.String("kind", string(rec.Kind)),
		slog.Bool("overwrite", overwrite),
		slog.Int("count", len(s.recs)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// MostRecentFor scans the store for the latest record of one vehicle.
func (s *FileStore) MostRecentFor(_ context.Context, vehicleID string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best Record
	found := false
	for _, r := range s.recs {
		if r.VehicleID != vehicleID {
			continue
		}
		if !found || MoreRecent(r, best) {
			best = r
			found = true
		}
	}
	return best, found, nil
}

// AllLatestByVehicle returns the most recent record per vehicle.
func (s *FileStore) AllLatestByVehicle(_ context.Context) (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]Record, 0, len(s.recs))
	for _, r := range s.recs {
		recs = append(recs, r)
	}
	return latestByVehicle(recs), nil
}

// Close is a no-op for the file store; every persist already flushed.
func (s *FileStore) Close() error { return nil }

// writeLocked rewrites the whole file atomically (temp file + rename).
// Callers must hold s.mu.
func (s *FileStore) writeLocked() error {
	data, err := json.MarshalIndent(s.recs, "", "  ")
	if err != nil {
		return fmt.Errorf("record store: marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("record store: create dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("record store: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("record store: rename temp file: %w", err)
	}
	return nil
}
