package record

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Awindblowsggggg/Telegrambot/core/logger"
	"log/slog"
)

// PostgresStore implements Store on a relational backend for
// deployments that already run a database. Ordering is deliberately NOT
// delegated to SQL: rows are compared in Go with MoreRecent so that the
// recency semantics (flawed tie-break included) match the file store
// exactly.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an already-connected database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const upsertRecord = `
INSERT INTO condition_records (
	vehicle_id, condition, kind, entry_date, entry_time, meridiem,
	amount, driver1, driver2, note, tonnage, submitted_by
) VALUES (
	:vehicle_id, :condition, :kind, :entry_date, :entry_time, :meridiem,
	:amount, :driver1, :driver2, :note, :tonnage, :submitted_by
)
ON CONFLICT (vehicle_id, entry_date, entry_time, meridiem) DO UPDATE SET
	condition = EXCLUDED.condition,
	kind = EXCLUDED.kind,
	amount = EXCLUDED.amount,
	driver1 = EXCLUDED.driver1,
	driver2 = EXCLUDED.driver2,
	note = EXCLUDED.note,
	tonnage = EXCLUDED.tonnage,
	submitted_by = EXCLUDED.submitted_by`

// Persist upserts on the composite key, keeping the silent-overwrite
// contract of the file store.
func (s *PostgresStore) Persist(ctx context.Context, rec Record) error {
	start := time.Now()
	if _, err := s.db.NamedExecContext(ctx, upsertRecord, rec); err != nil {
		logger.Error(ctx, "records", "store.persist",
			slog.String("status", "fail"),
			slog.String("vehicle_id", rec.VehicleID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("record store: upsert: %w", err)
	}
	logger.Info(ctx, "records", "store.persist",
		slog.String("status", "ok"),
		slog.String("vehicle_id", rec.VehicleID),
		slog.String("kind", string(rec.Kind)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// MostRecentFor loads every row for the vehicle and picks the latest in Go.
func (s *PostgresStore) MostRecentFor(ctx context.Context, vehicleID string) (Record, bool, error) {
	var recs []Record
	err := s.db.SelectContext(ctx, &recs,
		`SELECT * FROM condition_records WHERE vehicle_id = $1`, vehicleID)
	if err != nil {
		return Record{}, false, fmt.Errorf("record store: select by vehicle: %w", err)
	}
	if len(recs) == 0 {
		return Record{}, false, nil
	}
	best := recs[0]
	for _, r := range recs[1:] {
		if MoreRecent(r, best) {
			best = r
		}
	}
	return best, true, nil
}

// AllLatestByVehicle loads all rows and folds them per vehicle.
func (s *PostgresStore) AllLatestByVehicle(ctx context.Context) (map[string]Record, error) {
	var recs []Record
	if err := s.db.SelectContext(ctx, &recs, `SELECT * FROM condition_records`); err != nil {
		return nil, fmt.Errorf("record store: select all: %w", err)
	}
	return latestByVehicle(recs), nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
