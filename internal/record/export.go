package record

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/Awindblowsggggg/Telegrambot/core/logger"
	"log/slog"
)

// csvHeader mirrors the record field order, one column per field.
var csvHeader = []string{
	"vehicle_id",
	"condition",
	"kind",
	"date",
	"time",
	"amount",
	"driver1",
	"driver2",
	"note",
	"tonnage",
	"submitted_by",
}

// CSVExporter mirrors every persisted record as one row of an
// append-only CSV file. The header is written once, the first time the
// file is used. Rows are never rewritten; the JSON store stays the
// authoritative copy and the export is a spreadsheet-friendly mirror.
type CSVExporter struct {
	path string
	mu   sync.Mutex
}

// NewCSVExporter prepares an exporter for the given file path.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// Append writes one record as a CSV row, creating the file and header
// on first use.
func (e *CSVExporter) Append(ctx context.Context, rec Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv export: create dir: %w", err)
		}
	}

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("csv export: open %s: %w", e.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csv export: stat %s: %w", e.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("csv export: write header: %w", err)
		}
	}
	row := []string{
		rec.VehicleID,
		rec.Condition,
		string(rec.Kind),
		rec.Date,
		rec.TimeLabel(),
		strconv.FormatInt(rec.Amount, 10),
		rec.Driver1,
		rec.Driver2,
		rec.Note,
		strconv.Itoa(rec.Tonnage),
		rec.SubmittedBy,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("csv export: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv export: flush: %w", err)
	}

	logger.Debug(ctx, "records", "export.append",
		slog.String("status", "ok"),
		slog.String("vehicle_id", rec.VehicleID),
		slog.String("path", e.path),
	)
	return nil
}
