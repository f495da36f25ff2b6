package record

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	ctx := context.Background()
	e := NewCSVExporter(path)

	r1 := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	r1.Condition = "Listo"
	r1.Amount = 1500
	r1.Tonnage = 20
	r1.SubmittedBy = "Ana"
	require.NoError(t, e.Append(ctx, r1))

	r2 := rec("VW1", "11/03/2025", "2:30", "PM", KindEnd)
	require.NoError(t, e.Append(ctx, r2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "4227", rows[1][0])
	assert.Equal(t, "9:00 AM", rows[1][4])
	assert.Equal(t, "1500", rows[1][5])
	assert.Equal(t, "Ana", rows[1][10])
	assert.Equal(t, "VW1", rows[2][0])
}

func TestCSVExporterNoteWithCommaStaysOneField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	e := NewCSVExporter(path)

	r := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	r.Note = "oil changed, filter pending"
	require.NoError(t, e.Append(context.Background(), r))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, r.Note, rows[1][8])
}
