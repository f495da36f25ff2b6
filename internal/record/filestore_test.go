package record

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	r1 := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	r1.Condition = "Listo"
	require.NoError(t, s.Persist(ctx, r1))

	r2 := rec("4227", "11/03/2025", "8:00", "AM", KindEnd)
	require.NoError(t, s.Persist(ctx, r2))

	got, found, err := s.MostRecentFor(ctx, "4227")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, KindEnd, got.Kind)

	// A fresh store over the same file sees the same data.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	got, found, err = reloaded.MostRecentFor(ctx, "4227")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "11/03/2025", got.Date)

	_, found, err = reloaded.MostRecentFor(ctx, "VW1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreSilentOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	first := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	first.Amount = 100
	require.NoError(t, s.Persist(ctx, first))

	second := first
	second.Amount = 999
	second.Kind = KindEnd
	require.NoError(t, s.Persist(ctx, second))

	got, found, err := s.MostRecentFor(ctx, "4227")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(999), got.Amount)
	assert.Equal(t, KindEnd, got.Kind)

	latest, err := s.AllLatestByVehicle(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestFileStoreFailedRewriteKeepsDurableState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	first := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	first.Amount = 100
	require.NoError(t, s.Persist(ctx, first))

	// Break the rename step by putting a directory where the file lives.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	second := first
	second.Amount = 999
	second.Kind = KindEnd
	require.Error(t, s.Persist(ctx, second))

	// The overwrite never reached disk, so lookups must still see the
	// old record, not the one the failed persist tried to store.
	got, found, err := s.MostRecentFor(ctx, "4227")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(100), got.Amount)
	assert.Equal(t, KindStart, got.Kind)

	fresh := rec("VW1", "11/03/2025", "8:00", "AM", KindStart)
	require.Error(t, s.Persist(ctx, fresh))
	_, found, err = s.MostRecentFor(ctx, "VW1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	latest, err := s.AllLatestByVehicle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestFileStoreCorruptFileBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path)
	require.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "corrupt file should be moved aside")
}
