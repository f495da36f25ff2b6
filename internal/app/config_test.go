package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
telegram:
  token: "123:abc"
  run_mode: longpoll

storage:
  driver: file

catalog:
  vehicles:
    - ["4227", "4242"]
  conditions:
    - ["Listo"]
  drivers:
    - "Raidel Castel Neyra"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "data/records.json", cfg.Storage.File)
	assert.Equal(t, "longpoll", cfg.Telegram.RunMode)
	assert.NotNil(t, cfg.CoreConfig())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	cfg := `
telegram:
  token: "123:abc"

storage:
  driver: redis

catalog:
  vehicles: [["4227"]]
  conditions: [["Listo"]]
  drivers: ["Raidel Castel Neyra"]
`
	_, err := LoadConfig(writeConfig(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestLoadConfigRequiresCatalog(t *testing.T) {
	cfg := `
telegram:
  token: "123:abc"

catalog:
  vehicles: [["4227"]]
  conditions: []
  drivers: ["Raidel Castel Neyra"]
`
	_, err := LoadConfig(writeConfig(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condition")
}

func TestLoadConfigPostgresNeedsDatabase(t *testing.T) {
	cfg := `
telegram:
  token: "123:abc"

storage:
  driver: postgres

catalog:
  vehicles: [["4227"]]
  conditions: [["Listo"]]
  drivers: ["Raidel Castel Neyra"]
`
	_, err := LoadConfig(writeConfig(t, cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.database")
}
