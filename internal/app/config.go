package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/Awindblowsggggg/Telegrambot/core/config"
	coredatabase "github.com/Awindblowsggggg/Telegrambot/core/database"
	"github.com/Awindblowsggggg/Telegrambot/internal/catalog"
)

const (
	// StorageFile keeps records in a single JSON file next to the bot.
	StorageFile = "file"
	// StoragePostgres keeps records in a PostgreSQL table.
	StoragePostgres = "postgres"
)

// StorageConfig selects and parameterizes the record store backend.
type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	// File is the JSON store path, used when Driver is "file".
	File string `yaml:"file" envconfig:"STORAGE_FILE"`
	// CSV is the append-only export path; empty disables the export.
	CSV      string              `yaml:"csv" envconfig:"STORAGE_CSV"`
	Database coredatabase.Config `yaml:"database"`
}

// AppConfig is the full configuration of the condition-form bot: the
// transport core plus storage and the form option catalog.
type AppConfig struct {
	coreconfig.Config `yaml:",inline"`

	Storage StorageConfig   `yaml:"storage"`
	Catalog catalog.Catalog `yaml:"catalog"`
}

// CoreConfig exposes the embedded transport configuration.
func (a *AppConfig) CoreConfig() *coreconfig.Config {
	return &a.Config
}

// LoadConfig reads the application configuration from YAML, applies
// environment overrides, and validates every section.
func LoadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalizeStorage(&cfg.Storage); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeStorage(s *StorageConfig) error {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		driver = StorageFile
	}
	switch driver {
	case StorageFile:
		if strings.TrimSpace(s.File) == "" {
			s.File = "data/records.json"
		}
	case StoragePostgres:
		if s.Database.Host == "" || s.Database.Name == "" {
			return fmt.Errorf("storage.database host and name are required when storage.driver is 'postgres'")
		}
	default:
		return fmt.Errorf("invalid storage.driver %q; allowed: file, postgres", s.Driver)
	}
	s.Driver = driver
	return nil
}
