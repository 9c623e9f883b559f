package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseConfig holds the SQLite connection settings.
type DatabaseConfig struct {
	Path        string `json:"path"`
	JournalMode string `json:"journalMode"`
	Synchronous string `json:"synchronous"`
	BusyTimeout int    `json:"busyTimeout"` // milliseconds
}

// NewDatabaseConfig returns the default settings for the database file at path.
func NewDatabaseConfig(path string) *DatabaseConfig {
	return &DatabaseConfig{
		Path:        path,
		JournalMode: "WAL",
		Synchronous: "NORMAL",
		BusyTimeout: 5000,
	}
}

// GetDSN returns the data source name for the sqlite driver.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s?_journal_mode=%s&_synchronous=%s&_busy_timeout=%d&_foreign_keys=on",
		c.Path, c.JournalMode, c.Synchronous, c.BusyTimeout)
}

// ValidateConfig validates the database configuration.
func (c *DatabaseConfig) ValidateConfig() error {
	if c.Path == "" {
		return fmt.Errorf("SQLite path cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout must not be negative")
	}
	return nil
}

// EnsureDirectoryExists creates the folder holding the database file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}
