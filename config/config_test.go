package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileBacksEnvKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todoapp.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 9090\ntoken_ttl = \"5m\"\nadmin_legacy_401 = true\n"), 0o600))
	require.NoError(t, LoadFile(path))
	t.Cleanup(func() { fileValues = map[string]string{} })

	assert.Equal(t, 9090, GetPort())
	assert.Equal(t, 5*time.Minute, GetTokenTTL())
	assert.True(t, IsAdminLegacy401())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todoapp.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 9090\n"), 0o600))
	require.NoError(t, LoadFile(path))
	t.Cleanup(func() { fileValues = map[string]string{} })

	t.Setenv("TODO_PORT", "7070")
	assert.Equal(t, 7070, GetPort())
}

func TestDefaults(t *testing.T) {
	t.Setenv("TODO_PORT", "not-a-port")
	t.Setenv("TODO_TOKEN_TTL", "-1s")
	assert.Equal(t, defaultPort, GetPort())
	assert.Equal(t, defaultTokenTTL, GetTokenTTL())
	assert.Equal(t, "todoapp", GetName())
}

func TestDatabaseConfig(t *testing.T) {
	c := NewDatabaseConfig("db/todoapp.db")
	require.NoError(t, c.ValidateConfig())
	assert.Equal(t, "db/todoapp.db?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on", c.GetDSN())

	assert.Error(t, NewDatabaseConfig("").ValidateConfig())
}
