package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilupskalvis/abook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so a real ~/.abook.toml never leaks in
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, DefaultDataDir), cfg.DataDir)
	assert.Equal(t, store.BackendBolt, cfg.StorageBackend())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Path())
}

func TestLoad_FileInParentDirectory(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	path := writeConfig(t, root, "data_dir = \"book\"\nbackend = \"sqlite\"\nlog_level = \"debug\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, filepath.Join(root, "book"), cfg.DataDir, "relative data_dir is anchored at the config file")
	assert.Equal(t, store.BackendSQLite, cfg.StorageBackend())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "backend = \"sqlite\"\n")
	t.Setenv("ABOOK_BACKEND", "bolt")
	t.Setenv("ABOOK_DATA_DIR", "/srv/abook")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, store.BackendBolt, cfg.StorageBackend())
	assert.Equal(t, "/srv/abook", cfg.DataDir)
}

func TestLoad_HomeDirectoryFallback(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "data_dir = \"~/contacts\"\n")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "contacts"), cfg.DataDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "backend = \"csv\"\n"},
		{"unknown log level", "log_level = \"loud\"\n"},
		{"malformed toml", "backend = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestInitialize(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cfg, err := Initialize(dir, "data", store.BackendSQLite)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	info, err := os.Stat(cfg.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.DataDir, loaded.DataDir)
	assert.Equal(t, store.BackendSQLite, loaded.StorageBackend())

	_, err = Initialize(dir, "data", store.BackendBolt)
	assert.Error(t, err, "a second init must fail")
}

func TestInitialize_RejectsUnknownBackend(t *testing.T) {
	_, err := Initialize(t.TempDir(), "data", store.Backend("csv"))
	assert.Error(t, err)
}

func TestSave_WithoutFile(t *testing.T) {
	cfg := &Config{DataDir: "/x", Backend: "bolt", LogLevel: "info"}
	assert.Error(t, cfg.Save())
}
