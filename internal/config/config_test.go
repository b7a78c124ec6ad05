package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.toml")
	data := `
backend = "sqlite"
interface = ""

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, InterfaceConsole, cfg.Interface)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "x", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend = "redis"`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend = `), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWrite_RoundTripsAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.toml")
	want := Default()
	want.Interface = InterfaceTUI

	require.NoError(t, Write(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	err = Write(path, Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestValidate_UnknownInterface(t *testing.T) {
	cfg := Default()
	cfg.Interface = "web"
	assert.Error(t, cfg.Validate())
}
