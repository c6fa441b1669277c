package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/pkg/appgen"
)

func memFS(content string) *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile(appgen.ConfigFileName, content)
	return mfs
}

func TestLoad_AllFields(t *testing.T) {
	cfg, err := Load(memFS(`output:
  schema_file: billing.sql
  manifest: false
policy:
  unresolved: warn
  cycles: defer
  tolerate_errors: true
types:
  string/email: varchar(320)
  number: decimal(12,2)
scaffold:
  package: billing
apply:
  timeout: 30s
`), "/project")
	require.NoError(t, err)

	assert.Equal(t, "billing.sql", cfg.Output.SchemaFile)
	assert.False(t, cfg.WriteManifest())
	assert.Equal(t, "warn", cfg.Policy.Unresolved)
	assert.Equal(t, "defer", cfg.Policy.Cycles)
	assert.True(t, cfg.Policy.TolerateErrors)
	assert.Equal(t, map[string]string{"string/email": "varchar(320)", "number": "decimal(12,2)"}, cfg.Types)
	assert.Equal(t, "billing", cfg.Scaffold.Package)

	timeout, err := cfg.ApplyTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	cfg, err := Load(memFS("policy:\n  unresolved: warn\n"), "/project")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Output.SchemaFile)
	assert.True(t, cfg.WriteManifest(), "manifest defaults to true")
	assert.Equal(t, "warn", cfg.Policy.Unresolved)
	assert.Empty(t, cfg.Types)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(memFS(""), "/project")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filesystem.NewMemoryFileSystem("/project"), "/project")
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_FileNotFoundOnDisk(t *testing.T) {
	cfg, err := Load(filesystem.NewOSFileSystem(), t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.Nil(t, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"malformed yaml", "{{invalid", ""},
		{"unknown key", "polcy:\n  cycles: defer\n", "polcy"},
		{"bad unresolved policy", "policy:\n  unresolved: ignore\n", "ignore"},
		{"bad cycle policy", "policy:\n  cycles: break\n", "break"},
		{"bad timeout", "apply:\n  timeout: soon\n", "apply.timeout"},
		{"negative timeout", "apply:\n  timeout: -5s\n", "apply.timeout"},
		{"schema file with directory", "output:\n  schema_file: sql/schema.sql\n", "schema_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(memFS(tt.content), "/project")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, appgen.ErrInvalidConfig), "got %v", err)
			assert.Equal(t, appgen.ExitConfigError, appgen.ExitCodeForError(err))
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APPGEN_CONNECTION_STRING=sqlite://from-dotenv.db\n"), 0644))

	t.Setenv(EnvConnectionString, "")
	os.Unsetenv(EnvConnectionString)
	t.Setenv(EnvDatabaseURL, "")

	require.NoError(t, LoadDotEnv(t.TempDir(), dir))
	assert.Equal(t, "sqlite://from-dotenv.db", ConnectionFromEnv())
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APPGEN_CONNECTION_STRING=sqlite://from-dotenv.db\n"), 0644))
	t.Setenv(EnvConnectionString, "postgres://from-env")

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "postgres://from-env", ConnectionFromEnv())
}

func TestConnectionFromEnv_FallsBackToDatabaseURL(t *testing.T) {
	t.Setenv(EnvConnectionString, "  ")
	t.Setenv(EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", ConnectionFromEnv())
}

func TestSave_RoundTrip(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	cfg := Default()
	cfg.Policy.Cycles = string(appgen.CycleDefer)
	cfg.Scaffold.Package = "billing"
	cfg.Types = map[string]string{"string/email": "varchar(320)"}

	path, err := Save(mfs, "/project/app", cfg, false)
	require.NoError(t, err)
	assert.Equal(t, "/project/app/appgen.yaml", path)

	loaded, err := Load(mfs, "/project/app")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.WriteManifest())

	timeout, err := loaded.ApplyTimeout()
	require.NoError(t, err)
	assert.Equal(t, appgen.DefaultApplyTimeout, timeout)
}

func TestSave_ExistingFile(t *testing.T) {
	mfs := memFS("policy:\n  unresolved: warn\n")

	_, err := Save(mfs, "/project", Default(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appgen.ErrInvalidConfig))

	_, err = Save(mfs, "/project", Default(), true)
	require.NoError(t, err)

	loaded, err := Load(mfs, "/project")
	require.NoError(t, err)
	assert.Equal(t, "error", loaded.Policy.Unresolved)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Policy.Unresolved = "ignore"

	_, err := Save(filesystem.NewMemoryFileSystem("/project"), "/project", cfg, false)
	assert.True(t, errors.Is(err, appgen.ErrInvalidConfig))
}
