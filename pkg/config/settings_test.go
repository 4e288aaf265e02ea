package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scaraplate/pkg/errors"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettingsFrom("")
	require.NoError(t, err)

	assert.Equal(t, 4, s.Rollup.Jobs)
	assert.False(t, s.Rollup.DryRun)
	assert.True(t, s.Log.File)
}

func TestLoadSettingsMissingUserFile(t *testing.T) {
	s, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Rollup.Jobs)
}

func TestLoadSettingsUserFile(t *testing.T) {
	path := writeSettings(t, "[rollup]\njobs = 2\n\n[log]\nfile = false\n")

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Rollup.Jobs)
	assert.False(t, s.Rollup.DryRun, "keys absent from the user file keep their defaults")
	assert.False(t, s.Log.File)
}

func TestLoadSettingsEnvironmentWins(t *testing.T) {
	path := writeSettings(t, "[rollup]\njobs = 2\n")
	t.Setenv("SCARAPLATE_ROLLUP_JOBS", "8")
	t.Setenv("SCARAPLATE_ROLLUP_DRY_RUN", "true")

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 8, s.Rollup.Jobs)
	assert.True(t, s.Rollup.DryRun)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("malformed file", func(t *testing.T) {
		_, err := LoadSettingsFrom(writeSettings(t, "[rollup\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Setenv("SCARAPLATE_ROLLUP_JOBS", "many")
		_, err := LoadSettingsFrom("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("no workers", func(t *testing.T) {
		_, err := LoadSettingsFrom(writeSettings(t, "[rollup]\njobs = 0\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "rollup.jobs", envKey("SCARAPLATE_ROLLUP_JOBS"))
	assert.Equal(t, "rollup.dry_run", envKey("SCARAPLATE_ROLLUP_DRY_RUN"))
	assert.Equal(t, "log.file", envKey("SCARAPLATE_LOG_FILE"))
}

func TestSettingsToTOML(t *testing.T) {
	s := &Settings{
		Rollup: RollupSettings{Jobs: 3, DryRun: true},
		Log:    LogSettings{File: false},
	}

	data, err := s.ToTOML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "[rollup]")
	assert.Contains(t, out, "jobs = 3")
	assert.Contains(t, out, "dry_run = true")
	assert.Contains(t, out, "[log]")
	assert.Contains(t, out, "file = false")

	// The rendered settings load back unchanged.
	loaded, err := LoadSettingsFrom(writeSettings(t, out))
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestDefaultSettingsContent(t *testing.T) {
	assert.Contains(t, DefaultSettingsContent(), "[rollup]")
}
