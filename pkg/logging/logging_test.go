package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity, true)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "scaraplate", "scaraplate.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	SetupLogger(1, false)

	_, err := os.Stat(filepath.Join(tempDir, "scaraplate"))
	assert.True(t, os.IsNotExist(err), "no state directory should be created")
}

func TestSetupLoggerReplacesLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	SetupLogger(0, true)
	first := logFile
	require.NotNil(t, first)

	SetupLogger(0, false)
	assert.Nil(t, logFile)
	// The first handle was closed by the second setup
	assert.Error(t, first.Close())
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, levelFor(-1))
	assert.Equal(t, zerolog.WarnLevel, levelFor(0))
	assert.Equal(t, zerolog.DebugLevel, levelFor(2))
	assert.Equal(t, zerolog.TraceLevel, levelFor(3))
}

func TestForFile(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := ForFile(zerolog.New(&buf), "setup.cfg", "SetupcfgMerge")
	logger.Debug().Msg("file processed")

	assert.Contains(t, buf.String(), `"path":"setup.cfg"`)
	assert.Contains(t, buf.String(), `"strategy":"SetupcfgMerge"`)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	got := getLogFilePath()
	assert.Equal(t, filepath.Join("/custom/state", "scaraplate", "scaraplate.log"), got)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("strategies")
	logger.Info().Msg("applied")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"component":"strategies"`)
	assert.Contains(t, buf.String(), `"message":"applied"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "rollup")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), `"operation":"rollup"`)
}
