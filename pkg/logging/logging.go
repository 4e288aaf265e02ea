package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the config and state directories.
const AppName = "scaraplate"

// verbosityLevels maps the number of -v flags to a level. Anything past
// the end of the table logs everything.
var verbosityLevels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
}

var (
	fileMu  sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger. Console output goes to
// stderr; with logToFile the same events are appended to
// $XDG_STATE_HOME/scaraplate/scaraplate.log. Calling it again replaces
// the previous setup and closes the old log file.
func SetupLogger(verbosity int, logToFile bool) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}}

	fileMu.Lock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	var (
		path    string
		fileErr error
	)
	if logToFile {
		path = getLogFilePath()
		logFile, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}
	fileMu.Unlock()

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	// Reported only now so the message goes through the new logger
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(verbosityLevels) {
		return zerolog.TraceLevel
	}
	return verbosityLevels[verbosity]
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ForFile narrows a logger to one project file and the strategy merging it.
func ForFile(logger zerolog.Logger, path, strategy string) zerolog.Logger {
	return logger.With().Str("path", path).Str("strategy", strategy).Logger()
}

func getLogFilePath() string {
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
