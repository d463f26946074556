package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	processLogger zerolog.Logger
	once          sync.Once
)

// GetLogger returns the process-wide logger. It is initialized on first use
// with console output at info level; New reconfigures it from config.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		processLogger = zerolog.New(consoleWriter()).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return processLogger
}

// New constructs the logger from level and format configuration and installs
// it as the process logger.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "json":
		out = os.Stdout
	case "console":
		out = consoleWriter()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	zerolog.SetGlobalLevel(lvl)
	processLogger = zerolog.New(out).With().Timestamp().Logger().Level(lvl)
	return processLogger, nil
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
}
