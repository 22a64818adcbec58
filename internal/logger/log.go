package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string, err error)
	Debug(msg string)
}

type DoodleLogger struct {
	logger zerolog.Logger
}

func New(loggerName string) Logger {
	return NewWithWriter(loggerName, zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}

func NewWithWriter(loggerName string, w io.Writer) Logger {
	logger := zerolog.New(w).With().Timestamp().Str("logger", loggerName).Logger()
	return DoodleLogger{logger}
}

// Nop discards everything. Used by tests that don't care about output.
func Nop() Logger {
	return DoodleLogger{zerolog.Nop()}
}

// SetLevel sets the process wide level. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func (dl DoodleLogger) Info(msg string) {
	dl.logger.Info().Msg(msg)
}

func (dl DoodleLogger) Warn(msg string) {
	dl.logger.Warn().Msg(msg)
}

func (dl DoodleLogger) Error(msg string, err error) {
	if err != nil {
		dl.logger.Error().Err(err).Msg(msg)
		return
	}
	dl.logger.Error().Msg(msg)
}

func (dl DoodleLogger) Debug(msg string) {
	dl.logger.Debug().Msg(msg)
}
