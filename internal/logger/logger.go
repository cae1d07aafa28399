package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})

	WithFields(fields map[string]interface{}) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
	fields map[string]interface{}
}

// New builds a zerolog-backed Logger. Console output is used when pretty is
// set, JSON lines otherwise. A nil output writes to stdout.
func New(level string, output io.Writer, pretty bool) Logger {
	if output == nil {
		output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &zerologLogger{logger: zl}
}

// Nop discards everything. Used by tests.
func Nop() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &zerologLogger{logger: l.logger, fields: merged}
}

func (l *zerologLogger) write(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for k, v := range l.fields {
		event = event.Interface(k, v)
	}
	for k, v := range fields {
		if err, ok := v.(error); ok {
			event = event.AnErr(k, err)
			continue
		}
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (l *zerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields map[string]interface{}) {
	l.write(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields map[string]interface{}) {
	l.write(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) Fatal(msg string, fields map[string]interface{}) {
	l.write(l.logger.Fatal(), msg, fields)
}
