// Package logging records what urs does to a per-day urs.log and turns the
// failures the CLI knows how to explain into a console message, a critical log
// entry and process termination.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/ui"
	"github.com/rs/zerolog"
)

const (
	FileName = "urs.log"

	// TimeLayout matches the asctime format of the log lines.
	TimeLayout = "2006-01-02 15:04:05,000"
)

// Logger writes `[<timestamp>] [<LEVEL>]: <message>` lines and owns the
// process exit for recognised failures.
type Logger struct {
	log   zerolog.Logger
	ui    *ui.UI
	now   func() time.Time
	exit  func(int)
	close func() error
	path  string
}

type Option func(*Logger)

// WithClock replaces time.Now for timestamps and elapsed-time lines.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(l *Logger) {
		l.exit = exit
	}
}

// New builds a Logger writing to w. The caller keeps ownership of w.
func New(w io.Writer, u *ui.UI, opts ...Option) *Logger {
	l := &Logger{
		ui:    u,
		now:   time.Now,
		exit:  os.Exit,
		close: func() error { return nil },
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = zerolog.New(newLineWriter(w)).Hook(timestampHook{now: l.now})
	return l
}

// Setup creates <scrapesDir>/<MM-DD-YYYY>/ and appends to urs.log inside it
// for the rest of the process.
func Setup(scrapesDir string, u *ui.UI, opts ...Option) (*Logger, error) {
	probe := &Logger{now: time.Now}
	for _, opt := range opts {
		opt(probe)
	}

	dir := export.DateDir(scrapesDir, probe.now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := New(file, u, opts...)
	l.path = path
	l.close = func() error {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	}
	return l, nil
}

// Path is the log file location, empty for loggers built with New.
func (l *Logger) Path() string {
	return l.path
}

// Base exposes the underlying zerolog logger for debug output from other packages.
func (l *Logger) Base() zerolog.Logger {
	return l.log
}

func (l *Logger) Close() error {
	closeFn := l.close
	l.close = func() error { return nil }
	return closeFn()
}

func (l *Logger) info(msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *Logger) since(start time.Time) float64 {
	return l.now().Sub(start).Seconds()
}

type timestampHook struct {
	now func() time.Time
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, h.now().Format(TimeLayout))
}

func newLineWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:     w,
		NoColor: true,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatTimestamp: func(i any) string {
			return "[" + fmt.Sprint(i) + "]"
		},
		FormatLevel: func(i any) string {
			return "[" + levelName(fmt.Sprint(i)) + "]:"
		},
	}
}

// levelName maps zerolog level names onto the names used in urs.log. Fatal is
// reported as CRITICAL and never exits on its own.
func levelName(level string) string {
	switch level {
	case zerolog.LevelWarnValue:
		return "WARNING"
	case zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return "CRITICAL"
	default:
		return strings.ToUpper(level)
	}
}
