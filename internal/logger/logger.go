// Package logger provides manifesto's structured logging, wrapping
// charmbracelet/log directly. The teacher routes this through a
// hexagonal ports/infrastructure layer to decouple its TUI dashboard
// from the log sink; manifesto has no dashboard, so that indirection is
// collapsed into a single adapter here (see DESIGN.md).
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Options configures a Logger.
type Options struct {
	Writer        io.Writer
	Level         string
	HumanReadable bool
	ReportCaller  bool
	Component     string
}

// Logger is manifesto's structured logger: leveled, field-scoped via
// WithFields, text output for terminals or JSON for non-interactive runs.
type Logger struct {
	base   *cblog.Logger
	fields []interface{}
}

// New creates a configured Logger.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	formatter := cblog.TextFormatter
	if !opts.HumanReadable {
		formatter = cblog.JSONFormatter
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
		Formatter:       formatter,
	})

	var fields []interface{}
	if opts.Component != "" {
		fields = []interface{}{"component", opts.Component}
	}

	return &Logger{base: base, fields: fields}, nil
}

// NewNop returns a Logger that discards everything; useful in tests.
func NewNop() *Logger {
	l, _ := New(Options{Writer: io.Discard})
	return l
}

// WithFields returns a derived logger that always writes the supplied
// fields, sorted by key for deterministic output.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil || len(fields) == 0 {
		return l
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(l.fields)+len(fields)*2)
	args = append(args, l.fields...)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return &Logger{base: l.base, fields: args}
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	l.log(cblog.InfoLevel, msg, nil)
}

// Debug writes a debug-level log entry.
func (l *Logger) Debug(msg string) {
	l.log(cblog.DebugLevel, msg, nil)
}

// Warn writes a warning-level log entry.
func (l *Logger) Warn(msg string) {
	l.log(cblog.WarnLevel, msg, nil)
}

// Error writes an error-level log entry; err is attached as a field.
func (l *Logger) Error(err error, msg string) {
	var extra []interface{}
	if err != nil {
		extra = []interface{}{"error", err}
	}
	l.log(cblog.ErrorLevel, msg, extra)
}

func (l *Logger) log(level cblog.Level, msg string, extra []interface{}) {
	if l == nil || l.base == nil {
		return
	}
	payload := append(append([]interface{}{}, l.fields...), extra...)
	msg = strings.TrimSpace(msg)
	switch level {
	case cblog.DebugLevel:
		l.base.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.base.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.base.Error(msg, payload...)
	default:
		l.base.Info(msg, payload...)
	}
}
