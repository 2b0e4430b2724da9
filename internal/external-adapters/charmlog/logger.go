// Package charmlog backs interfaces.Logger with charmbracelet/log.
package charmlog

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ochairo/pyfinder/internal/domain/interfaces"
)

// Options configures the logger
type Options struct {
	Level           string
	ReportTimestamp bool
	Prefix          string
}

// Logger adapts a charmbracelet logger to interfaces.Logger
type Logger struct {
	l *log.Logger
}

// New creates a logger writing to w
func New(w io.Writer, opts Options) (*Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			Level:           level,
			ReportTimestamp: opts.ReportTimestamp,
			Prefix:          opts.Prefix,
		}),
	}, nil
}

// Debug logs at debug level
func (c *Logger) Debug(msg string, fields ...interfaces.Field) {
	c.l.Debug(msg, interfaces.KeyVals(fields)...)
}

// Info logs at info level
func (c *Logger) Info(msg string, fields ...interfaces.Field) {
	c.l.Info(msg, interfaces.KeyVals(fields)...)
}

// Warn logs at warn level
func (c *Logger) Warn(msg string, fields ...interfaces.Field) {
	c.l.Warn(msg, interfaces.KeyVals(fields)...)
}

// Error logs at error level
func (c *Logger) Error(msg string, fields ...interfaces.Field) {
	c.l.Error(msg, interfaces.KeyVals(fields)...)
}

var _ interfaces.Logger = (*Logger)(nil)
