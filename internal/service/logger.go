package service

import (
	"io"
	"log"
	"os"
)

// Logger interface for logging operations (Interface Segregation Principle).
type Logger interface {
	Printf(format string, v ...interface{})
}

// StdLogger wraps the standard log package to implement Logger interface.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a logger writing UTC timestamps to stderr with prefix.
func NewStdLogger(prefix string) *StdLogger {
	return NewStdLoggerTo(os.Stderr, prefix)
}

// NewStdLoggerTo is NewStdLogger with a custom writer.
func NewStdLoggerTo(w io.Writer, prefix string) *StdLogger {
	return &StdLogger{l: log.New(w, prefix, log.LstdFlags|log.LUTC|log.Lmsgprefix)}
}

func (l *StdLogger) Printf(format string, v ...interface{}) {
	l.l.Printf(format, v...)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
