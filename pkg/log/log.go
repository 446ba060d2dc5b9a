// Package log provides the logging interface used throughout the
// emulator, along with a logrus backed default implementation.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return NewWithWriter(os.Stderr, logrus.InfoLevel)
}

// NewWithWriter returns a Logger that writes plain text lines
// to w, discarding anything below level.
func NewWithWriter(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name such as "debug" or "warn"
// into a logrus.Level.
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}
