// Package logging builds the logr.Logger shared by the binaries.
package logging

import (
	"io"
	"os"

	logrusr "github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. Verbosity 0 logs Info and above;
// each step adds one V level.
func New(w io.Writer, verbosity int) logr.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	// logrusr enables V(n) when Info+n is at or below the logger level.
	l.SetLevel(logrus.InfoLevel + logrus.Level(verbosity))
	return logrusr.New(l)
}

// ToFile opens path for appending and returns a logger writing to it. An
// empty path discards all output; the TUI owns stdout.
func ToFile(path string, verbosity int) (logr.Logger, io.Closer, error) {
	if path == "" {
		return logr.Discard(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Logger{}, nil, err
	}
	return New(f, verbosity), f, nil
}
