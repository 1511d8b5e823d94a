// Package logging provides the scheduler's structured logging, a
// trimmed-down version of the component-logger pattern used across the
// retrieval pack for backend services: one process-wide logrus logger,
// plus per-component sub-loggers obtained via WithField.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const componentField = "component"

var root = &logrus.Logger{
	Out:   os.Stderr,
	Level: logrus.InfoLevel,
	Formatter: &logrus.TextFormatter{
		FullTimestamp: true,
	},
}

// SetLevel adjusts the verbosity of every logger returned by this
// package. Debug level surfaces per-dispatch detail and per-task
// fork/wait/signal events; Info covers Init/End; Warn covers rejected
// arguments.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

// SetOutput redirects where the root logger writes, primarily for test
// capture.
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// NewComponentLogger returns a logger tagged with the given component
// name, e.g. "dispatcher" or "gate".
func NewComponentLogger(component string) *logrus.Entry {
	return root.WithField(componentField, component)
}
