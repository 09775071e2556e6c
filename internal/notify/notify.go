// internal/notify/notify.go
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Notifier receives transient user-facing notifications. Store
// operations report outcomes here instead of letting errors escape
// to the view layer.
type Notifier interface {
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Writer is a Notifier that prints notifications to an io.Writer,
// used by the CLI front end.
type Writer struct {
	Out io.Writer
}

// NewWriter creates a writer-backed notifier
func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out}
}

func (w *Writer) Successf(format string, args ...any) {
	fmt.Fprintf(w.Out, format+"\n", args...)
}

func (w *Writer) Errorf(format string, args ...any) {
	fmt.Fprintf(w.Out, "error: "+format+"\n", args...)
}

// Log is a Notifier that routes notifications to a logger
type Log struct {
	Logger logrus.FieldLogger
}

// NewLog creates a logger-backed notifier
func NewLog(logger logrus.FieldLogger) *Log {
	return &Log{Logger: logger}
}

func (l *Log) Successf(format string, args ...any) {
	l.Logger.Infof(format, args...)
}

func (l *Log) Errorf(format string, args ...any) {
	l.Logger.Errorf(format, args...)
}

// Recorder captures notifications for inspection in tests
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// NewRecorder creates a recording notifier
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Successf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
