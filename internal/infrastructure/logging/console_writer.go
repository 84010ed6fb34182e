package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kodflow/msgbus/internal/domain/logging"
)

// ConsoleWriter writes log messages to stdout/stderr depending on severity:
// LevelWarning and above go to stderr, everything below to stdout. It is
// the default writer when a bus is not configured with one explicitly.
type ConsoleWriter struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	format *logging.Formatter
}

// NewConsoleWriter returns a ConsoleWriter writing to os.Stdout/os.Stderr.
func NewConsoleWriter() *ConsoleWriter {
	return NewConsoleWriterWithOutputs(os.Stdout, os.Stderr)
}

// NewConsoleWriterWithOutputs returns a ConsoleWriter writing to the given
// streams, for tests that need to capture output.
func NewConsoleWriterWithOutputs(stdout, stderr io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		stdout: stdout,
		stderr: stderr,
		format: logging.NewFormatter(),
	}
}

// Write formats msg and writes it to stdout or stderr based on its level.
func (w *ConsoleWriter) Write(msg logging.LogMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := w.stdout
	if msg.Level >= logging.LevelWarning {
		out = w.stderr
	}

	_, err := fmt.Fprintln(out, w.format.Format(msg))
	return err
}

// Close is a no-op; ConsoleWriter does not own stdout/stderr.
func (w *ConsoleWriter) Close() error {
	return nil
}

var _ logging.Writer = (*ConsoleWriter)(nil)
