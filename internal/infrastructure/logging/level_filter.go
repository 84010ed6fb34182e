package logging

import "github.com/kodflow/msgbus/internal/domain/logging"

// LevelFilter wraps a Writer and silently discards messages below minLevel.
type LevelFilter struct {
	writer   logging.Writer
	minLevel logging.Level
}

// WithLevelFilter wraps w so only messages at or above minLevel reach it.
func WithLevelFilter(w logging.Writer, minLevel logging.Level) *LevelFilter {
	return &LevelFilter{writer: w, minLevel: minLevel}
}

// Write passes msg through to the wrapped writer if it meets the threshold.
func (f *LevelFilter) Write(msg logging.LogMessage) error {
	if msg.Level < f.minLevel {
		return nil
	}
	return f.writer.Write(msg)
}

// Close closes the wrapped writer.
func (f *LevelFilter) Close() error {
	return f.writer.Close()
}

var _ logging.Writer = (*LevelFilter)(nil)
