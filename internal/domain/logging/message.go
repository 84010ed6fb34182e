package logging

import "time"

// defaultMetadataCapacity is the initial capacity for metadata maps.
// Preallocated for typical 2-4 metadata entries to reduce allocations.
const defaultMetadataCapacity int = 4

// unknownCallerField is the placeholder used for caller-site fields that
// were not supplied, matching the '?' sentinel a message without captured
// call-site information carries.
const unknownCallerField = "?"

// LogMessage is the payload delivered on a log channel. Besides the
// standard severity and text, it carries caller-site metadata and the
// goroutine that produced it, so a formatter can render output equivalent
// to a traditional logging call site without the log channel needing to
// do its own stack inspection.
type LogMessage struct {
	// Timestamp is when the message was created.
	Timestamp time.Time
	// ThreadID is the id of the goroutine that created the message, or 0 if
	// unknown.
	ThreadID uint64
	// Level is the severity level.
	Level Level
	// Channel is the name of the log channel the message was sent on.
	Channel string
	// Message is the human-readable log text.
	Message string

	// SrcFile is the source file the logging call was issued from, or "?"
	// if not captured.
	SrcFile string
	// LineNum is the source line the logging call was issued from, or "?"
	// if not captured.
	LineNum string
	// Caller is the name of the function the logging call was issued from,
	// or "?" if not captured.
	Caller string

	// Err is the error associated with the message, if any. A Formatter
	// renders it as a traceback-style trailer the way an exc_info would be.
	Err error

	// Metadata contains additional structured fields attached to the message.
	Metadata map[string]any
}

// NewLogMessage creates a LogMessage with the current timestamp and the
// caller-site fields defaulted to unknown.
//
// Params:
//   - level: the severity level.
//   - channel: the name of the channel the message is being sent on.
//   - message: the log text.
//
// Returns:
//   - LogMessage: the created message.
func NewLogMessage(level Level, channel, message string) LogMessage {
	return LogMessage{
		Timestamp: time.Now(),
		Level:     level,
		Channel:   channel,
		Message:   message,
		SrcFile:   unknownCallerField,
		LineNum:   unknownCallerField,
		Caller:    unknownCallerField,
		Metadata:  make(map[string]any, defaultMetadataCapacity),
	}
}

// WithMetadata returns a copy of the message with every entry of meta
// merged in. A nil meta returns m unchanged.
func (m LogMessage) WithMetadata(meta map[string]any) LogMessage {
	if meta == nil {
		return m
	}

	newMeta := make(map[string]any, len(m.Metadata)+len(meta))
	for k, v := range m.Metadata {
		newMeta[k] = v
	}
	for k, v := range meta {
		newMeta[k] = v
	}

	out := m
	out.Metadata = newMeta
	return out
}

// WithErr returns a copy of the message carrying err, the way attaching
// exception information to a log record would.
func (m LogMessage) WithErr(err error) LogMessage {
	out := m
	out.Err = err
	return out
}

// WithCaller returns a copy of the message with its call-site fields set.
func (m LogMessage) WithCaller(srcFile, lineNum, caller string) LogMessage {
	out := m
	out.SrcFile = srcFile
	out.LineNum = lineNum
	out.Caller = caller
	return out
}
