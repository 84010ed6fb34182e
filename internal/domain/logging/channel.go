package logging

import (
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

// callerSkip is the number of stack frames between a LogChannel's public
// level-shortcut methods and the caller whose site should be captured:
// runtime.Caller -> log -> {Debug,Info,...} -> the actual call site.
const callerSkip = 3

// LogChannel adapts a pubsub.Channel into a structured logger: every log
// call builds a LogMessage and sends it on the underlying channel like any
// other message, so the same subscription, wildcard, and back-pressure
// machinery that serves ordinary pub/sub traffic also serves log delivery.
type LogChannel struct {
	channel      *pubsub.Channel
	threadIDFunc func() uint64
}

// NewLogChannel returns a LogChannel backed by ch. threadIDFunc supplies the
// ThreadID recorded on each message; a nil threadIDFunc leaves ThreadID at 0.
func NewLogChannel(ch *pubsub.Channel, threadIDFunc func() uint64) *LogChannel {
	return &LogChannel{channel: ch, threadIDFunc: threadIDFunc}
}

// Channel returns the underlying pubsub channel, for callers that need to
// subscribe a Writer-backed listener directly.
func (l *LogChannel) Channel() *pubsub.Channel {
	return l.channel
}

// Log sends a pre-built message on the underlying channel.
func (l *LogChannel) Log(msg LogMessage) {
	l.channel.Send(msg)
}

func (l *LogChannel) log(level Level, skip int, message string, meta map[string]any) {
	msg := NewLogMessage(level, l.channel.Name(), message).WithMetadata(meta)
	if l.threadIDFunc != nil {
		msg.ThreadID = l.threadIDFunc()
	}
	if srcFile, lineNum, caller, ok := captureCaller(skip); ok {
		msg = msg.WithCaller(srcFile, lineNum, caller)
	}
	l.channel.Send(msg)
}

// Debug logs a debug-level message.
func (l *LogChannel) Debug(message string, meta map[string]any) {
	l.log(LevelDebug, callerSkip, message, meta)
}

// Info logs an info-level message.
func (l *LogChannel) Info(message string, meta map[string]any) {
	l.log(LevelInfo, callerSkip, message, meta)
}

// Notice logs a notice-level message.
func (l *LogChannel) Notice(message string, meta map[string]any) {
	l.log(LevelNotice, callerSkip, message, meta)
}

// Warning logs a warning-level message.
func (l *LogChannel) Warning(message string, meta map[string]any) {
	l.log(LevelWarning, callerSkip, message, meta)
}

// Error logs an error-level message.
func (l *LogChannel) Error(message string, meta map[string]any) {
	l.log(LevelError, callerSkip, message, meta)
}

// Critical logs a critical-level message.
func (l *LogChannel) Critical(message string, meta map[string]any) {
	l.log(LevelCritical, callerSkip, message, meta)
}

// Exception logs an error-level message with err attached; a Formatter
// renders err as a traceback-style trailer.
func (l *LogChannel) Exception(message string, err error, meta map[string]any) {
	msg := NewLogMessage(LevelError, l.channel.Name(), message).WithMetadata(meta).WithErr(err)
	if l.threadIDFunc != nil {
		msg.ThreadID = l.threadIDFunc()
	}
	// One frame shallower than the level shortcuts, which route through log.
	if srcFile, lineNum, caller, ok := captureCaller(callerSkip - 1); ok {
		msg = msg.WithCaller(srcFile, lineNum, caller)
	}
	l.channel.Send(msg)
}

var _ Logger = (*LogChannel)(nil)

// captureCaller resolves the source file, line number, and function name of
// the stack frame skip levels above captureCaller itself (skip 1 is its
// immediate caller). It returns ok false if
// the runtime could not resolve the frame.
func captureCaller(skip int) (srcFile, lineNum, caller string, ok bool) {
	pc, file, line, rtOk := runtime.Caller(skip)
	if !rtOk {
		return "", "", "", false
	}

	fn := runtime.FuncForPC(pc)
	name := unknownCallerField
	if fn != nil {
		name = filepath.Base(fn.Name())
	}
	return file, strconv.Itoa(line), name, true
}
