package logging

// Logger is the port interface for logging against a single bound log
// channel. The domain's LogChannel type implements this interface directly;
// each instance is already bound to one channel, so callers do not repeat
// the channel name on every call.
type Logger interface {
	// Log sends a pre-built message to the log channel.
	Log(msg LogMessage)

	// Debug logs a debug-level message.
	//
	// Params:
	//   - message: the event message.
	//   - meta: optional metadata.
	Debug(message string, meta map[string]any)

	// Info logs an info-level message.
	Info(message string, meta map[string]any)

	// Notice logs a notice-level message.
	Notice(message string, meta map[string]any)

	// Warning logs a warning-level message.
	Warning(message string, meta map[string]any)

	// Error logs an error-level message.
	Error(message string, meta map[string]any)

	// Critical logs a critical-level message.
	Critical(message string, meta map[string]any)

	// Exception logs an error-level message with an attached error, the way
	// a caught exception would be logged alongside its traceback.
	Exception(message string, err error, meta map[string]any)
}
