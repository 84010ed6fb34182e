package logging

import (
	"fmt"
	"strings"
)

// DefaultTemplate is the fmt layout applied to a message's formatted time,
// channel, level name, and text, in that order: channel left-justified to 19
// columns, level name to 5.
const DefaultTemplate = "%s %-19s %-5s - %s"

// DefaultTimeFormat is the Go reference-time layout used to render a
// LogMessage's timestamp when a Formatter is not configured with one
// explicitly.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// DefaultSubSecondPrecision is the number of sub-second digits appended to
// the formatted time when a Formatter is not configured with one explicitly.
const DefaultSubSecondPrecision = 3

// Formatter renders a LogMessage into a single human-readable line, with any
// attached error appended as a traceback-style trailer. The zero value is
// not ready for use; construct one with NewFormatter.
type Formatter struct {
	// Template is the fmt layout applied to the formatted time, channel,
	// level name, and message text, in that order.
	Template string
	// TimeFormat is the Go reference-time layout for the timestamp field.
	TimeFormat string
	// SubSecondPrecision is how many digits of sub-second precision to
	// append after the formatted time, separated by a comma.
	SubSecondPrecision int
}

// NewFormatter returns a Formatter configured with the package defaults.
func NewFormatter() *Formatter {
	return &Formatter{
		Template:           DefaultTemplate,
		TimeFormat:         DefaultTimeFormat,
		SubSecondPrecision: DefaultSubSecondPrecision,
	}
}

// Format renders msg through the configured template, followed by a
// "\n:: "-joined traceback trailer if msg carries an error.
func (f *Formatter) Format(msg LogMessage) string {
	formattedTime := f.formatTime(msg)
	output := fmt.Sprintf(f.Template, formattedTime, msg.Channel, msg.Level.String(), msg.Message)

	if msg.Err != nil {
		if !strings.HasSuffix(output, "\n") {
			output += "\n"
		}
		output += formatTraceback(msg.Err)
	}
	return output
}

func (f *Formatter) formatTime(msg LogMessage) string {
	base := msg.Timestamp.Format(f.TimeFormat)
	if f.SubSecondPrecision <= 0 {
		return base
	}

	nanos := fmt.Sprintf("%09d", msg.Timestamp.Nanosecond())
	precision := f.SubSecondPrecision
	if precision > len(nanos) {
		precision = len(nanos)
	}
	return base + "," + nanos[:precision]
}

// formatTraceback renders err's message as a "\n:: "-joined block, mirroring
// how a joined traceback is rendered line by line.
func formatTraceback(err error) string {
	return strings.Join(strings.Split(err.Error(), "\n"), "\n:: ")
}
