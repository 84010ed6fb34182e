// Package logging provides domain types for the bus's log channel: levels,
// log messages, and the ports used to format and write them.
package logging

import (
	"errors"
	"strings"
)

// Level represents a log severity. The numeric values follow the syslog-like
// nine-level scheme, spaced ten apart so numeric comparisons (e.g. "at or
// above WARNING") leave room for intermediate custom levels.
type Level int

const (
	// LevelAll passes every message regardless of level; it is only
	// meaningful as a minimum-level filter, never as a message's own level.
	LevelAll Level = 0
	// LevelDebug is for detailed diagnostic information.
	LevelDebug Level = 10
	// LevelInfo is for general operational information.
	LevelInfo Level = 20
	// LevelNotice is for normal but significant conditions.
	LevelNotice Level = 30
	// LevelWarning is for warning conditions.
	LevelWarning Level = 40
	// LevelError is for error conditions.
	LevelError Level = 50
	// LevelCritical is for critical conditions.
	LevelCritical Level = 60
	// LevelAlert is for conditions that require immediate action.
	LevelAlert Level = 70
	// LevelEmerg is for conditions rendering the system unusable.
	LevelEmerg Level = 80
)

// ErrInvalidLevel is returned when parsing an invalid level string.
var ErrInvalidLevel = errors.New("invalid log level")

var levelNames = map[Level]string{
	LevelAll:      "ALL",
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelNotice:   "NOTICE",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
	LevelAlert:    "ALERT",
	LevelEmerg:    "EMERG",
}

// String returns the level's name, e.g. "WARNING", or "UNKNOWN" for a value
// that does not correspond to one of the defined levels.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a level name, case-insensitively, into a Level.
//
// Params:
//   - s: the string to parse.
//
// Returns:
//   - Level: the parsed level.
//   - error: ErrInvalidLevel if the string does not name a known level.
func ParseLevel(s string) (Level, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == needle {
			return level, nil
		}
	}
	return LevelInfo, ErrInvalidLevel
}
