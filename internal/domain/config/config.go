// Package config provides the bus's configuration type and defaulting
// policy, independent of how that configuration is loaded.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// BusConfig is the root configuration for a MessageBus.
type BusConfig struct {
	// NameSeparator partitions hierarchical channel names; default ".".
	NameSeparator string `yaml:"name_separator"`
	// MaxQueueSize bounds the dispatcher's pending-delivery queue; 0 means
	// unbounded.
	MaxQueueSize int `yaml:"max_queue_size"`
	// DedicatedThreadMode starts a background dispatcher worker when true;
	// when false, async subscriptions still function but are dispatched
	// inline after the synchronous pass.
	DedicatedThreadMode bool `yaml:"dedicated_thread_mode"`
	// Logging configures the bus's internal log channel and its writers.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the writers attached to the bus's internal log
// channel.
type LoggingConfig struct {
	// Level is the minimum severity a writer emits, e.g. "INFO".
	Level string `yaml:"level"`
	// Console enables a writer that prints to stdout/stderr.
	Console bool `yaml:"console"`
	// BaseDir is the directory file writers write into. Empty disables file
	// output.
	BaseDir string `yaml:"base_dir"`
	// Rotation configures size-based rotation for file writers.
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig configures size-based log file rotation.
type RotationConfig struct {
	// MaxSize is a human size string, e.g. "100MB".
	MaxSize string `yaml:"max_size"`
	// MaxFiles is how many rotated files to retain, beyond the active one.
	MaxFiles int `yaml:"max_files"`
}

// DefaultBusConfig returns a BusConfig with every default applied, suitable
// as an unmarshal target so zero-value YAML fields still resolve sensibly.
func DefaultBusConfig() BusConfig {
	cfg := BusConfig{}
	ApplyDefaults(&cfg)
	return cfg
}

// ApplyDefaults fills in unset fields of cfg with the package defaults.
func ApplyDefaults(cfg *BusConfig) {
	if cfg.NameSeparator == "" {
		cfg.NameSeparator = "."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Rotation.MaxSize == "" {
		cfg.Logging.Rotation.MaxSize = "100MB"
	}
	if cfg.Logging.Rotation.MaxFiles == 0 {
		cfg.Logging.Rotation.MaxFiles = 10
	}
}

// ParseSize parses a human size string like "100MB" into bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	suffixes := []struct {
		suffix string
		mult   int64
	}{
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"G", 1024 * 1024 * 1024},
		{"M", 1024 * 1024},
		{"K", 1024},
		{"B", 1},
	}

	for _, sf := range suffixes {
		if strings.HasSuffix(s, sf.suffix) {
			numStr := strings.TrimSuffix(s, sf.suffix)
			num, err := strconv.ParseInt(numStr, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid size: %s", s)
			}
			return num * sf.mult, nil
		}
	}

	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %s", s)
	}
	return num, nil
}
