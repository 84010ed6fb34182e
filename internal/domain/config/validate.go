package config

import (
	"errors"
	"fmt"

	"github.com/kodflow/msgbus/internal/domain/logging"
)

// ValidationError represents one configuration validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks cfg for errors, returning a joined ValidationError per
// invalid field, or nil if cfg is usable as-is.
func Validate(cfg *BusConfig) error {
	var errs []error

	if cfg.NameSeparator == "" {
		errs = append(errs, ValidationError{Field: "name_separator", Message: "must not be empty"})
	} else if len(cfg.NameSeparator) != 1 {
		errs = append(errs, ValidationError{Field: "name_separator", Message: "must be a single character"})
	}

	if cfg.MaxQueueSize < 0 {
		errs = append(errs, ValidationError{Field: "max_queue_size", Message: "must be >= 0"})
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateLogging(lc *LoggingConfig) error {
	var errs []error

	if lc.Level != "" {
		if _, err := logging.ParseLevel(lc.Level); err != nil {
			errs = append(errs, ValidationError{
				Field:   "logging.level",
				Message: fmt.Sprintf("invalid level %q", lc.Level),
			})
		}
	}

	if lc.Rotation.MaxFiles < 0 {
		errs = append(errs, ValidationError{Field: "logging.rotation.max_files", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
