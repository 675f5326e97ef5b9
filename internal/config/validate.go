package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks all Config fields for completeness and consistency.
// It collects all errors and returns them via errors.Join.
func Validate(cfg *Config) error {
	var errs []error
	check := func(cond bool, path, msg string) {
		if !cond {
			errs = append(errs, fmt.Errorf("%s: %s", path, msg))
		}
	}

	check(cfg.ExpectedResults.Path != "", "expected_results.path", "required")

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	check(validLevels[strings.ToLower(cfg.Log.Level)], "log.level",
		fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", cfg.Log.Level))
	return errors.Join(errs...)
}
