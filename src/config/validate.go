package config

import (
	"fmt"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// Validate checks structural invariants of a loaded Config.
// Returns a hard error listing everything that is invalid.
func Validate(cfg *Config) error {
	var errs []string

	b := cfg.Build

	if len(b.Command) > 0 && b.Package != "" {
		errs = append(errs, "build: command and package are mutually exclusive")
	}
	if len(b.Command) == 0 {
		if b.Target == "" {
			errs = append(errs, "build.target: must not be empty")
		}
		if b.Profile == "" {
			errs = append(errs, "build.profile: must not be empty")
		}
	}
	if len(b.Sources) == 0 {
		errs = append(errs, "build.sources: must not be empty")
	}

	if mv := cfg.Toolchain.MinVersion; mv != "" {
		if _, err := masterminds.NewVersion(mv); err != nil {
			errs = append(errs, fmt.Sprintf("toolchain.min_version: %q is not a valid version", mv))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
