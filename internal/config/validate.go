package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/voxpupuli/puppet-networkmanager/internal/collector"
)

// MaxCommandTimeout is the upper bound for command_timeout.
const MaxCommandTimeout = 10 * time.Minute

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validOutputFormats = map[string]bool{
	"json": true,
	"yaml": true,
}

// ValidationResult separates errors that must stop startup from values
// that were corrected in place.
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

// HasFatals reports whether any fatal error was found.
func (r ValidationResult) HasFatals() bool {
	return len(r.Fatals) > 0
}

// ValidateTiered checks the config. Out-of-range numbers are clamped and
// reported as warnings; unusable values are fatal.
func (c *Config) ValidateTiered() ValidationResult {
	var r ValidationResult

	if strings.TrimSpace(c.NmcliPath) == "" {
		r.Fatals = append(r.Fatals, fmt.Errorf("nmcli_path must not be empty"))
	}
	if strings.TrimSpace(c.NetworkManagerPath) == "" {
		r.Fatals = append(r.Fatals, fmt.Errorf("networkmanager_path must not be empty"))
	}

	for _, name := range c.EnabledFacts {
		if !collector.KnownFact(name) {
			r.Fatals = append(r.Fatals, fmt.Errorf("unknown fact %q", name))
		}
	}

	if c.OutputFormat != "" && !validOutputFormats[strings.ToLower(c.OutputFormat)] {
		r.Fatals = append(r.Fatals, fmt.Errorf("output_format %q is not valid (use json or yaml)", c.OutputFormat))
	}

	if c.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			r.Fatals = append(r.Fatals, fmt.Errorf("listen_addr %q is not host:port: %w", c.ListenAddr, err))
		}
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		r.Fatals = append(r.Fatals, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		r.Fatals = append(r.Fatals, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	// A zero timeout disables it; negative values would expire at once.
	if c.CommandTimeout < 0 {
		r.Warnings = append(r.Warnings, fmt.Errorf("command_timeout %s is negative, clamping to 0 (no timeout)", c.CommandTimeout))
		c.CommandTimeout = 0
	} else if c.CommandTimeout > MaxCommandTimeout {
		r.Warnings = append(r.Warnings, fmt.Errorf("command_timeout %s exceeds maximum %s, clamping", c.CommandTimeout, MaxCommandTimeout))
		c.CommandTimeout = MaxCommandTimeout
	}

	clampNonNegative(&r, "log_max_size_mb", &c.LogMaxSizeMB)
	clampNonNegative(&r, "log_max_backups", &c.LogMaxBackups)
	clampNonNegative(&r, "log_max_age_days", &c.LogMaxAgeDays)

	return r
}

func clampNonNegative(r *ValidationResult, key string, v *int) {
	if *v < 0 {
		r.Warnings = append(r.Warnings, fmt.Errorf("%s %d is below minimum 0, clamping", key, *v))
		*v = 0
	}
}
