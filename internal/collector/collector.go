// Package collector provides the NetworkManager fact collectors of the
// agent. Each collector runs one command, parses its terse output and
// returns a fresh snapshot; nothing is kept between calls.
package collector

import (
	"context"

	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"go.uber.org/zap"
)

// Fact names.
const (
	FactAllConnections    = "nm_all_connections"
	FactAllDevices        = "nm_all_devices"
	FactActiveConnections = "nm_active_connections"
	FactNetwork           = "nm_network"
	FactVersion           = "nm_version"
)

// FactNames returns every fact name in resolution order.
func FactNames() []string {
	return []string{
		FactAllConnections,
		FactAllDevices,
		FactActiveConnections,
		FactNetwork,
		FactVersion,
	}
}

// KnownFact reports whether name is one of the agent's facts.
func KnownFact(name string) bool {
	for _, f := range FactNames() {
		if f == name {
			return true
		}
	}
	return false
}

// Collector is the interface that all fact collectors must implement.
type Collector interface {
	// Collect runs the underlying command and returns the parsed value.
	Collect(ctx context.Context) (interface{}, error)

	// Name returns the fact name.
	Name() string

	// Requires lists the executables that must be on PATH for the fact
	// to be available at all.
	Requires() []string
}

// BaseCollector provides common functionality for all collectors
type BaseCollector struct {
	logger *zap.Logger
}

// NewBaseCollector creates a new BaseCollector with the given logger
func NewBaseCollector(logger *zap.Logger, name string) BaseCollector {
	if logger == nil {
		logger = logging.L("collector")
	}
	return BaseCollector{logger: logger.With(zap.String(logging.KeyFact, name))}
}

// LogDebug logs a debug message
func (b *BaseCollector) LogDebug(msg string, fields ...zap.Field) {
	b.logger.Debug(msg, fields...)
}
