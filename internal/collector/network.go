package collector

import (
	"context"
	"fmt"

	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"go.uber.org/zap"
)

// NetworkCollector produces nm_network, the overall networking state as
// reported by nmcli ("enabled" or "disabled").
type NetworkCollector struct {
	BaseCollector
	client *nmcli.Client
}

// NewNetworkCollector creates a new NetworkCollector
func NewNetworkCollector(client *nmcli.Client, logger *zap.Logger) *NetworkCollector {
	return &NetworkCollector{
		BaseCollector: NewBaseCollector(logger, FactNetwork),
		client:        client,
	}
}

func (c *NetworkCollector) Name() string { return FactNetwork }

func (c *NetworkCollector) Requires() []string { return []string{c.client.Binary()} }

// Collect returns the trimmed command output as a string.
func (c *NetworkCollector) Collect(ctx context.Context) (interface{}, error) {
	out, err := c.client.Network(ctx)
	if err != nil {
		return nil, fmt.Errorf("network state: %w", err)
	}
	return out, nil
}

// VersionCollector produces nm_version from the NetworkManager daemon.
type VersionCollector struct {
	BaseCollector
	client *nmcli.Client
}

// NewVersionCollector creates a new VersionCollector
func NewVersionCollector(client *nmcli.Client, logger *zap.Logger) *VersionCollector {
	return &VersionCollector{
		BaseCollector: NewBaseCollector(logger, FactVersion),
		client:        client,
	}
}

func (c *VersionCollector) Name() string { return FactVersion }

func (c *VersionCollector) Requires() []string { return []string{c.client.Daemon()} }

// Collect returns the version string, e.g. "1.46.0".
func (c *VersionCollector) Collect(ctx context.Context) (interface{}, error) {
	out, err := c.client.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("NetworkManager version: %w", err)
	}
	return out, nil
}
