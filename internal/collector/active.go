package collector

import (
	"context"

	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

// FilterActive returns the connections that are both active and in the
// "activated" state. The input map is not modified.
func FilterActive(connections map[string]models.ConnectionRecord) map[string]models.ConnectionRecord {
	active := make(map[string]models.ConnectionRecord)
	for name, conn := range connections {
		if conn.IsActive() {
			active[name] = conn
		}
	}
	return active
}

// ActiveConnectionsCollector produces nm_active_connections by filtering
// the output of a ConnectionsCollector it is handed directly.
type ActiveConnectionsCollector struct {
	BaseCollector
	all *ConnectionsCollector
}

// NewActiveConnectionsCollector creates a new ActiveConnectionsCollector
func NewActiveConnectionsCollector(all *ConnectionsCollector, logger *zap.Logger) *ActiveConnectionsCollector {
	return &ActiveConnectionsCollector{
		BaseCollector: NewBaseCollector(logger, FactActiveConnections),
		all:           all,
	}
}

// Name returns the fact name
func (c *ActiveConnectionsCollector) Name() string {
	return FactActiveConnections
}

// Requires returns what the underlying connection list requires
func (c *ActiveConnectionsCollector) Requires() []string {
	return c.all.Requires()
}

// Collect returns map[string]models.ConnectionRecord.
func (c *ActiveConnectionsCollector) Collect(ctx context.Context) (interface{}, error) {
	all, err := c.all.Connections(ctx)
	if err != nil {
		return nil, err
	}
	active := FilterActive(all)
	c.LogDebug("active connections filtered", zap.Int("total", len(all)), zap.Int("active", len(active)))
	return active, nil
}
