package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

// ConnectionsCollector produces nm_all_connections: every connection
// profile keyed by name.
type ConnectionsCollector struct {
	BaseCollector
	client *nmcli.Client
}

// NewConnectionsCollector creates a new ConnectionsCollector
func NewConnectionsCollector(client *nmcli.Client, logger *zap.Logger) *ConnectionsCollector {
	return &ConnectionsCollector{
		BaseCollector: NewBaseCollector(logger, FactAllConnections),
		client:        client,
	}
}

// Name returns the fact name
func (c *ConnectionsCollector) Name() string {
	return FactAllConnections
}

// Requires returns the nmcli binary
func (c *ConnectionsCollector) Requires() []string {
	return []string{c.client.Binary()}
}

// Collect returns map[string]models.ConnectionRecord.
func (c *ConnectionsCollector) Collect(ctx context.Context) (interface{}, error) {
	return c.Connections(ctx)
}

// Connections runs the connection list and parses it.
func (c *ConnectionsCollector) Connections(ctx context.Context) (map[string]models.ConnectionRecord, error) {
	raw, err := c.client.Connections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	records, ragged := parseConnections(raw)
	for _, line := range ragged {
		c.LogDebug("connection line does not match field count",
			zap.Int("line", line),
			zap.Int("expected", nmcli.ConnectionFields.Len()))
	}
	c.LogDebug("connections parsed", zap.Int("count", len(records)))

	return records, nil
}

// ParseConnections parses the terse connection list into records keyed by
// connection name. Blank lines are skipped and the last duplicate name wins.
func ParseConnections(raw string) map[string]models.ConnectionRecord {
	records, _ := parseConnections(raw)
	return records
}

func parseConnections(raw string) (map[string]models.ConnectionRecord, []int) {
	records := make(map[string]models.ConnectionRecord)
	var ragged []int

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := nmcli.ConnectionFields.Split(line)
		if row.Ragged() {
			ragged = append(ragged, i+1)
		}

		name := row.Get("name")
		records[name] = models.ConnectionRecord{
			Name:                name,
			UUID:                row.Get("uuid"),
			Type:                row.Get("type"),
			Autoconnect:         yesNo(row.Get("autoconnect")),
			AutoconnectPriority: row.Get("autoconnect-priority"),
			Readonly:            yesNo(row.Get("readonly")),
			DBusPath:            row.Get("dbus-path"),
			Active:              yesNo(row.Get("active")),
			Device:              row.Get("device"),
			State:               row.Get("state"),
			ActivePath:          row.Get("active-path"),
			Filename:            row.Get("filename"),
		}
	}

	return records, ragged
}

// yesNo maps "yes" to true and any other non-empty value to false.
// An empty value stays unset.
func yesNo(v string) *bool {
	if v == "" {
		return nil
	}
	b := v == "yes"
	return &b
}
