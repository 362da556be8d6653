package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

// DevicesCollector produces nm_all_devices: every device keyed by name.
type DevicesCollector struct {
	BaseCollector
	client *nmcli.Client
}

// NewDevicesCollector creates a new DevicesCollector
func NewDevicesCollector(client *nmcli.Client, logger *zap.Logger) *DevicesCollector {
	return &DevicesCollector{
		BaseCollector: NewBaseCollector(logger, FactAllDevices),
		client:        client,
	}
}

// Name returns the fact name
func (c *DevicesCollector) Name() string {
	return FactAllDevices
}

// Requires returns the nmcli binary
func (c *DevicesCollector) Requires() []string {
	return []string{c.client.Binary()}
}

// Collect returns map[string]models.DeviceRecord.
func (c *DevicesCollector) Collect(ctx context.Context) (interface{}, error) {
	raw, err := c.client.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	records, ragged := parseDevices(raw)
	for _, line := range ragged {
		c.LogDebug("device line does not match field count",
			zap.Int("line", line),
			zap.Int("expected", nmcli.DeviceFields.Len()))
	}
	c.LogDebug("devices parsed", zap.Int("count", len(records)))

	return records, nil
}

// ParseDevices parses the terse device list into records keyed by device
// name. Blank lines are skipped and the last duplicate name wins.
func ParseDevices(raw string) map[string]models.DeviceRecord {
	records, _ := parseDevices(raw)
	return records
}

func parseDevices(raw string) (map[string]models.DeviceRecord, []int) {
	records := make(map[string]models.DeviceRecord)
	var ragged []int

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := nmcli.DeviceFields.Split(line)
		if row.Ragged() {
			ragged = append(ragged, i+1)
		}

		device := row.Get("device")
		records[device] = models.DeviceRecord{
			Device:          device,
			Type:            row.Get("type"),
			State:           row.Get("state"),
			IP4Connectivity: row.Get("ip4-connectivity"),
			IP6Connectivity: row.Get("ip6-connectivity"),
			DBusPath:        row.Get("dbus-path"),
			Connection:      row.Get("connection"),
			ConUUID:         row.Get("con-uuid"),
			ConPath:         row.Get("con-path"),
		}
	}

	return records, ragged
}
