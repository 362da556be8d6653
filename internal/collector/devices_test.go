package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor/executortest"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

const deviceOutput = `wlan0:wifi:connected:full:limited:/org/freedesktop/NetworkManager/Devices/3:Home WiFi:123e4567:/org/freedesktop/NetworkManager/ActiveConnection/2
lo:loopback:connected (externally):none:none:/org/freedesktop/NetworkManager/Devices/1:lo:5c1f:/org/freedesktop/NetworkManager/ActiveConnection/1

p2p-dev-wlan0:wifi-p2p:disconnected:none:none:/org/freedesktop/NetworkManager/Devices/4:::
`

func TestParseDevices(t *testing.T) {
	records := ParseDevices(deviceOutput)
	require.Len(t, records, 3)

	assert.Equal(t, models.DeviceRecord{
		Device:          "wlan0",
		Type:            "wifi",
		State:           "connected",
		IP4Connectivity: "full",
		IP6Connectivity: "limited",
		DBusPath:        "/org/freedesktop/NetworkManager/Devices/3",
		Connection:      "Home WiFi",
		ConUUID:         "123e4567",
		ConPath:         "/org/freedesktop/NetworkManager/ActiveConnection/2",
	}, records["wlan0"])

	assert.Equal(t, "connected (externally)", records["lo"].State)

	p2p := records["p2p-dev-wlan0"]
	assert.Equal(t, "disconnected", p2p.State)
	assert.Empty(t, p2p.Connection)
	assert.Empty(t, p2p.ConUUID)
	assert.Empty(t, p2p.ConPath)
}

func TestParseDevicesShortLineAndDuplicates(t *testing.T) {
	records, ragged := parseDevices("eth0:ethernet\neth0:ethernet:unavailable\n")
	require.Len(t, records, 1)
	assert.Equal(t, "unavailable", records["eth0"].State)
	assert.Empty(t, records["eth0"].IP4Connectivity)
	assert.Equal(t, []int{1, 2}, ragged)
}

func TestParseDevicesIdempotent(t *testing.T) {
	assert.Equal(t, ParseDevices(deviceOutput), ParseDevices(deviceOutput))
}

func TestDevicesCollector(t *testing.T) {
	runner := executortest.New().
		On(deviceOutput, "nmcli", "-t", "-e", "yes", "-c", "no", "-f", nmcli.DeviceFields.Selector(), "device")
	c := NewDevicesCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())

	value, err := c.Collect(context.Background())
	require.NoError(t, err)
	records, ok := value.(map[string]models.DeviceRecord)
	require.True(t, ok)
	assert.Len(t, records, 3)
}
