package collector

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor/executortest"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/pkg/models"
	"go.uber.org/zap"
)

const homeWiFiLine = "Home WiFi:123e4567:wifi:yes:5:no:/org/x/1::wlan0:activated:/org/x/2:home.nmconnection"

func boolPtr(b bool) *bool { return &b }

func TestParseConnectionsHomeWiFi(t *testing.T) {
	records := ParseConnections(homeWiFiLine + "\n")

	require.Contains(t, records, "Home WiFi")
	got := records["Home WiFi"]

	assert.Equal(t, models.ConnectionRecord{
		Name:                "Home WiFi",
		UUID:                "123e4567",
		Type:                "wifi",
		Autoconnect:         boolPtr(true),
		AutoconnectPriority: "5",
		Readonly:            boolPtr(false),
		DBusPath:            "/org/x/1",
		Active:              nil,
		Device:              "wlan0",
		State:               "activated",
		ActivePath:          "/org/x/2",
		Filename:            "home.nmconnection",
	}, got)
}

func TestParseConnectionsBooleans(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *bool
	}{
		{name: "yes", value: "yes", want: boolPtr(true)},
		{name: "no", value: "no", want: boolPtr(false)},
		{name: "other_token", value: "YES", want: boolPtr(false)},
		{name: "empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := "c:u:t:" + tt.value + ":0:" + tt.value + ":/p:" + tt.value + ":d:s:/a:f"
			got := ParseConnections(line)["c"]
			assert.Equal(t, tt.want, got.Autoconnect)
			assert.Equal(t, tt.want, got.Readonly)
			assert.Equal(t, tt.want, got.Active)
		})
	}
}

func TestParseConnectionsSkipsBlankLinesAndLastWins(t *testing.T) {
	raw := "\n   \nlo:uuid-1:loopback:no:0:no:/p/1:yes:lo:activated:/a/1:\n\nlo:uuid-2:loopback:no:0:no:/p/2:no::::\n"

	records := ParseConnections(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "uuid-2", records["lo"].UUID)
	assert.Equal(t, boolPtr(false), records["lo"].Active)
	assert.Empty(t, records["lo"].Device)
	assert.Empty(t, records["lo"].Filename)
}

func TestParseConnectionsShortLine(t *testing.T) {
	assert.NotPanics(t, func() {
		records, ragged := parseConnections("Wired:abc:ethernet\n")
		require.Contains(t, records, "Wired")
		got := records["Wired"]
		assert.Equal(t, "abc", got.UUID)
		assert.Equal(t, "ethernet", got.Type)
		assert.Nil(t, got.Autoconnect)
		assert.Nil(t, got.Active)
		assert.Empty(t, got.State)
		assert.Equal(t, []int{1}, ragged)
	})
}

func TestParseConnectionsEscapedName(t *testing.T) {
	records := ParseConnections(`VPN\: office:u:vpn:no:0:no:/p::::/a:`)
	assert.Contains(t, records, "VPN: office")
}

// serializeConnection writes the known fields back in list order.
func serializeConnection(r models.ConnectionRecord) string {
	yn := func(b *bool) string {
		switch {
		case b == nil:
			return ""
		case *b:
			return "yes"
		default:
			return "no"
		}
	}
	return strings.Join([]string{
		r.Name, r.UUID, r.Type, yn(r.Autoconnect), r.AutoconnectPriority, yn(r.Readonly),
		r.DBusPath, yn(r.Active), r.Device, r.State, r.ActivePath, r.Filename,
	}, ":")
}

func TestParseConnectionsRoundTrip(t *testing.T) {
	lines := []string{
		homeWiFiLine,
		"Wired connection 1:0e7f:802-3-ethernet:yes:-999:no:/org/freedesktop/NetworkManager/Settings/1:yes:eth0:activated:/org/freedesktop/NetworkManager/ActiveConnection/1:/run/NetworkManager/system-connections/Wired.nmconnection",
		"lo:5c1f:loopback:no:0:yes:/org/freedesktop/NetworkManager/Settings/2::::: ",
		"empty::::::::::: ",
	}

	for _, line := range lines {
		records := ParseConnections(line)
		require.Len(t, records, 1)
		for _, r := range records {
			assert.Equal(t, strings.TrimSpace(line), serializeConnection(r))
		}
	}
}

func TestParseConnectionsIdempotent(t *testing.T) {
	raw := homeWiFiLine + "\nlo:u:loopback:no:0:no:/p:yes:lo:activated:/a:\n"
	assert.Equal(t, ParseConnections(raw), ParseConnections(raw))
}

func TestConnectionsCollector(t *testing.T) {
	runner := executortest.New().
		On(homeWiFiLine+"\n", "nmcli", "-t", "-f", nmcli.ConnectionFields.Selector(), "con", "show")
	c := NewConnectionsCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())

	assert.Equal(t, FactAllConnections, c.Name())
	assert.Equal(t, []string{"nmcli"}, c.Requires())

	value, err := c.Collect(context.Background())
	require.NoError(t, err)
	records, ok := value.(map[string]models.ConnectionRecord)
	require.True(t, ok)
	assert.Contains(t, records, "Home WiFi")
}

func TestConnectionsCollectorCommandFailure(t *testing.T) {
	runner := executortest.New().
		Fail(8, "Error: NetworkManager is not running.", "nmcli", "-t", "-f", nmcli.ConnectionFields.Selector(), "con", "show")
	c := NewConnectionsCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())

	value, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Nil(t, value)
	assert.Contains(t, err.Error(), "list connections")
}
