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

func TestFilterActiveExcludesAbsentActive(t *testing.T) {
	all := ParseConnections(homeWiFiLine)
	require.Contains(t, all, "Home WiFi")

	active := FilterActive(all)
	assert.NotContains(t, active, "Home WiFi")
	assert.Empty(t, active)
}

func TestFilterActiveRequiresBothConditions(t *testing.T) {
	all := map[string]models.ConnectionRecord{
		"both":          {Name: "both", Active: boolPtr(true), State: "activated"},
		"active_only":   {Name: "active_only", Active: boolPtr(true), State: "activating"},
		"state_only":    {Name: "state_only", Active: boolPtr(false), State: "activated"},
		"missing_state": {Name: "missing_state", Active: boolPtr(true)},
		"missing_both":  {Name: "missing_both"},
		"case_differs":  {Name: "case_differs", Active: boolPtr(true), State: "Activated"},
	}

	active := FilterActive(all)
	assert.Len(t, active, 1)
	assert.Contains(t, active, "both")
	assert.Len(t, all, 6, "input must not be modified")
}

func TestActiveConnectionsCollector(t *testing.T) {
	raw := homeWiFiLine + "\n" +
		"Wired:0e7f:ethernet:yes:0:no:/p/1:yes:eth0:activated:/a/1:wired.nmconnection\n" +
		"Guest:77aa:wifi:yes:0:no:/p/2:no::::guest.nmconnection\n"
	runner := executortest.New().
		On(raw, "nmcli", "-t", "-f", nmcli.ConnectionFields.Selector(), "con", "show")
	all := NewConnectionsCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())
	c := NewActiveConnectionsCollector(all, zap.NewNop())

	assert.Equal(t, FactActiveConnections, c.Name())
	assert.Equal(t, []string{"nmcli"}, c.Requires())

	value, err := c.Collect(context.Background())
	require.NoError(t, err)
	active := value.(map[string]models.ConnectionRecord)
	assert.Len(t, active, 1)
	assert.Equal(t, "eth0", active["Wired"].Device)
}
