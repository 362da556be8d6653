package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor/executortest"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"go.uber.org/zap"
)

func TestNetworkCollector(t *testing.T) {
	runner := executortest.New().On("  disabled \n", "nmcli", "-c", "no", "network")
	c := NewNetworkCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())

	assert.Equal(t, FactNetwork, c.Name())
	assert.Equal(t, []string{"nmcli"}, c.Requires())

	value, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "disabled", value)
}

func TestVersionCollector(t *testing.T) {
	runner := executortest.New().On("1.42.4\n", "/usr/sbin/NetworkManager", "--version")
	c := NewVersionCollector(nmcli.NewClient(runner, "", "/usr/sbin/NetworkManager"), zap.NewNop())

	assert.Equal(t, []string{"/usr/sbin/NetworkManager"}, c.Requires())

	value, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.42.4", value)
}

func TestVersionCollectorFailure(t *testing.T) {
	runner := executortest.New().Fail(1, "boom", "NetworkManager", "--version")
	c := NewVersionCollector(nmcli.NewClient(runner, "", ""), zap.NewNop())

	_, err := c.Collect(context.Background())
	require.Error(t, err)

	var execErr *executor.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.ExitCode)
}
