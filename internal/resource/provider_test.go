package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor/executortest"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func threeConnections() *executortest.Runner {
	return executortest.New().
		Install("nmcli").
		On("alpha\nbeta\ngamma\n", "nmcli", "-t", "-f", "name", "connection", "show").
		On("GENERAL.STATE:activated\nconnection.uuid:a-1\n", "nmcli", "-t", "connection", "show", "alpha").
		Fail(10, "Error: beta - no such connection profile.", "nmcli", "-t", "connection", "show", "beta").
		On("connection.uuid:g-3\n", "nmcli", "-t", "connection", "show", "gamma")
}

func TestProviderGetDropsUnreadable(t *testing.T) {
	p := NewProvider(nmcli.NewClient(threeConnections(), "", ""), zap.NewNop())

	details := p.Get(context.Background())
	require.Len(t, details, 2)
	assert.Equal(t, "alpha", details[0].Name)
	assert.Equal(t, "gamma", details[1].Name)
	assert.Equal(t, "activated", details[0].GeneralState)
	assert.Equal(t, StateUnknown, details[1].GeneralState)
}

func TestProviderGetByName(t *testing.T) {
	runner := threeConnections()
	p := NewProvider(nmcli.NewClient(runner, "", ""), zap.NewNop())

	details := p.Get(context.Background(), "gamma", "beta", "alpha")
	require.Len(t, details, 2)
	assert.Equal(t, "gamma", details[0].Name)
	assert.Equal(t, "alpha", details[1].Name)

	for _, call := range runner.Calls() {
		assert.NotEqual(t, []string{"nmcli", "-t", "-f", "name", "connection", "show"}, call)
	}
}

func TestProviderOutcomes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProvider(nmcli.NewClient(threeConnections(), "", ""), zap.New(core))

	outcomes, err := p.Outcomes(context.Background(), "alpha", "beta", "gamma")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())
	assert.Equal(t, "beta", outcomes[1].Name)
	assert.Contains(t, outcomes[1].Err.Error(), "beta")
	assert.True(t, outcomes[2].OK())

	skipped := logs.FilterMessage("connection unreadable, skipping").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "beta", skipped[0].ContextMap()["connection"])
}

func TestProviderListFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	runner := executortest.New().
		Install("nmcli").
		Fail(8, "Error: NetworkManager is not running.", "nmcli", "-t", "-f", "name", "connection", "show")
	p := NewProvider(nmcli.NewClient(runner, "", ""), zap.New(core))

	details := p.Get(context.Background())
	assert.NotNil(t, details)
	assert.Empty(t, details)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "error listing NetworkManager connections", errs[0].Message)

	_, err := p.Outcomes(context.Background())
	assert.Error(t, err)
}

func TestProviderEmptyList(t *testing.T) {
	runner := executortest.New().On("\n", "nmcli", "-t", "-f", "name", "connection", "show")
	p := NewProvider(nmcli.NewClient(runner, "", ""), zap.NewNop())

	assert.Empty(t, p.Get(context.Background()))
}

func TestProviderRequiresAndType(t *testing.T) {
	p := NewProvider(nmcli.NewClient(executortest.New(), "/opt/nm/bin/nmcli", ""), zap.NewNop())
	assert.Equal(t, []string{"/opt/nm/bin/nmcli"}, p.Requires())
	assert.Equal(t, TypeName, p.Type().Name)
}
