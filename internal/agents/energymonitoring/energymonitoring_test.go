package energymonitoring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/agents/energymonitoring"
)

func TestInitWithoutDSNEntersDegraded(t *testing.T) {
	a := energymonitoring.New("")
	require.NoError(t, a.Init(context.Background()))
	assert.Equal(t, agent.StateDegraded, a.State())
}

func TestAnalyzeUsagePatternsWorksWhileDegraded(t *testing.T) {
	a := energymonitoring.New("")
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "analyze_usage_patterns", map[string]any{
		"scope":      "building",
		"identifier": "building_4",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "building_4", out["identifier"])
}

func TestGetLatestEnergyReadingUnavailableWhileDegraded(t *testing.T) {
	a := energymonitoring.New("")
	require.NoError(t, a.Init(context.Background()))

	_, err := a.Invoke(context.Background(), "get_latest_energy_reading", map[string]any{})
	require.Error(t, err)
}
