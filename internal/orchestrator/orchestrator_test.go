package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/config"
	"github.com/redaptive/agentcore/internal/orchestrator"
)

func buildProcessor(t *testing.T, cfg *config.Config) *orchestrator.Processor {
	t.Helper()
	proc, shutdown, err := orchestrator.Build(context.Background(), cfg, orchestrator.Deps{})
	require.NoError(t, err)
	t.Cleanup(func() { shutdown(context.Background()) })
	return proc
}

func TestHandleRoutesATimeRequestThroughTheSystemAgent(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	resp, err := proc.Handle(context.Background(), "what is today's date and time")
	require.NoError(t, err)

	assert.Equal(t, "time", resp.Intent)
	assert.NotEmpty(t, resp.WorkflowID)
	require.NotEmpty(t, resp.Steps)
	assert.True(t, resp.Steps[0].Success)
	assert.Equal(t, "system", resp.Steps[0].Agent)
}

func TestHandleOutOfScopeRequestStillCompletes(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	resp, err := proc.Handle(context.Background(), "tell me a joke")
	require.NoError(t, err)

	assert.Equal(t, "out_of_scope", resp.Intent)
	require.NotEmpty(t, resp.Steps)
	assert.True(t, resp.Steps[0].Success)
}

func TestHandlePortfolioRequestWorksWhileRedisUnconfigured(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	resp, err := proc.Handle(context.Background(), "how is walmart's portfolio performing this year")
	require.NoError(t, err)

	assert.Equal(t, "portfolio", resp.Intent)
	require.NotEmpty(t, resp.Steps)
	assert.Equal(t, "portfolio-intelligence", resp.Steps[0].Agent)
	assert.True(t, resp.Steps[0].Success)
}

func TestHandleIsIdempotentAcrossCalls(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	ctx := context.Background()

	first, err := proc.Handle(ctx, "what time is it")
	require.NoError(t, err)
	second, err := proc.Handle(ctx, "what time is it")
	require.NoError(t, err)

	assert.NotEqual(t, first.WorkflowID, second.WorkflowID, "each planning event mints a fresh workflow id")
	assert.Len(t, proc.ListAvailableAgents(), 6)
}

func TestGetWorkflowStatusReflectsCompletedExecution(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	resp, err := proc.Handle(context.Background(), "what time is it")
	require.NoError(t, err)

	status := proc.GetWorkflowStatus(resp.WorkflowID)
	assert.Equal(t, resp.WorkflowID, status.WorkflowID)
}

func TestBuildRejectsInvalidPlanningMethod(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultPlanningMethod = "astrology"
	_, _, err := orchestrator.Build(context.Background(), cfg, orchestrator.Deps{})
	assert.Error(t, err)
}

func TestResponseStringIncludesSummary(t *testing.T) {
	proc := buildProcessor(t, config.Default())
	resp, err := proc.Handle(context.Background(), "what time is it")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "summary:")
}
