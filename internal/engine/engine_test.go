package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/engine"
	"github.com/redaptive/agentcore/internal/planner"
	"github.com/redaptive/agentcore/internal/registry"
)

type stubAgent struct {
	*agent.Base
	initErr error
}

func newStubAgent(name string) *stubAgent {
	return &stubAgent{Base: agent.NewBase(name)}
}

func (a *stubAgent) Init(ctx context.Context) error {
	if a.initErr != nil {
		return a.initErr
	}
	a.SetState(agent.StateReady)
	return nil
}

func (a *stubAgent) Close(context.Context) error {
	a.SetState(agent.StateClosed)
	return nil
}

func echoFactory(name string, register func(*stubAgent)) agent.Factory {
	return func(ctx context.Context) (agent.Instance, error) {
		a := newStubAgent(name)
		register(a)
		return a, nil
	}
}

func buildEngine(t *testing.T) (*engine.Engine, *registry.Registry) {
	t.Helper()
	reg := registry.New()

	require.NoError(t, reg.Register("system", echoFactory("system", func(a *stubAgent) {
		a.Register(agent.ToolDescriptor{
			Name: "get_current_time",
			Handler: func(ctx context.Context, params map[string]any) (agent.Output, error) {
				return agent.Output{"timezone": params["timezone"]}, nil
			},
		})
	})))

	require.NoError(t, reg.Register("energy-monitoring", echoFactory("energy-monitoring", func(a *stubAgent) {
		a.Register(agent.ToolDescriptor{
			Name: "analyze_usage_patterns",
			Handler: func(ctx context.Context, params map[string]any) (agent.Output, error) {
				return agent.Output{"building_id": params["identifier"]}, nil
			},
		})
	})))

	require.NoError(t, reg.Register("portfolio-intelligence", echoFactory("portfolio-intelligence", func(a *stubAgent) {
		a.Register(agent.ToolDescriptor{
			Name: "identify_optimization_opportunities",
			Handler: func(ctx context.Context, params map[string]any) (agent.Output, error) {
				return agent.Output{"echo_building": params["buildings_list"]}, nil
			},
		})
	})))

	eng := engine.New(reg, engine.Options{DefaultStepTimeout: time.Second})
	return eng, reg
}

func TestInitializeAgentsSkipsUnknownButSucceeds(t *testing.T) {
	eng, _ := buildEngine(t)
	ok := eng.InitializeAgents(context.Background(), []string{"system", "does-not-exist"})
	assert.True(t, ok)
	names := eng.AvailableAgentNames()
	assert.Contains(t, names, "system")
	assert.NotContains(t, names, "does-not-exist")
}

func TestInitializeAgentsAllUnknownReturnsFalse(t *testing.T) {
	eng, _ := buildEngine(t)
	ok := eng.InitializeAgents(context.Background(), []string{"nope"})
	assert.False(t, ok)
}

func TestExecuteWorkflowSequentialAndPlaceholderChain(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"energy-monitoring", "portfolio-intelligence"}))

	plan := planner.WorkflowPlan{
		WorkflowID: "wf-1",
		Steps: []planner.PlanStep{
			{StepIndex: 0, Agent: "energy-monitoring", Tool: "analyze_usage_patterns", Parameters: map[string]any{"identifier": "building_4"}},
			{StepIndex: 1, Agent: "portfolio-intelligence", Tool: "identify_optimization_opportunities", Parameters: map[string]any{
				"buildings_list": planner.PlaceholderRef{StepIndex: 0, Field: "building_id"},
			}},
		},
	}

	result, err := eng.ExecuteWorkflow(context.Background(), "wf-1", plan)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCompleted, result.Status)
	require.Contains(t, result.Results, "step_1")
	require.Contains(t, result.Results, "step_2")
	assert.Equal(t, "building_4", result.Results["step_2"].Result["echo_building"])
}

func TestExecuteWorkflowUnknownAgentFailsFast(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"system"}))

	plan := planner.WorkflowPlan{
		WorkflowID: "wf-2",
		Steps: []planner.PlanStep{
			{StepIndex: 0, Agent: "system", Tool: "get_current_time", Parameters: map[string]any{}},
			{StepIndex: 1, Agent: "never-initialized", Tool: "whatever", Parameters: map[string]any{}},
		},
	}
	result, err := eng.ExecuteWorkflow(context.Background(), "wf-2", plan)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusFailed, result.Status)
	assert.Contains(t, result.Results, "step_1")
	assert.NotContains(t, result.Results, "step_2")
	require.Error(t, result.Error)
}

func TestGetWorkflowStatusNotFound(t *testing.T) {
	eng, _ := buildEngine(t)
	status := eng.GetWorkflowStatus("nonexistent")
	assert.Equal(t, engine.StatusNotFound, status.Status)
}

func TestGetWorkflowStatusAfterCompletion(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"system"}))
	plan := planner.WorkflowPlan{
		WorkflowID: "wf-3",
		Steps: []planner.PlanStep{
			{StepIndex: 0, Agent: "system", Tool: "get_current_time", Parameters: map[string]any{}},
		},
	}
	_, err := eng.ExecuteWorkflow(context.Background(), "wf-3", plan)
	require.NoError(t, err)

	status := eng.GetWorkflowStatus("wf-3")
	assert.Equal(t, engine.StatusCompleted, status.Status)
	assert.Equal(t, 1, status.StepsCompleted)
	assert.Equal(t, 1, status.TotalSteps)
}

func TestExecuteWorkflowRespectsCancellation(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"system"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := planner.WorkflowPlan{
		WorkflowID: "wf-4",
		Steps: []planner.PlanStep{
			{StepIndex: 0, Agent: "system", Tool: "get_current_time", Parameters: map[string]any{}},
		},
	}
	result, err := eng.ExecuteWorkflow(ctx, "wf-4", plan)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusFailed, result.Status)
	require.Error(t, result.Error)
}

func TestListAvailableAgents(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"system", "energy-monitoring"}))
	infos := eng.ListAvailableAgents()
	assert.Len(t, infos, 2)
}

func TestShutdownClearsState(t *testing.T) {
	eng, _ := buildEngine(t)
	require.True(t, eng.InitializeAgents(context.Background(), []string{"system"}))
	plan := planner.WorkflowPlan{
		WorkflowID: "wf-5",
		Steps:      []planner.PlanStep{{StepIndex: 0, Agent: "system", Tool: "get_current_time", Parameters: map[string]any{}}},
	}
	_, _ = eng.ExecuteWorkflow(context.Background(), "wf-5", plan)

	eng.Shutdown(context.Background())
	assert.Empty(t, eng.AvailableAgentNames())
	assert.Equal(t, engine.StatusNotFound, eng.GetWorkflowStatus("wf-5").Status)
}
