package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/planner"
)

type stubModelClient struct {
	response string
	err      error
}

func (s stubModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func TestModelPlannerValidResponse(t *testing.T) {
	resp := `{"workflow_id":"wf-1","steps":[{"agent":"system","tool":"get_current_time","parameters":{}}]}`
	p := planner.NewModelPlanner(stubModelClient{response: resp}, planner.NewRulePlanner(nil))
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodLearning, plan.PlanningMethod)
	assert.Equal(t, "wf-1", plan.WorkflowID)
}

func TestModelPlannerFallsBackOnError(t *testing.T) {
	p := planner.NewModelPlanner(stubModelClient{err: errors.New("network down")}, planner.NewRulePlanner(nil))
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
	assert.Equal(t, "system", plan.Steps[0].Agent)
}

func TestModelPlannerFallsBackOnInvalidJSON(t *testing.T) {
	p := planner.NewModelPlanner(stubModelClient{response: "not json"}, planner.NewRulePlanner(nil))
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}

func TestModelPlannerFallsBackOnUnknownAgent(t *testing.T) {
	resp := `{"workflow_id":"wf-1","steps":[{"agent":"nonexistent","tool":"foo","parameters":{}}]}`
	p := planner.NewModelPlanner(stubModelClient{response: resp}, planner.NewRulePlanner(nil))
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}

func TestModelPlannerNilClientFallsBack(t *testing.T) {
	p := planner.NewModelPlanner(nil, planner.NewRulePlanner(nil))
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}
