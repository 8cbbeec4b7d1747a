package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/planner"
)

func newAdaptive(client planner.ModelClient) *planner.AdaptivePlanner {
	rule := planner.NewRulePlanner(nil)
	model := planner.NewModelPlanner(client, rule)
	return planner.NewAdaptivePlanner(planner.AdaptiveSystematic, rule, model)
}

func TestAdaptivePlannerExplicitSystematic(t *testing.T) {
	p := newAdaptive(nil)
	plan, err := p.PlanWithMethod("what time is it", planner.IntentMatch{Intent: "time"}, allAgents, planner.AdaptiveSystematic)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}

func TestAdaptivePlannerKeywordDetection(t *testing.T) {
	p := newAdaptive(nil)
	plan, err := p.Plan("use a systematic approach for what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}

func TestAdaptivePlannerUsePatternRuleBasedMapsToSystematic(t *testing.T) {
	p := newAdaptive(nil)
	plan, err := p.Plan("use rule-based planning, what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodRuleBased, plan.PlanningMethod)
}

func TestAdaptivePlannerAutoFallsBackWhenNoClient(t *testing.T) {
	p := newAdaptive(nil)
	plan, err := p.PlanWithMethod("what time is it", planner.IntentMatch{Intent: "time"}, allAgents, planner.AdaptiveAuto)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodAuto, plan.PlanningMethod)
}

type workingClient struct{}

func (workingClient) Generate(ctx context.Context, prompt string) (string, error) {
	return `{"workflow_id":"wf-auto","steps":[{"agent":"system","tool":"get_current_time","parameters":{}}]}`, nil
}

func TestAdaptivePlannerAutoUsesLearningWhenValid(t *testing.T) {
	p := newAdaptive(workingClient{})
	plan, err := p.PlanWithMethod("what time is it", planner.IntentMatch{Intent: "time"}, allAgents, planner.AdaptiveAuto)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodLearning, plan.PlanningMethod)
	assert.Equal(t, "wf-auto", plan.WorkflowID)
}

func TestAdaptivePlannerHybrid(t *testing.T) {
	p := newAdaptive(workingClient{})
	plan, err := p.PlanWithMethod("what time is it", planner.IntentMatch{Intent: "time"}, allAgents, planner.AdaptiveHybrid)
	require.NoError(t, err)
	assert.Equal(t, planner.MethodHybrid, plan.PlanningMethod)
}
