package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/cache"
	"github.com/redaptive/agentcore/internal/planner"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestPlanCacheMissThenHit(t *testing.T) {
	c := cache.NewPlanCache(newTestClient(t), time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "how is my portfolio doing", []string{"portfolio-intelligence"})
	assert.False(t, ok)

	plan := planner.WorkflowPlan{
		WorkflowID:     "portfolio_analysis_workflow",
		PlanningMethod: planner.MethodRuleBased,
		Steps: []planner.PlanStep{
			{StepIndex: 0, Agent: "portfolio-intelligence", Tool: "analyze_portfolio_energy_usage"},
		},
	}
	c.Set(ctx, "how is my portfolio doing", []string{"portfolio-intelligence"}, plan)

	got, ok := c.Get(ctx, "how is my portfolio doing", []string{"portfolio-intelligence"})
	require.True(t, ok)
	assert.Equal(t, plan.WorkflowID, got.WorkflowID)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, "analyze_portfolio_energy_usage", got.Steps[0].Tool)
}

func TestPlanCacheKeyIsOrderInsensitiveForAgentSet(t *testing.T) {
	c := cache.NewPlanCache(newTestClient(t), time.Minute)
	ctx := context.Background()

	plan := planner.WorkflowPlan{WorkflowID: "w1"}
	c.Set(ctx, "text", []string{"a", "b"}, plan)

	got, ok := c.Get(ctx, "text", []string{"b", "a"})
	require.True(t, ok)
	assert.Equal(t, "w1", got.WorkflowID)
}

func TestPlanCacheNilClientAlwaysMisses(t *testing.T) {
	c := cache.NewPlanCache(nil, time.Minute)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	c.Set(ctx, "text", []string{"a"}, planner.WorkflowPlan{WorkflowID: "w1"})
	_, ok := c.Get(ctx, "text", []string{"a"})
	assert.False(t, ok)
}
