package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/planner"
)

var allAgents = []string{
	"system", "energy-monitoring", "portfolio-intelligence",
	"energy-finance", "document-processing", "summarize",
}

func TestRulePlannerNoAgentsGuard(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("anything", planner.IntentMatch{Intent: "energy"}, nil)
	require.NoError(t, err)
	assert.Equal(t, planner.NoAgentsWorkflowID, plan.WorkflowID)
	assert.Empty(t, plan.Steps)
}

func TestRulePlannerOutOfScope(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("tell me a joke", planner.IntentMatch{Intent: "out_of_scope", Confidence: 0.2}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "system", plan.Steps[0].Agent)
	assert.Equal(t, "scope_check", plan.Steps[0].Tool)
}

func TestRulePlannerEnergyMonitoringLatest(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("what is the latest energy reading", planner.IntentMatch{Intent: "energy_monitoring"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "energy-monitoring", plan.Steps[0].Agent)
	assert.Equal(t, "get_latest_energy_reading", plan.Steps[0].Tool)
	assert.Equal(t, true, plan.Steps[0].Parameters["include_details"])
}

func TestRulePlannerTime(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("what time is it", planner.IntentMatch{Intent: "time"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "system", plan.Steps[0].Agent)
	assert.Equal(t, "get_current_time", plan.Steps[0].Tool)
	assert.Equal(t, "America/Denver", plan.Steps[0].Parameters["timezone"])
}

func TestRulePlannerEnergyAnalysisExtractsBuilding(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("show energy usage for building 12 last quarter", planner.IntentMatch{Intent: "energy"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "energy-monitoring", plan.Steps[0].Agent)
	assert.Equal(t, "building_12", plan.Steps[0].Parameters["identifier"])
	tr := plan.Steps[0].Parameters["time_range"].(map[string]any)
	assert.Equal(t, "2025-04-01", tr["start_date"])
	assert.Equal(t, "portfolio-intelligence", plan.Steps[1].Agent)
}

func TestRulePlannerPortfolioPerformanceDetectsCompany(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("show walmart portfolio performance benchmark", planner.IntentMatch{Intent: "portfolio"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "PORTFOLIO-002", plan.Steps[0].Parameters["portfolio_id"])
	assert.Equal(t, "benchmark_portfolio_performance", plan.Steps[1].Tool)
	assert.Equal(t, "generate_sustainability_report", plan.Steps[2].Tool)
}

func TestRulePlannerPortfolioExplicitID(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("status of portfolio abc-123", planner.IntentMatch{Intent: "portfolio"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "ABC-123", plan.Steps[0].Parameters["portfolio_id"])
}

func TestRulePlannerFinanceExtractsInvestmentAmount(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("roi for a $75k solar project on building 4", planner.IntentMatch{Intent: "finance"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	details := plan.Steps[0].Parameters["project_details"].(map[string]any)
	assert.Equal(t, "Solar", details["technology_type"])
	assert.Equal(t, 75000.0, details["total_investment"])
}

func TestRulePlannerFinanceDefaultInvestment(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("calculate roi for led retrofit", planner.IntentMatch{Intent: "finance"}, allAgents)
	require.NoError(t, err)
	details := plan.Steps[0].Parameters["project_details"].(map[string]any)
	assert.Equal(t, 50000.0, details["total_investment"])
}

func TestRulePlannerDocumentCues(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("please summarize this pdf document", planner.IntentMatch{Intent: "unknown"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "document-processing", plan.Steps[0].Agent)
	assert.Equal(t, "summarize", plan.Steps[1].Agent)
}

func TestRulePlannerGeneralFallback(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	plan, err := p.Plan("random unrelated gibberish text", planner.IntentMatch{Intent: "unknown"}, allAgents)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "search_facilities", plan.Steps[0].Tool)
}
