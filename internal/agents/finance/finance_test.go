package finance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/agents/finance"
)

func TestCalculateProjectROIPositiveNPVRecommendsProceed(t *testing.T) {
	a := finance.New()
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "calculate_project_roi", map[string]any{
		"project_details": map[string]any{
			"project_name":     "Building 4 LED Retrofit",
			"technology_type":  "LED",
			"total_investment": 100000.0,
			"project_lifetime": 15,
		},
		"energy_savings": map[string]any{
			"annual_kwh_savings":   500000.0,
			"baseline_energy_cost": 80000.0,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	metrics, ok := out["financial_metrics"].(agent.Output)
	require.True(t, ok)
	assert.Greater(t, metrics["npv"], 0.0)
	assert.Contains(t, out["investment_recommendation"], "PROCEED")
}

func TestCalculateProjectROIRejectsOnNegativeNPV(t *testing.T) {
	a := finance.New()
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "calculate_project_roi", map[string]any{
		"project_details": map[string]any{
			"project_name":     "Marginal Project",
			"technology_type":  "HVAC",
			"total_investment": 1000000.0,
			"project_lifetime": 5,
		},
		"energy_savings": map[string]any{
			"annual_kwh_savings":   1000.0,
			"baseline_energy_cost": 1000.0,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	assert.Contains(t, out["investment_recommendation"], "REJECT")
}

func TestOptimizeEaasContractReturnsScenarioWhenFeasible(t *testing.T) {
	a := finance.New()
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "optimize_eaas_contract", map[string]any{
		"contract_parameters": map[string]any{
			"contract_term":          10,
			"guaranteed_savings":     200000.0,
			"base_year_consumption":  5000000.0,
		},
		"project_costs": map[string]any{
			"capital_cost": 800000.0,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, []any{"success", "no_feasible_solution"}, out["status"])
}

func TestOptimizeEaasContractNoFeasibleSolutionReportsConstraints(t *testing.T) {
	a := finance.New()
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "optimize_eaas_contract", map[string]any{
		"contract_parameters": map[string]any{
			"contract_term":         3,
			"guaranteed_savings":    1000.0,
			"base_year_consumption": 5000.0,
		},
		"project_costs": map[string]any{
			"capital_cost":       5000000.0,
			"operating_costs":    100000.0,
			"maintenance_costs":  100000.0,
		},
		"constraints": map[string]any{
			"min_irr":     0.9,
			"max_payback": 0.1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "no_feasible_solution", out["status"])
}
