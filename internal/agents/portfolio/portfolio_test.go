package portfolio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/agents/portfolio"
)

func newReadyAgent(t *testing.T) *portfolio.Agent {
	t.Helper()
	a := portfolio.New("")
	require.NoError(t, a.Init(context.Background()))
	assert.Equal(t, agent.StateReady, a.State())
	return a
}

func TestAnalyzePortfolioEnergyUsageReturnsRollup(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "analyze_portfolio_energy_usage", map[string]any{
		"portfolio_id": "portfolio_1",
		"date_range":   map[string]any{"start_date": "2026-01-01", "end_date": "2026-06-30"},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	metrics, ok := out["portfolio_metrics"].(agent.Output)
	require.True(t, ok)
	assert.Greater(t, metrics["total_consumption"], 0.0)
}

func TestIdentifyOptimizationOpportunitiesRanksByROI(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "identify_optimization_opportunities", map[string]any{
		"buildings_list":    []any{"bldg_101", "bldg_204"},
		"min_roi_threshold": 0.5,
		"max_payback_years": 30.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out["buildings_analyzed"])
	opportunities, ok := out["opportunities"].([]agent.Output)
	require.True(t, ok)
	require.NotEmpty(t, opportunities)
	for i := 1; i < len(opportunities); i++ {
		assert.GreaterOrEqual(t, opportunities[i-1]["estimated_roi"], opportunities[i]["estimated_roi"])
	}
}

func TestIdentifyOptimizationOpportunitiesHonorsTightConstraints(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "identify_optimization_opportunities", map[string]any{
		"buildings_list":    []any{"bldg_101"},
		"min_roi_threshold": 1000.0,
		"max_payback_years": 0.01,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out["opportunities_identified"])
}

func TestBenchmarkPortfolioPerformanceDefaultsToIndustry(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "benchmark_portfolio_performance", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "industry", out["benchmark_type"])
}

func TestGenerateSustainabilityReportIncludesCarbonAndBenchmarking(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "generate_sustainability_report", map[string]any{
		"portfolio_id":     "portfolio_1",
		"reporting_period": map[string]any{"start_date": "2026-01-01", "end_date": "2026-06-30"},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	assert.Contains(t, out, "carbon_footprint")
	assert.Contains(t, out, "benchmarking")
	assert.Contains(t, out, "recommendations")
}

func TestGenerateSustainabilityReportCanSkipOptionalSections(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "generate_sustainability_report", map[string]any{
		"portfolio_id":              "portfolio_1",
		"reporting_period":          map[string]any{"start_date": "2026-01-01", "end_date": "2026-06-30"},
		"report_type":               "regulatory",
		"include_carbon_footprint":  false,
		"include_benchmarking":      false,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "carbon_footprint")
	assert.NotContains(t, out, "benchmarking")
	assert.NotContains(t, out, "recommendations")
}

func TestSearchFacilitiesFiltersByLocationAndType(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "search_facilities", map[string]any{
		"location":      "denver",
		"facility_type": "office",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out["facilities_found"])
}

func TestSearchFacilitiesReturnsNoMatchesForUnknownLocation(t *testing.T) {
	a := newReadyAgent(t)

	out, err := a.Invoke(context.Background(), "search_facilities", map[string]any{
		"location": "atlantis",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out["facilities_found"])
}
