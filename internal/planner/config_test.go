package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/config"
	"github.com/redaptive/agentcore/internal/planner"
)

func TestApplyConfigOverridesCompanyPortfolioMap(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	p.ApplyConfig(&config.Config{
		CompanyPortfolioMap: []config.CompanyPortfolio{
			{Company: "acme", Portfolio: "PORTFOLIO-900"},
		},
	})

	plan, err := p.Plan("how is acme's portfolio performing this year", planner.IntentMatch{Intent: "portfolio"}, []string{"portfolio-intelligence"})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Steps)
	assert.Equal(t, "PORTFOLIO-900", plan.Steps[0].Parameters["portfolio_id"])
}

func TestApplyConfigNilLeavesDefaults(t *testing.T) {
	p := planner.NewRulePlanner(nil)
	p.ApplyConfig(nil)

	plan, err := p.Plan("what about walmart's portfolio performance", planner.IntentMatch{Intent: "portfolio"}, []string{"portfolio-intelligence"})
	require.NoError(t, err)
	assert.Equal(t, "PORTFOLIO-002", plan.Steps[0].Parameters["portfolio_id"])
}
