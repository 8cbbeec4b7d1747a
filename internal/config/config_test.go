package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/config"
)

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "systematic", cfg.DefaultPlanningMethod)
	assert.False(t, cfg.EnableIntelligentRouting)
	assert.False(t, cfg.CacheEnabled)
}

func TestParseOverridesOnTopOfDefaults(t *testing.T) {
	raw := []byte(`
default_planning_method: hybrid
model_provider: anthropic
model_api_key: sk-test
max_concurrent_workflows: 4
default_step_timeout_seconds: 10
enable_intelligent_routing: true
cache_enabled: true
date_ranges:
  current_year:
    start_date: "2026-01-01"
    end_date: "2026-12-31"
company_portfolio_map:
  - company: acme
    portfolio: PORTFOLIO-900
intent_keywords:
  energy: ["kwh", "usage"]
`)
	cfg, err := config.Parse(raw)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "hybrid", cfg.DefaultPlanningMethod)
	assert.Equal(t, "anthropic", cfg.ModelProvider)
	assert.Equal(t, 4, cfg.MaxConcurrentWorkflows)
	assert.True(t, cfg.EnableIntelligentRouting)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, "2026-01-01", cfg.DateRanges["current_year"].Start)
	require.Len(t, cfg.CompanyPortfolioMap, 1)
	assert.Equal(t, "PORTFOLIO-900", cfg.CompanyPortfolioMap[0].Portfolio)
	assert.Equal(t, []string{"kwh", "usage"}, cfg.IntentKeywords["energy"])
}

func TestDefaultStepTimeoutFallsBackWhenUnset(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, 30, int(cfg.DefaultStepTimeout().Seconds()))
}

func TestValidateRejectsUnknownPlanningMethod(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultPlanningMethod = "astrology"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeConcurrency(t *testing.T) {
	cfg := config.Default()
	cfg.MaxConcurrentWorkflows = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.Load("/tmp/does-not-exist-agentcore-config.yaml")
	assert.Error(t, err)
}
