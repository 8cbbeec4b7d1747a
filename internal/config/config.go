// Package config loads the typed configuration surface enumerated in
// spec.md §6.2 (Planner Configuration) and §6.3 (Engine Configuration):
// planning method selection, model credentials, entity lookup tables, and
// engine concurrency/timeout/cache knobs.
//
// Grounded on compozy-compozy's engine/core/config.go layered-struct shape;
// loading uses github.com/goccy/go-yaml to decode the file into a loosely
// typed tree and github.com/go-viper/mapstructure/v2 to decode that tree
// into Config, matching the pattern of reading a YAML document into
// map[string]any before binding it to a concrete struct that the compozy
// config loader also follows.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

// DateRange is a literal ISO start/end pair, mirrored from
// planner.DateRange so config can be decoded without importing planner
// (which would create an import cycle since planner consumes Config).
type DateRange struct {
	Start string `yaml:"start_date" mapstructure:"start_date"`
	End   string `yaml:"end_date" mapstructure:"end_date"`
}

// CompanyPortfolio is one entry of the company -> portfolio lookup table.
type CompanyPortfolio struct {
	Company   string `yaml:"company" mapstructure:"company"`
	Portfolio string `yaml:"portfolio" mapstructure:"portfolio"`
}

// Config is the full configuration surface (spec §6.2/§6.3).
type Config struct {
	// DefaultPlanningMethod selects which Planner family member the
	// orchestrator routes to by default: systematic | learning | hybrid | auto.
	DefaultPlanningMethod string `yaml:"default_planning_method" mapstructure:"default_planning_method"`
	// ModelProvider identifies the external model backing the Model Planner:
	// "anthropic" or "openai"; any other value leaves it without a client.
	ModelProvider string `yaml:"model_provider" mapstructure:"model_provider"`
	// ModelAPIKey is the credential for ModelProvider. Its absence forces
	// the Hybrid/Adaptive planners to fall back to rule-based routing.
	ModelAPIKey string `yaml:"model_api_key" mapstructure:"model_api_key"`
	// CompanyPortfolioMap is the closed company -> portfolio lookup table
	// used by the Rule Planner's entity extraction.
	CompanyPortfolioMap []CompanyPortfolio `yaml:"company_portfolio_map" mapstructure:"company_portfolio_map"`
	// DateRanges is the named literal date-range table used by the Rule
	// Planner's time-period extraction.
	DateRanges map[string]DateRange `yaml:"date_ranges" mapstructure:"date_ranges"`
	// IntentKeywords is the per-intent keyword table for the Intent Matcher.
	IntentKeywords map[string][]string `yaml:"intent_keywords" mapstructure:"intent_keywords"`

	// MaxConcurrentWorkflows bounds the Execution Engine's in-flight
	// workflow count.
	MaxConcurrentWorkflows int `yaml:"max_concurrent_workflows" mapstructure:"max_concurrent_workflows"`
	// DefaultStepTimeoutSeconds is the per-step deadline applied when a
	// PlanStep does not declare its own.
	DefaultStepTimeoutSeconds int `yaml:"default_step_timeout_seconds" mapstructure:"default_step_timeout_seconds"`
	// EnableIntelligentRouting toggles whether the orchestrator's default
	// planning method resolves to the Adaptive planner.
	EnableIntelligentRouting bool `yaml:"enable_intelligent_routing" mapstructure:"enable_intelligent_routing"`
	// CacheEnabled opt-in memoizes identical (text, agents) plans.
	CacheEnabled bool `yaml:"cache_enabled" mapstructure:"cache_enabled"`
}

// DefaultStepTimeout returns DefaultStepTimeoutSeconds as a time.Duration,
// falling back to 30s when unset.
func (c *Config) DefaultStepTimeout() time.Duration {
	if c.DefaultStepTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.DefaultStepTimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file is supplied: rule-based
// planning, routing disabled, caching off, a generous concurrency cap.
func Default() *Config {
	return &Config{
		DefaultPlanningMethod:     "systematic",
		MaxConcurrentWorkflows:    16,
		DefaultStepTimeoutSeconds: 30,
		EnableIntelligentRouting:  false,
		CacheEnabled:              false,
	}
}

// Load reads a YAML configuration file at path and decodes it onto a copy of
// Default(). Missing optional keys keep their Default() value.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes onto a copy of Default(). Exported separately
// from Load so callers (and tests) can supply in-memory configuration
// without touching the filesystem.
func Parse(raw []byte) (*Config, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("config: build decoder: %w", err)
	}
	if err := decoder.Decode(tree); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Validate checks the enumerated values and required pairings (spec §6.2:
// "absence forces rule-based fallback" is not an error, just a behavior).
func (c *Config) Validate() error {
	switch c.DefaultPlanningMethod {
	case "", "systematic", "learning", "hybrid", "auto":
	default:
		return fmt.Errorf("config: invalid default_planning_method %q", c.DefaultPlanningMethod)
	}
	if c.MaxConcurrentWorkflows < 0 {
		return fmt.Errorf("config: max_concurrent_workflows must be >= 0, got %d", c.MaxConcurrentWorkflows)
	}
	if c.DefaultStepTimeoutSeconds < 0 {
		return fmt.Errorf("config: default_step_timeout_seconds must be >= 0, got %d", c.DefaultStepTimeoutSeconds)
	}
	return nil
}
