package orchestrator

import (
	"context"
	"fmt"

	"github.com/redaptive/agentcore/internal/agents/document"
	"github.com/redaptive/agentcore/internal/agents/energymonitoring"
	"github.com/redaptive/agentcore/internal/agents/finance"
	"github.com/redaptive/agentcore/internal/agents/portfolio"
	"github.com/redaptive/agentcore/internal/agents/summarize"
	"github.com/redaptive/agentcore/internal/agents/system"
	"github.com/redaptive/agentcore/internal/cache"
	"github.com/redaptive/agentcore/internal/config"
	"github.com/redaptive/agentcore/internal/engine"
	"github.com/redaptive/agentcore/internal/intent"
	"github.com/redaptive/agentcore/internal/planner"
	"github.com/redaptive/agentcore/internal/planner/providers"
	"github.com/redaptive/agentcore/internal/planner/providers/anthropic"
	"github.com/redaptive/agentcore/internal/planner/providers/openai"
	"github.com/redaptive/agentcore/internal/registry"
	"github.com/redaptive/agentcore/internal/telemetry"
)

// Deps lets callers override the ambient stack (logging/metrics/tracing)
// and the external endpoints domain agents depend on. All fields are
// optional; a zero value Deps builds a fully in-process, dependency-free
// system (energy-monitoring starts Degraded; portfolio-intelligence stays
// Ready without its opportunity cache; no plan cache is used).
type Deps struct {
	Logger             telemetry.Logger
	Metrics            telemetry.Metrics
	Tracer             telemetry.Tracer
	EnergyMonitorDSN   string // postgres DSN for energy-monitoring (spec §4.2)
	PortfolioRedisAddr string // redis addr for portfolio-intelligence's opportunity cache
	CacheRedisAddr     string // redis addr for the optional plan cache (config §6.2 cache_enabled)
}

// Build wires the Agent Registry, Execution Engine, Intent Matcher, Planner
// family, and optional Plan cache into a ready-to-use Processor, selecting
// among the Rule/Model/Hybrid/Adaptive planners per cfg (spec §6.2
// default_planning_method, enable_intelligent_routing). It performs no
// domain logic beyond composition, matching the Request Processor's
// boundary (spec §4.6).
//
// Grounded on interactive_cli.py's process_user_request, which builds an
// OrchestrationEngine, registers AGENT_REGISTRY's full agent set, and
// constructs a KeywordMatcher/DynamicPlanner pair the same way.
func Build(ctx context.Context, cfg *config.Config, deps Deps) (*Processor, func(context.Context), error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("orchestrator: invalid config: %w", err)
	}

	reg := registry.New()
	if err := reg.Register(system.Name, system.Factory); err != nil {
		return nil, nil, err
	}
	if err := reg.Register(finance.Name, finance.Factory, "finance"); err != nil {
		return nil, nil, err
	}
	if err := reg.Register(energymonitoring.Name, energymonitoring.Factory(deps.EnergyMonitorDSN), "energy"); err != nil {
		return nil, nil, err
	}
	if err := reg.Register(portfolio.Name, portfolio.Factory(deps.PortfolioRedisAddr), "energy", "portfolio"); err != nil {
		return nil, nil, err
	}
	if err := reg.Register(document.Name, document.Factory, "document"); err != nil {
		return nil, nil, err
	}
	if err := reg.Register(summarize.Name, summarize.Factory, "document"); err != nil {
		return nil, nil, err
	}

	eng := engine.New(reg, engine.Options{
		Logger:             deps.Logger,
		Metrics:            deps.Metrics,
		Tracer:             deps.Tracer,
		DefaultStepTimeout: cfg.DefaultStepTimeout(),
		MaxConcurrent:      cfg.MaxConcurrentWorkflows,
	})

	matcher := intent.NewKeywordMatcher(cfg.IntentKeywords)
	plan := buildPlanner(cfg)

	var planCache *cache.PlanCache
	closeCache := func(context.Context) {}
	if cfg.CacheEnabled && deps.CacheRedisAddr != "" {
		if client, err := cache.Connect(ctx, deps.CacheRedisAddr); err == nil {
			planCache = cache.NewPlanCache(client, 0)
			closeCache = func(context.Context) { _ = planCache.Close() }
		}
	}

	proc := New(eng, matcher, plan, reg.List(), planCache)
	shutdown := func(shutdownCtx context.Context) {
		eng.Shutdown(shutdownCtx)
		closeCache(shutdownCtx)
	}
	return proc, shutdown, nil
}

// buildPlanner selects among the Rule/Model/Hybrid/Adaptive family per
// cfg.DefaultPlanningMethod and cfg.EnableIntelligentRouting (spec §6.2).
// A model-backed method without a usable provider falls back to the Rule
// Planner, matching ModelPlanner's own fallback behavior at the call level.
func buildPlanner(cfg *config.Config) planner.Planner {
	counter := newSequencer()
	rule := planner.NewRulePlanner(counter)
	rule.ApplyConfig(cfg)

	model := planner.NewModelPlanner(buildModelClient(cfg), rule)

	switch cfg.DefaultPlanningMethod {
	case "learning":
		return model
	case "hybrid":
		return planner.NewHybridPlanner(model, planner.MethodLearning, rule, planner.MethodRuleBased)
	case "auto":
		return planner.NewAdaptivePlanner(planner.AdaptiveAuto, rule, model)
	default:
		if cfg.EnableIntelligentRouting {
			return planner.NewAdaptivePlanner(planner.AdaptiveSystematic, rule, model)
		}
		return rule
	}
}

// buildModelClient constructs a rate-limited ModelClient for cfg's
// configured provider, or nil if no provider/key is configured (in which
// case ModelPlanner itself degrades gracefully to its rule-based fallback).
func buildModelClient(cfg *config.Config) planner.ModelClient {
	if cfg.ModelAPIKey == "" {
		return nil
	}
	var client planner.ModelClient
	switch cfg.ModelProvider {
	case "anthropic":
		c, err := anthropic.NewFromAPIKey(cfg.ModelAPIKey, "claude-3-5-sonnet-20241022", 1024)
		if err != nil {
			return nil
		}
		client = c
	case "openai":
		c, err := openai.NewFromAPIKey(cfg.ModelAPIKey, "gpt-4o-mini")
		if err != nil {
			return nil
		}
		client = c
	default:
		return nil
	}
	return providers.NewRateLimitedClient(client, 2)
}

func newSequencer() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}
