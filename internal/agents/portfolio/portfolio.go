// Package portfolio implements the portfolio-intelligence agent: portfolio
// rollups, optimization-opportunity ranking, sustainability reporting,
// industry benchmarking, and facility search (spec §4.2 DOMAIN STACK table).
//
// Grounded on original_source/src/redaptive/agents/energy/portfolio_intelligence.py.
// calculate_project_roi and forecast_energy_demand are registered there but
// fall outside this agent's scoped tool set and are deliberately not ported
// here (calculate_project_roi belongs to the energy-finance agent).
//
// identify_optimization_opportunities results are cached in Redis, following
// goadesign-goa-ai's registry/result_stream.go Set-with-TTL idiom, since
// opportunity ranking over a building list is expensive and portfolios are
// re-queried often during a single conversation.
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redaptive/agentcore/internal/agent"
)

// Name is the registry name this agent is installed under.
const Name = "portfolio-intelligence"

const defaultOpportunityCacheTTL = 10 * time.Minute

// technology opportunity catalog, ported from _calculate_opportunities in
// portfolio_intelligence.py: (name, cost-per-sqft, savings-percent, useful-life-years).
type opportunityTemplate struct {
	technology     string
	costPerSqft    float64
	savingsPercent float64
	usefulLife     float64
	carbonPerKWh   float64
}

var opportunityCatalog = []opportunityTemplate{
	{technology: "LED", costPerSqft: 2.50, savingsPercent: 0.35, usefulLife: 15, carbonPerKWh: 0.0004},
	{technology: "HVAC", costPerSqft: 8.00, savingsPercent: 0.25, usefulLife: 20, carbonPerKWh: 0.0004},
	{technology: "Controls", costPerSqft: 1.20, savingsPercent: 0.15, usefulLife: 10, carbonPerKWh: 0.0004},
	{technology: "Solar", costPerSqft: 15.00, savingsPercent: 0.40, usefulLife: 25, carbonPerKWh: 0.0004},
}

// Agent reports portfolio-level rollups, opportunity rankings, sustainability
// reports, benchmarks, and facility search. Only identify_optimization_opportunities
// depends on a configured cache; the agent stays Ready without one.
type Agent struct {
	*agent.Base
	redisAddr string
	cache     *redis.Client
}

// New constructs an uninitialized Agent. An empty redisAddr disables the
// opportunity cache; results are then computed uncached on every call.
func New(redisAddr string) *Agent {
	return &Agent{Base: agent.NewBase(Name), redisAddr: redisAddr}
}

// Factory builds an agent.Factory bound to redisAddr, suitable for
// registry.Register.
func Factory(redisAddr string) agent.Factory {
	return func(ctx context.Context) (agent.Instance, error) {
		a := New(redisAddr)
		if err := a.Init(ctx); err != nil {
			return nil, err
		}
		return a, nil
	}
}

// Init registers every tool unconditionally and opportunistically connects
// to Redis for the opportunity cache. A missing or unreachable Redis does not
// block startup: it only disables caching for identify_optimization_opportunities.
func (a *Agent) Init(ctx context.Context) error {
	a.Register(agent.ToolDescriptor{
		Name:           "analyze_portfolio_energy_usage",
		Description:    "Analyze energy consumption patterns across a real estate portfolio",
		DependencyFree: true,
		Handler:        a.analyzePortfolioEnergyUsage,
	})
	a.Register(agent.ToolDescriptor{
		Name:           "identify_optimization_opportunities",
		Description:    "Identify energy efficiency and renewable energy opportunities across buildings",
		DependencyFree: true,
		Handler:        a.identifyOptimizationOpportunities,
	})
	a.Register(agent.ToolDescriptor{
		Name:           "generate_sustainability_report",
		Description:    "Generate a comprehensive sustainability and ESG performance report",
		DependencyFree: true,
		Handler:        a.generateSustainabilityReport,
	})
	a.Register(agent.ToolDescriptor{
		Name:           "benchmark_portfolio_performance",
		Description:    "Benchmark portfolio energy performance against industry standards",
		DependencyFree: true,
		Handler:        a.benchmarkPortfolioPerformance,
	})
	a.Register(agent.ToolDescriptor{
		Name:           "search_facilities",
		Description:    "Search for energy facilities by location, company, or type",
		DependencyFree: true,
		Handler:        a.searchFacilities,
	})

	if a.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: a.redisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err == nil {
			a.cache = client
		}
	}

	a.SetState(agent.StateReady)
	return nil
}

// Close releases the cache client, if any.
func (a *Agent) Close(ctx context.Context) error {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	a.SetState(agent.StateClosed)
	return nil
}

func (a *Agent) analyzePortfolioEnergyUsage(_ context.Context, params map[string]any) (agent.Output, error) {
	portfolioID, _ := params["portfolio_id"].(string)
	dateRange := asMap(params["date_range"])

	// Simulated portfolio roll-up; a real deployment queries buildings/energy_usage
	// the way portfolio_intelligence.py's analyze_portfolio_energy_usage does.
	buildingBreakdown := []agent.Output{
		{"building_id": "bldg_101", "building_type": "office", "total_consumption": 420000.0, "consumption_per_sqft": 18.2},
		{"building_id": "bldg_204", "building_type": "warehouse", "total_consumption": 310000.0, "consumption_per_sqft": 9.6},
		{"building_id": "bldg_317", "building_type": "retail", "total_consumption": 175000.0, "consumption_per_sqft": 14.1},
	}

	var totalConsumption, totalCost float64
	for _, b := range buildingBreakdown {
		totalConsumption += b["total_consumption"].(float64)
	}
	totalCost = totalConsumption * 0.11

	return agent.Output{
		"status":       "success",
		"portfolio_id": portfolioID,
		"date_range":   dateRange,
		"portfolio_metrics": agent.Output{
			"total_consumption":         totalConsumption,
			"total_cost":                round2(totalCost),
			"buildings_analyzed":        len(buildingBreakdown),
			"avg_consumption_per_sqft":  14.0,
		},
		"building_breakdown": buildingBreakdown,
		"top_consumers":      []string{"bldg_101", "bldg_204"},
	}, nil
}

func (a *Agent) identifyOptimizationOpportunities(ctx context.Context, params map[string]any) (agent.Output, error) {
	buildingsList := asStringSlice(params["buildings_list"])
	minROI := asFloatOr(params["min_roi_threshold"], 1.2)
	maxPayback := asFloatOr(params["max_payback_years"], 7)

	cacheKey := fmt.Sprintf("portfolio:opportunities:%v:%.2f:%.2f", buildingsList, minROI, maxPayback)
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey).Result(); err == nil {
			var out agent.Output
			if json.Unmarshal([]byte(cached), &out) == nil {
				out["cache_hit"] = true
				return out, nil
			}
		}
	}

	type opportunity struct {
		buildingID        string
		technology        string
		estimatedCost     float64
		annualSavings     float64
		estimatedROI      float64
		paybackYears      float64
		carbonReduction   float64
	}

	var opportunities []opportunity
	// Simulated floor-area and baseline cost per building; a real deployment
	// joins against buildings/energy_usage as _calculate_opportunities does.
	for i, buildingID := range buildingsList {
		floorArea := 50000.0 + float64(i)*10000.0
		baselineCost := 400000.0 + float64(i)*50000.0

		for _, tmpl := range opportunityCatalog {
			cost := tmpl.costPerSqft * floorArea
			annualSavings := baselineCost * tmpl.savingsPercent
			if annualSavings <= 0 {
				continue
			}
			payback := cost / annualSavings
			roi := (annualSavings * tmpl.usefulLife) / cost
			if roi < minROI || payback > maxPayback {
				continue
			}
			opportunities = append(opportunities, opportunity{
				buildingID:      buildingID,
				technology:      tmpl.technology,
				estimatedCost:   round2(cost),
				annualSavings:   round2(annualSavings),
				estimatedROI:    round2(roi),
				paybackYears:    round2(payback),
				carbonReduction: round2(annualSavings * tmpl.carbonPerKWh * 1000),
			})
		}
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].estimatedROI > opportunities[j].estimatedROI
	})

	var totalInvestment, totalAnnualSavings, totalCarbon float64
	byType := map[string]int{}
	opportunityOutputs := make([]agent.Output, 0, len(opportunities))
	for _, o := range opportunities {
		totalInvestment += o.estimatedCost
		totalAnnualSavings += o.annualSavings
		totalCarbon += o.carbonReduction
		byType[o.technology]++
		opportunityOutputs = append(opportunityOutputs, agent.Output{
			"building_id":           o.buildingID,
			"technology":            o.technology,
			"estimated_cost":        o.estimatedCost,
			"annual_savings":        o.annualSavings,
			"estimated_roi":         o.estimatedROI,
			"payback_years":         o.paybackYears,
			"carbon_reduction_tons": o.carbonReduction,
		})
	}
	if len(opportunityOutputs) > 20 {
		opportunityOutputs = opportunityOutputs[:20]
	}

	var portfolioROI, paybackYears float64
	if totalInvestment > 0 {
		portfolioROI = totalAnnualSavings / totalInvestment
	}
	if totalAnnualSavings > 0 {
		paybackYears = totalInvestment / totalAnnualSavings
	}

	out := agent.Output{
		"buildings_analyzed":      len(buildingsList),
		"opportunities_identified": len(opportunities),
		"portfolio_impact": agent.Output{
			"total_investment":     round2(totalInvestment),
			"total_annual_savings": round2(totalAnnualSavings),
			"portfolio_roi":        round2(portfolioROI),
			"payback_years":        round2(paybackYears),
			"carbon_reduction_tons": round2(totalCarbon),
		},
		"opportunities":    opportunityOutputs,
		"summary_by_type":  byType,
	}

	if a.cache != nil {
		if encoded, err := json.Marshal(out); err == nil {
			a.cache.Set(ctx, cacheKey, encoded, defaultOpportunityCacheTTL)
		}
	}
	return out, nil
}

func (a *Agent) benchmarkPortfolioPerformance(_ context.Context, params map[string]any) (agent.Output, error) {
	benchmarkType, _ := params["benchmark_type"].(string)
	if benchmarkType == "" {
		benchmarkType = "industry"
	}

	return agent.Output{
		"benchmark_type": benchmarkType,
		"portfolio_performance": agent.Output{
			"energy_use_intensity": 85.2,
			"carbon_intensity":     45.3,
			"cost_per_sqft":        2.85,
		},
		"industry_median": agent.Output{
			"energy_use_intensity": 92.1,
			"carbon_intensity":     52.8,
			"cost_per_sqft":        3.21,
		},
		"percentile_ranking": agent.Output{
			"energy_efficiency": 73,
			"carbon_performance": 68,
			"cost_efficiency":    71,
		},
		"comparison_summary": "Portfolio performs 7% better than industry median on energy efficiency",
	}, nil
}

func (a *Agent) generateSustainabilityReport(ctx context.Context, params map[string]any) (agent.Output, error) {
	portfolioID, _ := params["portfolio_id"].(string)
	reportingPeriod := asMap(params["reporting_period"])
	reportType, _ := params["report_type"].(string)
	if reportType == "" {
		reportType = "executive"
	}
	includeCarbon := asBoolOr(params["include_carbon_footprint"], true)
	includeBenchmarking := asBoolOr(params["include_benchmarking"], true)

	energyAnalysis, err := a.analyzePortfolioEnergyUsage(ctx, map[string]any{
		"portfolio_id": portfolioID,
		"date_range":   reportingPeriod,
	})
	if err != nil {
		return nil, err
	}

	portfolioMetrics := energyAnalysis["portfolio_metrics"].(agent.Output)
	report := agent.Output{
		"report_metadata": agent.Output{
			"portfolio_id":    portfolioID,
			"report_type":     reportType,
			"reporting_period": reportingPeriod,
		},
		"executive_summary": agent.Output{
			"total_energy_consumption": portfolioMetrics["total_consumption"],
			"total_energy_cost":        portfolioMetrics["total_cost"],
			"energy_intensity":         portfolioMetrics["avg_consumption_per_sqft"],
			"portfolio_performance":    "Above Average",
		},
		"energy_performance": energyAnalysis,
	}

	if includeCarbon {
		totalConsumption := portfolioMetrics["total_consumption"].(float64)
		report["carbon_footprint"] = agent.Output{
			"total_emissions_tons": round2(totalConsumption * 0.0004),
			"emissions_intensity":  round2(totalConsumption * 0.0004 / 3),
		}
	}

	if includeBenchmarking {
		benchmark, err := a.benchmarkPortfolioPerformance(ctx, map[string]any{})
		if err != nil {
			return nil, err
		}
		report["benchmarking"] = benchmark
	}

	if reportType == "executive" || reportType == "detailed" {
		opportunities, err := a.identifyOptimizationOpportunities(ctx, map[string]any{
			"buildings_list": []string{"bldg_101", "bldg_204", "bldg_317"},
		})
		if err != nil {
			return nil, err
		}
		report["recommendations"] = opportunities["opportunities"]
	}

	report["status"] = "success"
	return report, nil
}

func (a *Agent) searchFacilities(_ context.Context, params map[string]any) (agent.Output, error) {
	location, _ := params["location"].(string)
	facilityType, _ := params["facility_type"].(string)
	minCapacity := asFloatOr(params["min_capacity"], 0)
	maxCapacity := asFloatOr(params["max_capacity"], 0)

	catalog := []agent.Output{
		{"facility_id": "bldg_101", "facility_name": "Denver Tech Center", "facility_type": "office", "capacity_sqft": 60000.0, "location": "Denver, CO", "energy_star_score": 82},
		{"facility_id": "bldg_204", "facility_name": "Aurora Distribution Hub", "facility_type": "warehouse", "capacity_sqft": 120000.0, "location": "Aurora, CO", "energy_star_score": 64},
		{"facility_id": "bldg_317", "facility_name": "Boulder Retail Plaza", "facility_type": "retail", "capacity_sqft": 35000.0, "location": "Boulder, CO", "energy_star_score": 77},
	}

	matches := make([]agent.Output, 0, len(catalog))
	for _, f := range catalog {
		if location != "" && !containsFold(f["location"].(string), location) {
			continue
		}
		if facilityType != "" && f["facility_type"].(string) != facilityType {
			continue
		}
		capacity := f["capacity_sqft"].(float64)
		if minCapacity > 0 && capacity < minCapacity {
			continue
		}
		if maxCapacity > 0 && capacity > maxCapacity {
			continue
		}
		matches = append(matches, f)
	}

	return agent.Output{
		"search_criteria": agent.Output{
			"location":      location,
			"facility_type": facilityType,
			"min_capacity":  minCapacity,
			"max_capacity":  maxCapacity,
		},
		"facilities_found": len(matches),
		"facilities":       matches,
	}, nil
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	lower := func(rs []rune) []rune {
		out := make([]rune, len(rs))
		for i, r := range rs {
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			out[i] = r
		}
		return out
	}
	h, n = lower(h), lower(n)
	if len(n) == 0 {
		return true
	}
	for i := 0; i+len(n) <= len(h); i++ {
		if string(h[i:i+len(n)]) == string(n) {
			return true
		}
	}
	return false
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func asFloatOr(v any, def float64) float64 {
	switch vv := v.(type) {
	case float64:
		return vv
	case int:
		return float64(vv)
	default:
		return def
	}
}

func asBoolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
