package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateRange is a literal ISO start/end pair (spec §4.4.1: "Date ranges are a
// literal table of ISO start/end pairs").
type DateRange struct {
	Start string
	End   string
}

// dateRanges and companyPortfolioMap are carried over verbatim from
// planners/dynamic_planner.py's __init__.
var dateRanges = map[string]DateRange{
	"current_year":  {"2025-01-01", "2025-12-31"},
	"last_year":     {"2024-01-01", "2024-12-31"},
	"last_quarter":  {"2025-04-01", "2025-06-30"},
	"this_quarter":  {"2025-07-01", "2025-09-30"},
	"last_month":    {"2025-06-01", "2025-06-30"},
	"last_6_months": {"2025-01-01", "2025-06-30"},
}

// CompanyPortfolio is one entry of the company -> portfolio lookup table
// (spec §6.2 company_portfolio_map).
type CompanyPortfolio struct {
	Company   string
	Portfolio string
}

var companyPortfolioMap = []CompanyPortfolio{
	{"walmart", "PORTFOLIO-002"},
	{"microsoft", "PORTFOLIO-001"},
	{"jpmorgan", "PORTFOLIO-003"},
	{"jp", "PORTFOLIO-003"},
	{"general motors", "PORTFOLIO-004"},
	{"gm", "PORTFOLIO-004"},
	{"amazon", "PORTFOLIO-005"},
}

func (d DateRange) asParam() map[string]any {
	return map[string]any{"start_date": d.Start, "end_date": d.End}
}

var (
	buildingNumberRe = regexp.MustCompile(`building\s+(\d+)`)
	buildingWordRe   = regexp.MustCompile(`(\w+)\s+building`)
	portfolioIDRe    = regexp.MustCompile(`portfolio\s+([a-zA-Z0-9_-]+)`)
	investmentKRe    = regexp.MustCompile(`\$?(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:k|thousand)`)
	investmentPlainRe = regexp.MustCompile(`\$?(\d+(?:,\d+)*(?:\.\d+)?)`)
)

func extractBuildingID(lower string) string {
	if m := buildingNumberRe.FindStringSubmatch(lower); m != nil {
		return "building_" + m[1]
	}
	if m := buildingWordRe.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	return "default_building"
}

func (p *RulePlanner) detectTimePeriod(lower string) (string, DateRange) {
	switch {
	case strings.Contains(lower, "last month"):
		return "last_month", p.dateRanges["last_month"]
	case strings.Contains(lower, "this year"):
		return "current_year", p.dateRanges["current_year"]
	case strings.Contains(lower, "last 6 months"):
		return "last_6_months", p.dateRanges["last_6_months"]
	case strings.Contains(lower, "last quarter"):
		return "last_quarter", p.dateRanges["last_quarter"]
	case strings.Contains(lower, "this quarter"):
		return "this_quarter", p.dateRanges["this_quarter"]
	case strings.Contains(lower, "last year"):
		return "last_year", p.dateRanges["last_year"]
	default:
		return "current_year", p.dateRanges["current_year"]
	}
}

func (p *RulePlanner) detectCompanyPortfolio(lower string) (portfolioID, companyDetected string, found bool) {
	for _, cp := range p.companyPortfolioMap {
		if strings.Contains(lower, cp.Company) {
			return cp.Portfolio, cp.Company, true
		}
	}
	return "", "", false
}

// RulePlanner is the deterministic keyword+regex planner (spec §4.4.1).
// Grounded verbatim on planners/dynamic_planner.py's routing table, entity
// extraction regexes, and literal defaults.
type RulePlanner struct {
	nextSeq             func() int
	dateRanges          map[string]DateRange
	companyPortfolioMap []CompanyPortfolio
}

// NewRulePlanner builds a RulePlanner. seq, if non-nil, supplies a
// monotonic sequence number used only to disambiguate workflow IDs across
// repeated calls with identical routing (tests may pass nil to get the bare
// sentinel IDs). Entity tables default to the literal tables above; call
// ApplyEntityTables to override them from loaded configuration
// (spec §6.2 date_ranges, company_portfolio_map).
func NewRulePlanner(seq func() int) *RulePlanner {
	return &RulePlanner{nextSeq: seq, dateRanges: dateRanges, companyPortfolioMap: companyPortfolioMap}
}

// ApplyEntityTables overrides the planner's date-range and
// company-portfolio lookup tables. A nil or empty argument leaves the
// corresponding table unchanged.
func (p *RulePlanner) ApplyEntityTables(overrideDateRanges map[string]DateRange, overrideCompanyPortfolioMap []CompanyPortfolio) {
	if len(overrideDateRanges) > 0 {
		p.dateRanges = overrideDateRanges
	}
	if len(overrideCompanyPortfolioMap) > 0 {
		p.companyPortfolioMap = overrideCompanyPortfolioMap
	}
}

func (p *RulePlanner) workflowID(base string) string {
	if p.nextSeq == nil {
		return base
	}
	return fmt.Sprintf("%s_%d", base, p.nextSeq())
}

// Plan routes a request per the table in spec §4.4.1.
func (p *RulePlanner) Plan(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error) {
	if len(availableAgents) == 0 {
		return noAgentsPlan(), nil
	}

	lower := strings.ToLower(requestText)
	intent := match.Intent
	if intent == "" {
		intent = "unknown"
	}

	switch {
	case intent == "out_of_scope":
		return p.outOfScopePlan(intent, match), nil

	case intent == "energy_monitoring" && hasAny(lower, "date", "time", "when", "latest", "recent", "most recent"):
		return p.energyMonitoringLatestPlan(intent, match), nil

	case intent == "time":
		return p.timePlan(intent, match), nil

	case intent == "energy":
		return p.energyAnalysisPlan(intent, match, lower), nil

	case intent == "portfolio" && hasAny(lower, "performance", "metrics", "benchmark", "sustainability"):
		return p.portfolioPerformancePlan(intent, match, lower), nil

	case intent == "portfolio":
		return p.portfolioAnalysisPlan(intent, match, lower), nil

	case intent == "finance":
		return p.financePlan(intent, match, lower), nil

	case hasAny(lower, "document", "pdf", "report", "summarize"):
		return p.documentPlan(), nil

	default:
		return p.generalPlan(), nil
	}
}

func hasAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (p *RulePlanner) outOfScopePlan(intent string, match IntentMatch) WorkflowPlan {
	reason := fmt.Sprintf(
		"Out-of-scope query detected via keyword matcher. Intent: '%s', Confidence: %.2f. Reason: %s. System domain: Energy-as-a-Service (EaaS) portfolio management and optimization.",
		intent, match.Confidence, orNA(match.Reason),
	)
	return WorkflowPlan{
		WorkflowID:     p.workflowID("out_of_scope_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "system",
				Tool:      "scope_check",
				Parameters: map[string]any{
					"scope":            "out_of_bounds",
					"system_domain":    "Energy-as-a-Service (EaaS) portfolio management and optimization",
					"supported_topics": []string{"energy consumption", "portfolio analysis", "financial optimization", "document processing", "time/date"},
					"unsupported_topics": []string{
						"historical facts", "politics", "general knowledge", "weather", "sports", "cooking", "geography",
					},
					"recommendation": "Please ask questions related to energy portfolio management, building optimization, financial analysis, or document processing.",
				},
			},
		},
	}
}

func (p *RulePlanner) energyMonitoringLatestPlan(intent string, match IntentMatch) WorkflowPlan {
	reason := fmt.Sprintf(
		"Energy-specific date query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Routing to energy-monitoring agent for latest reading data.",
		intent, match.Confidence, match.AllMatches,
	)
	return WorkflowPlan{
		WorkflowID:     p.workflowID("energy_monitoring_date_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex:  0,
				Agent:      "energy-monitoring",
				Tool:       "get_latest_energy_reading",
				Parameters: map[string]any{"include_details": true},
			},
		},
	}
}

func (p *RulePlanner) timePlan(intent string, match IntentMatch) WorkflowPlan {
	reason := fmt.Sprintf(
		"General time/date query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Routing to system agent for current time information.",
		intent, match.Confidence, match.AllMatches,
	)
	return WorkflowPlan{
		WorkflowID:     p.workflowID("time_analysis_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex:  0,
				Agent:      "system",
				Tool:       "get_current_time",
				Parameters: map[string]any{"timezone": "America/Denver"},
			},
		},
	}
}

func (p *RulePlanner) energyAnalysisPlan(intent string, match IntentMatch, lower string) WorkflowPlan {
	buildingID := extractBuildingID(lower)
	periodName, timeRange := p.detectTimePeriod(lower)

	reason := fmt.Sprintf(
		"Energy analysis query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Building ID extracted: '%s'. Time period detected: '%s' (%s to %s). Routing to energy-monitoring agent for usage pattern analysis and portfolio-intelligence agent for optimization opportunities.",
		intent, match.Confidence, match.AllMatches, buildingID, periodName, timeRange.Start, timeRange.End,
	)

	return WorkflowPlan{
		WorkflowID:     p.workflowID("energy_analysis_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "energy-monitoring",
				Tool:      "analyze_usage_patterns",
				Parameters: map[string]any{
					"scope":      "building",
					"identifier": buildingID,
					"time_range": timeRange.asParam(),
				},
			},
			{
				StepIndex: 1,
				Agent:     "portfolio-intelligence",
				Tool:      "identify_optimization_opportunities",
				Parameters: map[string]any{
					"buildings_list":    []string{buildingID},
					"opportunity_types": []string{"LED", "HVAC", "Solar"},
					"min_roi_threshold": 1.2,
					"max_payback_years": 7,
				},
			},
		},
	}
}

func (p *RulePlanner) portfolioPerformancePlan(intent string, match IntentMatch, lower string) WorkflowPlan {
	portfolioID := "PORTFOLIO-002"
	companyDetected := "default"
	if id, company, ok := p.detectCompanyPortfolio(lower); ok {
		portfolioID, companyDetected = id, company
	}

	reason := fmt.Sprintf(
		"Portfolio performance query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Company detected: '%s' -> Portfolio ID: '%s'. Routing to portfolio-intelligence agent for comprehensive performance analysis including energy usage, benchmarking, and sustainability reporting.",
		intent, match.Confidence, match.AllMatches, companyDetected, portfolioID,
	)

	fullYear := p.dateRanges["current_year"].asParam()
	return WorkflowPlan{
		WorkflowID:     p.workflowID("portfolio_performance_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "portfolio-intelligence",
				Tool:      "analyze_portfolio_energy_usage",
				Parameters: map[string]any{
					"portfolio_id": portfolioID,
					"date_range":   fullYear,
				},
			},
			{
				StepIndex: 1,
				Agent:     "portfolio-intelligence",
				Tool:      "benchmark_portfolio_performance",
				Parameters: map[string]any{
					"portfolio_id":   portfolioID,
					"benchmark_type": "industry",
				},
			},
			{
				StepIndex: 2,
				Agent:     "portfolio-intelligence",
				Tool:      "generate_sustainability_report",
				Parameters: map[string]any{
					"portfolio_id":     portfolioID,
					"reporting_period": fullYear,
					"report_type":      "executive",
				},
			},
		},
	}
}

func (p *RulePlanner) portfolioAnalysisPlan(intent string, match IntentMatch, lower string) WorkflowPlan {
	var portfolioID, companyDetected string
	if id, company, ok := p.detectCompanyPortfolio(lower); ok {
		portfolioID, companyDetected = id, company
	} else if m := portfolioIDRe.FindStringSubmatch(lower); m != nil {
		portfolioID = strings.ToUpper(m[1])
		companyDetected = "explicit_portfolio_id"
	}
	if portfolioID == "" {
		portfolioID = "PORTFOLIO-002"
		companyDetected = "default_fallback"
	}

	periodName, timeRange := p.detectTimePeriod(lower)

	reason := fmt.Sprintf(
		"Portfolio analysis query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Company detection: '%s' -> Portfolio ID: '%s'. Time period detected: '%s' (%s to %s). Routing to portfolio-intelligence agent for energy usage analysis and benchmarking.",
		intent, match.Confidence, match.AllMatches, companyDetected, portfolioID, periodName, timeRange.Start, timeRange.End,
	)

	return WorkflowPlan{
		WorkflowID:     p.workflowID("portfolio_analysis_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "portfolio-intelligence",
				Tool:      "analyze_portfolio_energy_usage",
				Parameters: map[string]any{
					"portfolio_id": portfolioID,
					"date_range":   timeRange.asParam(),
				},
			},
			{
				StepIndex: 1,
				Agent:     "portfolio-intelligence",
				Tool:      "benchmark_portfolio_performance",
				Parameters: map[string]any{
					"portfolio_id":   portfolioID,
					"benchmark_type": "industry_comparison",
				},
			},
		},
	}
}

var projectTypeKeywords = []string{"led", "hvac", "solar", "storage", "controls"}

func detectProjectType(lower string) (projectType, found string) {
	for _, kw := range projectTypeKeywords {
		if strings.Contains(lower, kw) {
			if kw == "led" || kw == "hvac" {
				return strings.ToUpper(kw), kw
			}
			return strings.ToUpper(kw[:1]) + kw[1:], kw
		}
	}
	return "LED", ""
}

func detectInvestmentAmount(lower string) float64 {
	if m := investmentKRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return v * 1000
		}
	}
	if m := investmentPlainRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return v
		}
	}
	return 50000
}

func (p *RulePlanner) financePlan(intent string, match IntentMatch, lower string) WorkflowPlan {
	projectType, foundProjectType := detectProjectType(lower)
	buildingID := extractBuildingID(lower)
	investmentAmount := detectInvestmentAmount(lower)

	projectTypeLabel := foundProjectType
	if projectTypeLabel == "" {
		projectTypeLabel = "default LED"
	}

	reason := fmt.Sprintf(
		"Financial/ROI query detected via keyword matcher. Intent: '%s', Confidence: %.2f. All matches: %v. Project type detected: '%s'. Building ID extracted: '%s'. Investment amount extracted: $%s. Routing to energy-finance agent for ROI calculation and EaaS contract optimization.",
		intent, match.Confidence, match.AllMatches, projectTypeLabel, buildingID, formatUSD(investmentAmount),
	)

	return WorkflowPlan{
		WorkflowID:     p.workflowID("financial_analysis_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: reason,
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "energy-finance",
				Tool:      "calculate_project_roi",
				Parameters: map[string]any{
					"project_details": map[string]any{
						"project_name":     fmt.Sprintf("%s Retrofit for %s", projectType, buildingID),
						"technology_type":  projectType,
						"total_investment": investmentAmount,
						"installation_cost": investmentAmount * 0.2,
						"equipment_cost":    investmentAmount * 0.8,
						"project_lifetime":  15,
					},
					"energy_savings": map[string]any{
						"annual_kwh_savings":   investmentAmount * 0.1,
						"annual_gas_savings":   1000,
						"demand_reduction_kw":  50,
						"baseline_energy_cost": 75000,
					},
					"financial_parameters": map[string]any{
						"discount_rate":   0.08,
						"electricity_rate": 0.12,
						"gas_rate":         0.85,
						"inflation_rate":   0.025,
					},
				},
			},
			{
				StepIndex: 1,
				Agent:     "energy-finance",
				Tool:      "optimize_eaas_contract",
				Parameters: map[string]any{
					"contract_parameters": map[string]any{
						"contract_term":          10,
						"guaranteed_savings":     investmentAmount * 0.15,
						"base_year_consumption":  100000,
						"sharing_percentage":     0.7,
						"performance_threshold":  0.9,
					},
					"project_costs": map[string]any{
						"capital_cost":      investmentAmount,
						"operating_costs":   investmentAmount * 0.1,
						"maintenance_costs": investmentAmount * 0.06,
					},
					"optimization_objectives": []string{"maximize_npv", "minimize_risk"},
				},
			},
		},
	}
}

func (p *RulePlanner) documentPlan() WorkflowPlan {
	return WorkflowPlan{
		WorkflowID:     p.workflowID("document_processing_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: "Document processing cues detected in request. Routing to document-processing agent for text extraction, then summarize agent for condensation.",
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "document-processing",
				Tool:      "extract_text",
				Parameters: map[string]any{
					"document_type":   "utility_bill",
					"extraction_mode": "full_text",
				},
			},
			{
				StepIndex: 1,
				Agent:     "summarize",
				Tool:      "summarize_text",
				Parameters: map[string]any{
					"text":           PlaceholderRef{StepIndex: 0, Field: "full_text"},
					"summary_length": "medium",
					"focus_areas":    []string{"key_insights", "recommendations"},
				},
			},
		},
	}
}

func (p *RulePlanner) generalPlan() WorkflowPlan {
	return WorkflowPlan{
		WorkflowID:     p.workflowID("general_analysis_workflow"),
		PlanningMethod: MethodRuleBased,
		PlanningReason: "No specific intent matched; falling back to a generic facility search across the portfolio.",
		Steps: []PlanStep{
			{
				StepIndex: 0,
				Agent:     "portfolio-intelligence",
				Tool:      "search_facilities",
				Parameters: map[string]any{
					"location":     "all",
					"facility_type": nil,
					"min_capacity":  nil,
					"max_capacity":  nil,
				},
			},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v + 0.5)
	s := strconv.FormatInt(whole, 10)
	var out strings.Builder
	if neg {
		out.WriteByte('-')
	}
	n := len(s)
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
