package planner

import (
	"regexp"
	"strings"
)

// AdaptiveMethod is the explicit/detected method selector accepted by
// AdaptivePlanner (spec §4.4.4), distinct from the WorkflowPlan.Method
// recorded on output (e.g. "systematic" selects the Rule Planner but the
// resulting plan still records planning_method="rule_based").
type AdaptiveMethod string

const (
	AdaptiveSystematic AdaptiveMethod = "systematic"
	AdaptiveLearning   AdaptiveMethod = "learning"
	AdaptiveHybrid     AdaptiveMethod = "hybrid"
	AdaptiveAuto       AdaptiveMethod = "auto"
)

// methodKeywords is carried over verbatim from adaptive_planner.py's
// method_keywords table, used to detect an implicit method override from
// the request text itself.
var methodKeywords = map[AdaptiveMethod][]string{
	AdaptiveSystematic: {"systematic", "rule-based", "rules", "structured", "deterministic"},
	AdaptiveLearning:   {"learning", "ai", "intelligent", "smart", "adaptive", "dynamic"},
	AdaptiveHybrid:     {"hybrid", "combined", "both", "mixed", "flexible"},
	AdaptiveAuto:       {"auto", "automatic", "best", "optimal", "smart"},
}

// methodOrder fixes iteration order over methodKeywords so detection is
// deterministic (Go map iteration is randomized).
var methodOrder = []AdaptiveMethod{AdaptiveSystematic, AdaptiveLearning, AdaptiveHybrid, AdaptiveAuto}

var useMethodRe = regexp.MustCompile(`use\s+(systematic|rule-based|learning|ai|hybrid)`)

// AdaptivePlanner accepts an explicit method override or detects one from
// the request text, then delegates to the Rule, Model, or Hybrid planner
// accordingly (spec §4.4.4). Grounded on planners/adaptive_planner.py.
type AdaptivePlanner struct {
	defaultMethod AdaptiveMethod
	systematic    *RulePlanner
	learning      *ModelPlanner
	hybrid        *HybridPlanner
}

// NewAdaptivePlanner builds an AdaptivePlanner. defaultMethod is used when
// no explicit override is supplied and none is detected in the request text.
func NewAdaptivePlanner(defaultMethod AdaptiveMethod, systematic *RulePlanner, learning *ModelPlanner) *AdaptivePlanner {
	return &AdaptivePlanner{
		defaultMethod: defaultMethod,
		systematic:    systematic,
		learning:      learning,
		hybrid:        NewHybridPlanner(learning, MethodLearning, systematic, MethodRuleBased),
	}
}

// PlanWithMethod is the full entry point (request, match, agents, explicit
// method override). Plan (to satisfy the Planner interface) calls this with
// an empty override, i.e. pure auto-detection.
func (p *AdaptivePlanner) PlanWithMethod(requestText string, match IntentMatch, availableAgents []string, explicitMethod AdaptiveMethod) (WorkflowPlan, error) {
	method := p.determineMethod(requestText, explicitMethod)

	switch method {
	case AdaptiveSystematic:
		plan, err := p.systematic.Plan(requestText, match, availableAgents)
		if err != nil {
			return plan, err
		}
		plan.PlanningMethod = MethodRuleBased
		plan.PlanningReason = "systematic planning used. " + plan.PlanningReason
		return plan, nil

	case AdaptiveLearning:
		plan, err := p.learning.Plan(requestText, match, availableAgents)
		if err != nil {
			return plan, err
		}
		plan.PlanningReason = "learning-based planning used. " + plan.PlanningReason
		return plan, nil

	case AdaptiveHybrid:
		plan, err := p.hybrid.Plan(requestText, match, availableAgents)
		if err != nil {
			return plan, err
		}
		plan.PlanningMethod = MethodHybrid
		plan.PlanningReason = "hybrid planning used. " + plan.PlanningReason
		return plan, nil

	case AdaptiveAuto:
		return p.planAuto(requestText, match, availableAgents)

	default:
		plan, err := p.systematic.Plan(requestText, match, availableAgents)
		plan.PlanningMethod = MethodRuleBased
		return plan, err
	}
}

// Plan implements Planner by auto-detecting the method from request text
// alone (no explicit override channel in the Planner interface).
func (p *AdaptivePlanner) Plan(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error) {
	return p.PlanWithMethod(requestText, match, availableAgents, "")
}

func (p *AdaptivePlanner) planAuto(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error) {
	plan, err := p.learning.Plan(requestText, match, availableAgents)
	if err == nil && len(plan.Steps) > 0 && plan.PlanningMethod == MethodLearning {
		plan.PlanningReason = "auto-selected learning-based planning. " + plan.PlanningReason
		return plan, nil
	}

	plan, err = p.systematic.Plan(requestText, match, availableAgents)
	if err != nil {
		return plan, err
	}
	plan.PlanningMethod = MethodAuto
	plan.PlanningReason = "auto-selected systematic planning (learning unavailable or invalid). " + plan.PlanningReason
	return plan, nil
}

// determineMethod mirrors adaptive_planner.py's _determine_planning_method:
// explicit override wins if valid, else a keyword match in the request
// text, else the "use <method>" regex, else the configured default.
func (p *AdaptivePlanner) determineMethod(requestText string, explicit AdaptiveMethod) AdaptiveMethod {
	if explicit != "" && isValidMethod(explicit) {
		return explicit
	}

	lower := strings.ToLower(requestText)
	for _, method := range methodOrder {
		for _, kw := range methodKeywords[method] {
			if strings.Contains(lower, kw) {
				return method
			}
		}
	}

	if m := useMethodRe.FindStringSubmatch(lower); m != nil {
		switch m[1] {
		case "rule-based":
			return AdaptiveSystematic
		case "ai":
			return AdaptiveLearning
		default:
			return AdaptiveMethod(m[1])
		}
	}

	if p.defaultMethod != "" {
		return p.defaultMethod
	}
	return AdaptiveSystematic
}

func isValidMethod(m AdaptiveMethod) bool {
	switch m {
	case AdaptiveSystematic, AdaptiveLearning, AdaptiveHybrid, AdaptiveAuto:
		return true
	default:
		return false
	}
}
