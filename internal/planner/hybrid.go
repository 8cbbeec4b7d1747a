package planner

// HybridPlanner tries a primary planner and falls back to the other on
// invalid output or error (spec §4.4.3). Grounded on
// planners/hybrid_planner.py's create_workflow, generalized from a fixed
// learning/rule pair to any (primary, fallback) pair of Planners so Adaptive
// can reuse it.
type HybridPlanner struct {
	primary        Planner
	fallback       Planner
	primaryMethod  Method
	fallbackMethod Method
}

// NewHybridPlanner builds a HybridPlanner. primary is tried first; when it
// succeeds with at least one step its result's planning_method is set to
// primaryMethod. Otherwise (error or empty plan) fallback is tried and its
// planning_method set to fallbackMethod.
func NewHybridPlanner(primary Planner, primaryMethod Method, fallback Planner, fallbackMethod Method) *HybridPlanner {
	return &HybridPlanner{primary: primary, fallback: fallback, primaryMethod: primaryMethod, fallbackMethod: fallbackMethod}
}

func (p *HybridPlanner) Plan(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error) {
	plan, err := p.primary.Plan(requestText, match, availableAgents)
	if err == nil && len(plan.Steps) > 0 {
		plan.PlanningMethod = p.primaryMethod
		plan.PlanningReason = "primary planner used successfully. " + plan.PlanningReason
		return plan, nil
	}

	reason := "primary planner result invalid, falling back"
	if err != nil {
		reason = "primary planner failed (" + err.Error() + "), falling back"
	}

	fb, fbErr := p.fallback.Plan(requestText, match, availableAgents)
	if fbErr != nil {
		return fb, fbErr
	}
	fb.PlanningMethod = p.fallbackMethod
	fb.PlanningReason = reason + ". " + fb.PlanningReason
	return fb, nil
}
