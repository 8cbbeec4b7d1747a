// Package orchestrator implements the Request Processor (spec §4.6): a
// thin, five-step coordinator over the Agent Registry, Intent Matcher,
// Planner family, and Execution Engine. It carries no domain logic of its
// own — only composition.
//
// Grounded on orchestration/engine.py's process_request and
// interactive_cli.py's process_user_request, which drive exactly this
// sequence: initialize agents, match intent, ask the planner for a
// workflow, execute it, and shape a response.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/cache"
	"github.com/redaptive/agentcore/internal/engine"
	"github.com/redaptive/agentcore/internal/intent"
	"github.com/redaptive/agentcore/internal/planner"
)

// StepOutcome is the shaped form of one engine.StepResult (spec §4.6 step
// 5: "per-step outcomes").
type StepOutcome struct {
	StepIndex int
	Agent     string
	Tool      string
	Success   bool
	Result    agent.Output
	Error     string
}

// Response is the Request Processor's shaped output (spec §4.6 step 5).
type Response struct {
	WorkflowID     string
	Intent         string
	IntentReason   string
	PlanningMethod planner.Method
	PlanningReason string
	StepCount      int
	Steps          []StepOutcome
	Summary        string
}

// Processor composes the registry-backed Engine, an Intent Matcher, and a
// Planner into the Request Processor's five-step sequence (spec §4.6).
type Processor struct {
	eng       *engine.Engine
	matcher   intent.Matcher
	planner   planner.Planner
	agentSet  []string
	planCache *cache.PlanCache
}

// New builds a Processor. agentNames names the agents kept initialized
// across calls (spec §4.6 step 1: "all registered agents... or a
// configured subset"). planCache may be nil, which disables memoization
// without otherwise changing behavior.
func New(eng *engine.Engine, matcher intent.Matcher, p planner.Planner, agentNames []string, planCache *cache.PlanCache) *Processor {
	return &Processor{eng: eng, matcher: matcher, planner: p, agentSet: append([]string(nil), agentNames...), planCache: planCache}
}

// Handle runs the Request Processor's five-step pipeline over requestText:
// ensure agents are live, match intent, plan, execute, shape (spec §4.6).
func (p *Processor) Handle(ctx context.Context, requestText string) (Response, error) {
	p.eng.InitializeAgents(ctx, p.agentSet)
	available := p.eng.AvailableAgentNames()

	match := p.matcher.Match(requestText)
	intentMatch := planner.IntentMatch{
		Intent:     match.Intent,
		Confidence: match.Confidence,
		Reason:     match.Reason,
		AllMatches: match.AllMatches,
	}

	workflowPlan, ok := p.planCache.Get(ctx, requestText, available)
	if !ok {
		var err error
		workflowPlan, err = p.planner.Plan(requestText, intentMatch, available)
		if err != nil {
			return Response{}, err
		}
		p.planCache.Set(ctx, requestText, available, workflowPlan)
	}

	result, err := p.eng.ExecuteWorkflow(ctx, workflowPlan.WorkflowID, workflowPlan)
	if err != nil {
		return Response{}, err
	}

	return shapeResponse(match, workflowPlan, result), nil
}

// ListAvailableAgents exposes the Execution Engine's observable surface
// (spec §6.4) without adding any processor-specific logic to it.
func (p *Processor) ListAvailableAgents() []engine.AgentInfo {
	return p.eng.ListAvailableAgents()
}

// GetWorkflowStatus exposes the Execution Engine's observable surface
// (spec §6.4) unchanged.
func (p *Processor) GetWorkflowStatus(workflowID string) engine.WorkflowExecution {
	return p.eng.GetWorkflowStatus(workflowID)
}

func shapeResponse(match intent.Match, plan planner.WorkflowPlan, result engine.WorkflowResult) Response {
	steps := make([]StepOutcome, len(plan.Steps))
	succeeded := 0
	for _, step := range plan.Steps {
		key := fmt.Sprintf("step_%d", step.StepIndex+1)
		outcome := StepOutcome{StepIndex: step.StepIndex, Agent: step.Agent, Tool: step.Tool}
		if sr, ok := result.Results[key]; ok {
			outcome.Result = sr.Result
			if sr.Error != nil {
				outcome.Error = sr.Error.Error()
			} else {
				outcome.Success = true
				succeeded++
			}
		}
		steps[step.StepIndex] = outcome
	}

	return Response{
		WorkflowID:     result.WorkflowID,
		Intent:         match.Intent,
		IntentReason:   match.Reason,
		PlanningMethod: plan.PlanningMethod,
		PlanningReason: plan.PlanningReason,
		StepCount:      len(plan.Steps),
		Steps:          steps,
		Summary:        summarize(match, result, succeeded, len(plan.Steps)),
	}
}

func summarize(match intent.Match, result engine.WorkflowResult, succeeded, total int) string {
	if result.Status == engine.StatusFailed {
		reason := "workflow execution failed"
		if result.Error != nil {
			reason = result.Error.Error()
		}
		return fmt.Sprintf("Processed %s request, but it failed after %d/%d steps: %s", match.Intent, succeeded, total, reason)
	}
	if total == 0 {
		return fmt.Sprintf("No agents were available to handle a %s request", match.Intent)
	}
	return fmt.Sprintf("Processed %s request: completed %d/%d steps", match.Intent, succeeded, total)
}

// String renders a human-readable rendition of a Response, in the spirit of
// interactive_cli.py's print_result.
func (r Response) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "workflow: %s (intent=%s, method=%s)\n", r.WorkflowID, r.Intent, r.PlanningMethod)
	fmt.Fprintf(&b, "steps executed: %d\n", r.StepCount)
	for _, s := range r.Steps {
		if s.Success {
			fmt.Fprintf(&b, "  [ok] %s.%s\n", s.Agent, s.Tool)
		} else {
			fmt.Fprintf(&b, "  [fail] %s.%s: %s\n", s.Agent, s.Tool, s.Error)
		}
	}
	fmt.Fprintf(&b, "summary: %s\n", r.Summary)
	return b.String()
}
