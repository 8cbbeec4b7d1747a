package planner

import (
	"context"
	"encoding/json"
	"fmt"
)

// ModelClient abstracts a single-shot generation call to an external model
// provider (spec §4.4.2). Concrete adapters live under planner/providers.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// wirePlan is the JSON shape a model response must conform to (spec
// §4.4.2). Field names match the snake_case wire convention used
// throughout spec §6.1.
type wirePlan struct {
	WorkflowID     string          `json:"workflow_id"`
	PlanningMethod string          `json:"planning_method"`
	PlanningReason string          `json:"planning_reason"`
	Steps          []wirePlanStep  `json:"steps"`
}

type wirePlanStep struct {
	StepIndex  int            `json:"step_index"`
	Agent      string         `json:"agent"`
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

// ModelPlanner consults an external model for plans and falls back to a
// RulePlanner whenever the model call fails or its output doesn't validate
// (spec §4.4.2). Grounded on planners/llm_planner.py's create_workflow.
type ModelPlanner struct {
	client   ModelClient
	fallback *RulePlanner
}

// NewModelPlanner builds a ModelPlanner. fallback must not be nil; it is
// invoked whenever client is nil, errors, or returns invalid output.
func NewModelPlanner(client ModelClient, fallback *RulePlanner) *ModelPlanner {
	return &ModelPlanner{client: client, fallback: fallback}
}

func (p *ModelPlanner) Plan(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error) {
	if p.client == nil {
		plan, err := p.fallback.Plan(requestText, match, availableAgents)
		plan.PlanningReason = "no model client configured; " + plan.PlanningReason
		return plan, err
	}

	raw, err := p.client.Generate(context.Background(), buildPrompt(requestText, availableAgents))
	if err != nil {
		return p.fallbackWithReason(requestText, match, availableAgents,
			fmt.Sprintf("model call failed (%s), fallback to rule-based", err.Error()))
	}

	plan, ok := parseWirePlan(raw, availableAgents)
	if !ok {
		return p.fallbackWithReason(requestText, match, availableAgents,
			"model response failed validation, fallback to rule-based")
	}
	plan.PlanningMethod = MethodLearning
	if plan.PlanningReason == "" {
		plan.PlanningReason = "model-generated workflow plan"
	}
	return plan, nil
}

func (p *ModelPlanner) fallbackWithReason(requestText string, match IntentMatch, availableAgents []string, reason string) (WorkflowPlan, error) {
	plan, err := p.fallback.Plan(requestText, match, availableAgents)
	if err != nil {
		return plan, err
	}
	plan.PlanningMethod = MethodRuleBased
	plan.PlanningReason = reason + ": " + plan.PlanningReason
	return plan, nil
}

// parseWirePlan decodes raw as JSON conforming to WorkflowPlan and checks
// that workflow_id is present, steps is non-empty, and every step's
// (agent, tool) exists in availableAgents (spec §4.4.2's validation rule —
// tool existence is re-checked by the engine at dispatch time, so only
// agent membership is validated here).
func parseWirePlan(raw string, availableAgents []string) (WorkflowPlan, bool) {
	var w wirePlan
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return WorkflowPlan{}, false
	}
	if w.WorkflowID == "" || len(w.Steps) == 0 {
		return WorkflowPlan{}, false
	}
	steps := make([]PlanStep, 0, len(w.Steps))
	for i, s := range w.Steps {
		if s.Agent == "" || s.Tool == "" {
			return WorkflowPlan{}, false
		}
		if !contains(availableAgents, s.Agent) {
			return WorkflowPlan{}, false
		}
		steps = append(steps, PlanStep{
			StepIndex:  i,
			Agent:      s.Agent,
			Tool:       s.Tool,
			Parameters: resolvePlaceholderLiterals(s.Parameters),
		})
	}
	return WorkflowPlan{
		WorkflowID:     w.WorkflowID,
		PlanningReason: w.PlanningReason,
		Steps:          steps,
	}, true
}

// resolvePlaceholderLiterals converts any "step_{i}.{field}"-shaped string
// value into a PlaceholderRef so the engine's resolver treats it uniformly
// with Rule/Hybrid planner output, regardless of which planner produced it.
func resolvePlaceholderLiterals(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			if ref, ok := ParsePlaceholderRef(s); ok {
				out[k] = ref
				continue
			}
		}
		out[k] = v
	}
	return out
}

func buildPrompt(requestText string, availableAgents []string) string {
	return fmt.Sprintf(
		"Available agents: %v\nRequest: %s\nRespond with a JSON object matching the WorkflowPlan schema: {workflow_id, planning_reason, steps:[{agent, tool, parameters}]}.",
		availableAgents, requestText,
	)
}
