// Package planner implements the Planner family (spec §4.4): Rule, Model,
// Hybrid, and Adaptive variants, all producing a WorkflowPlan from request
// text, an intent.Match, and the set of currently available agent names.
//
// Grounded on planners/dynamic_planner.py (routing table, entity extraction,
// defaults), planners/llm_planner.py (model-backed planning with fallback),
// planners/hybrid_planner.py (primary/fallback composition), and
// planners/adaptive_planner.py (method override detection).
package planner

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Method names a planning strategy (spec §3: WorkflowPlan.planning_method).
type Method string

const (
	MethodRuleBased Method = "rule_based"
	MethodLearning  Method = "learning_based"
	MethodHybrid    Method = "hybrid"
	MethodAuto      Method = "auto"
)

// PlaceholderRef is a reference to a field produced by an earlier step,
// resolved against that step's output (spec §3). Planners construct it as a
// tagged value distinct from a literal string; the resolver also treats a
// string parameter of the form "step_1.foo" as a reference, so both forms
// resolve the same way.
//
// StepIndex is 0-based, matching PlanStep.StepIndex of the producing step.
// Its textual form (String/ParsePlaceholderRef) is 1-based ("step_1" refers
// to StepIndex 0), matching the engine's result-key convention
// (step_{index+1}) so a string a model emits for "the first step" round-trips
// against the same key the resolver looks up.
type PlaceholderRef struct {
	StepIndex int
	Field     string
}

// String renders the canonical step_{n}.{field} textual form (n = 1-based
// step number), used both as the fail-soft fallback value and for
// (de)serializing Model Planner output.
func (p PlaceholderRef) String() string {
	return "step_" + strconv.Itoa(p.StepIndex+1) + "." + p.Field
}

// MarshalJSON encodes the reference in its textual form, so a plan that
// round-trips through JSON (e.g. the plan cache) still resolves it.
func (p PlaceholderRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// ParsePlaceholderRef parses "step_{n}.{field}" (n = 1-based step number)
// into a PlaceholderRef. ok is false if s does not match that shape, or n is
// not a positive integer, in which case s should be treated as a literal
// value.
func ParsePlaceholderRef(s string) (ref PlaceholderRef, ok bool) {
	if !strings.HasPrefix(s, "step_") {
		return PlaceholderRef{}, false
	}
	rest := s[len("step_"):]
	dot := strings.IndexByte(rest, '.')
	if dot <= 0 {
		return PlaceholderRef{}, false
	}
	idxStr, field := rest[:dot], rest[dot+1:]
	if field == "" {
		return PlaceholderRef{}, false
	}
	n, err := strconv.Atoi(idxStr)
	if err != nil || n < 1 {
		return PlaceholderRef{}, false
	}
	return PlaceholderRef{StepIndex: n - 1, Field: field}, true
}

// PlanStep is one dispatch instruction within a WorkflowPlan (spec §3).
type PlanStep struct {
	StepIndex  int
	Agent      string
	Tool       string
	Parameters map[string]any
}

// WorkflowPlan is the planner's output (spec §3).
type WorkflowPlan struct {
	WorkflowID     string
	PlanningMethod Method
	PlanningReason string
	Steps          []PlanStep
}

// Planner produces a WorkflowPlan for a request (spec §4.4).
type Planner interface {
	Plan(requestText string, match IntentMatch, availableAgents []string) (WorkflowPlan, error)
}

// IntentMatch mirrors intent.Match without importing the intent package
// directly, keeping planner decoupled from the specific matcher
// implementation (Rule/Model/Hybrid/Adaptive planners only need the fields,
// not the Matcher interface).
type IntentMatch struct {
	Intent     string
	Confidence float64
	Reason     string
	AllMatches map[string]float64
}

// NoAgentsWorkflowID is the sentinel workflow_id used when no agents are
// available to plan against (spec §4.4.1).
const NoAgentsWorkflowID = "no_agents_workflow"

// noAgentsPlan builds the guard-clause plan shared by every planner variant
// when availableAgents is empty.
func noAgentsPlan() WorkflowPlan {
	return WorkflowPlan{
		WorkflowID:     NoAgentsWorkflowID,
		PlanningMethod: MethodRuleBased,
		PlanningReason: "no agents are currently available to plan against",
		Steps:          nil,
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
