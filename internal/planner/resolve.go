package planner

import (
	"strconv"

	"github.com/redaptive/agentcore/internal/agent"
)

// ResolveParameters substitutes every PlaceholderRef in params against
// results (step_{i+1} -> that step's recorded Output, per the engine's
// 1-based result keys). Literal values pass through unchanged. Resolution is
// fail-soft (spec §3): if the referenced step's result is missing, or the
// field is absent from it, the literal placeholder string is substituted in
// place of the reference rather than erroring.
func ResolveParameters(params map[string]any, results map[string]agent.Output) map[string]any {
	if params == nil {
		return nil
	}
	resolved := make(map[string]any, len(params))
	for k, v := range params {
		resolved[k] = resolveValue(v, results)
	}
	return resolved
}

func resolveValue(v any, results map[string]agent.Output) any {
	switch val := v.(type) {
	case PlaceholderRef:
		return resolveRef(val, results)
	case string:
		if ref, ok := ParsePlaceholderRef(val); ok {
			return resolveRef(ref, results)
		}
		return val
	case map[string]any:
		nested := make(map[string]any, len(val))
		for k, nv := range val {
			nested[k] = resolveValue(nv, results)
		}
		return nested
	case []any:
		nested := make([]any, len(val))
		for i, nv := range val {
			nested[i] = resolveValue(nv, results)
		}
		return nested
	default:
		return v
	}
}

func resolveRef(ref PlaceholderRef, results map[string]agent.Output) any {
	key := "step_" + strconv.Itoa(ref.StepIndex+1)
	out, ok := results[key]
	if !ok {
		return ref.String()
	}
	field, ok := out[ref.Field]
	if !ok {
		return ref.String()
	}
	return field
}
