package agent

import (
	"context"
	"sync"

	"github.com/redaptive/agentcore/internal/toolerrors"
	"github.com/redaptive/agentcore/internal/tools"
)

// Base implements the mechanical parts of Instance (tool table storage,
// state transitions, schema-validated dispatch) so concrete agents only
// write Init and their tool handlers. This follows the design note "Registry
// as data, not types": agents compose Base rather than inheriting from a
// class hierarchy.
type Base struct {
	name string

	mu    sync.RWMutex
	state State
	table map[tools.Ident]ToolDescriptor
}

// NewBase constructs a Base in the Uninitialized state for the given agent
// name. Concrete agents call this from their constructor, then call
// Register for each tool during Init.
func NewBase(name string) *Base {
	return &Base{name: name, state: StateUninitialized, table: map[tools.Ident]ToolDescriptor{}}
}

// Name returns the agent's registry name.
func (b *Base) Name() string { return b.name }

// Register adds a tool to the table. Called during Init, before the agent
// transitions to Ready or Degraded.
func (b *Base) Register(d ToolDescriptor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table[d.Name] = d
}

// SetState transitions the agent to the given state.
func (b *Base) SetState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
}

// State returns the current lifecycle state.
func (b *Base) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Tools returns a snapshot of the tool table. The map is copied so callers
// cannot mutate the agent's internal table.
func (b *Base) Tools() map[tools.Ident]ToolDescriptor {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[tools.Ident]ToolDescriptor, len(b.table))
	for k, v := range b.table {
		out[k] = v
	}
	return out
}

// Invoke looks up the tool, validates params against its declared schema,
// and (when the agent is Degraded) rejects calls to non-dependency-free
// tools before calling the handler.
func (b *Base) Invoke(ctx context.Context, tool tools.Ident, params map[string]any) (Output, error) {
	b.mu.RLock()
	state := b.state
	d, ok := b.table[tool]
	b.mu.RUnlock()

	if state == StateClosed {
		return nil, toolerrors.New(toolerrors.KindDependencyUnavailable, "agent "+b.name+" is closed")
	}
	if !ok {
		return nil, toolerrors.New(toolerrors.KindUnknownTool, "tool "+string(tool)+" not found on agent "+b.name)
	}
	if state == StateDegraded && !d.DependencyFree {
		return nil, toolerrors.New(toolerrors.KindDependencyUnavailable,
			"tool "+string(tool)+" requires a dependency unavailable on agent "+b.name)
	}
	if d.Schema != nil {
		if issues := d.Schema.Validate(params); len(issues) > 0 {
			return nil, toolerrors.New(toolerrors.KindInvalidArgument, invalidArgumentMessage(tool, issues))
		}
	}
	if d.Handler == nil {
		return nil, toolerrors.New(toolerrors.KindUnknownTool, "tool "+string(tool)+" has no handler")
	}
	return d.Handler(ctx, params)
}

func invalidArgumentMessage(tool tools.Ident, issues []tools.FieldIssue) string {
	msg := "invalid arguments for tool " + string(tool) + ":"
	for _, iss := range issues {
		msg += " " + iss.Field + "=" + iss.Constraint + ";"
	}
	return msg
}
