// Package agent defines the uniform agent and tool contract every domain
// agent implements (spec §3/§4.2): a small capability set {Init, Tools,
// Invoke, Close} plus the tool descriptor and wire-shape types the execution
// engine dispatches against.
package agent

import (
	"context"

	"github.com/redaptive/agentcore/internal/tools"
)

// State is the lifecycle state of an AgentInstance (spec §3).
type State string

const (
	// StateUninitialized is the state before Init has been called.
	StateUninitialized State = "uninitialized"
	// StateReady means Init succeeded and all declared tools are usable.
	StateReady State = "ready"
	// StateDegraded means a required dependency is unavailable but
	// dependency-free tools still work.
	StateDegraded State = "degraded"
	// StateClosed is terminal; reached via Close from any other state.
	StateClosed State = "closed"
)

type (
	// Handler executes a single tool invocation. Implementations may be
	// synchronous or asynchronous internally; the engine awaits the
	// returned error/result uniformly either way.
	Handler func(ctx context.Context, params map[string]any) (Output, error)

	// ToolDescriptor describes one operation an agent exposes.
	ToolDescriptor struct {
		// Name identifies the tool within its owning agent.
		Name tools.Ident
		// Description is free text for planners to key off.
		Description string
		// Schema describes named parameters with types, required flags,
		// and enumerations where applicable. Nil means no validation is
		// performed (any params accepted).
		Schema *tools.Schema
		// DependencyFree marks tools that do not require the agent's
		// external dependency (DB, API) to function, so they remain
		// callable while the agent is Degraded.
		DependencyFree bool
		// Handler is invoked by Instance.Invoke after schema validation.
		Handler Handler
	}

	// Output is a structured tool result. The engine accepts this shape
	// directly (equivalent to the wire "Direct" shape in spec §6.1); see
	// envelope.go for normalizing the Envelope wire shape into this type.
	Output map[string]any

	// Instance is the capability set every concrete agent implements
	// (spec §4.2). Domain agents (energy monitoring, portfolio
	// intelligence, finance, document processing, summarization) and the
	// system agent all satisfy this interface.
	Instance interface {
		// Name returns the agent's registry name.
		Name() string
		// Init constructs resources. On DependencyUnavailable the agent
		// may enter Degraded and still register dependency-free tools.
		Init(ctx context.Context) error
		// Tools returns an immutable view of the tool table.
		Tools() map[tools.Ident]ToolDescriptor
		// State returns the current lifecycle state.
		State() State
		// Invoke validates params against the tool's declared schema
		// (InvalidArgument on failure) and calls its handler.
		Invoke(ctx context.Context, tool tools.Ident, params map[string]any) (Output, error)
		// Close releases resources. Safe to call multiple times.
		Close(ctx context.Context) error
	}

	// Factory constructs a live Instance. May fail with ConfigError or
	// DependencyUnavailable (spec §3, AgentDescriptor.factory).
	Factory func(ctx context.Context) (Instance, error)
)
