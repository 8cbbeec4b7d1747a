package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/planner"
	"github.com/redaptive/agentcore/internal/registry"
	"github.com/redaptive/agentcore/internal/telemetry"
	"github.com/redaptive/agentcore/internal/toolerrors"
	"github.com/redaptive/agentcore/internal/tools"
)

// Engine drives WorkflowPlans to completion (spec §4.5). One Engine is
// shared across concurrent workflows; agent instances are shared too, and
// Invoke implementations are expected to be safe for concurrent calls.
type Engine struct {
	registry *registry.Registry
	logger   telemetry.Logger
	metrics  telemetry.Metrics
	tracer   telemetry.Tracer

	defaultStepTimeout time.Duration

	agentsMu sync.RWMutex
	agents   map[string]agent.Instance

	execMu sync.RWMutex
	execs  map[string]*WorkflowExecution

	sem chan struct{} // bounds concurrent ExecuteWorkflow calls
}

// Options configures an Engine.
type Options struct {
	Logger             telemetry.Logger
	Metrics            telemetry.Metrics
	Tracer             telemetry.Tracer
	DefaultStepTimeout time.Duration // spec §6.2: default_step_timeout_seconds
	MaxConcurrent      int           // spec §6.2: max_concurrent_workflows
}

// New builds an Engine bound to reg. Agent instantiation happens lazily via
// InitializeAgents.
func New(reg *registry.Registry, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = telemetry.NoopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NoopMetrics{}
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.NoopTracer{}
	}
	if opts.DefaultStepTimeout <= 0 {
		opts.DefaultStepTimeout = 30 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	return &Engine{
		registry:           reg,
		logger:             opts.Logger,
		metrics:            opts.Metrics,
		tracer:             opts.Tracer,
		defaultStepTimeout: opts.DefaultStepTimeout,
		agents:             make(map[string]agent.Instance),
		execs:              make(map[string]*WorkflowExecution),
		sem:                make(chan struct{}, opts.MaxConcurrent),
	}
}

// InitializeAgents constructs each named agent via the registry. Already
// initialized agents are reused. A single agent's construction failure is
// logged and skipped rather than aborting the whole call (spec §4.5).
// Returns true iff at least one agent ended up initialized.
func (e *Engine) InitializeAgents(ctx context.Context, names []string) bool {
	for _, name := range names {
		e.agentsMu.RLock()
		_, already := e.agents[name]
		e.agentsMu.RUnlock()
		if already {
			continue
		}

		factory, err := e.registry.Get(name)
		if err != nil {
			e.logger.Warn(ctx, "unknown agent", "agent", name, "error", err.Error())
			continue
		}
		inst, err := factory(ctx)
		if err != nil {
			e.logger.Error(ctx, "failed to initialize agent", "agent", name, "error", err.Error())
			continue
		}
		if err := inst.Init(ctx); err != nil {
			e.logger.Error(ctx, "agent init failed", "agent", name, "error", err.Error())
			continue
		}
		e.agentsMu.Lock()
		e.agents[name] = inst
		e.agentsMu.Unlock()
		e.logger.Info(ctx, "initialized agent", "agent", name)
	}

	e.agentsMu.RLock()
	defer e.agentsMu.RUnlock()
	return len(e.agents) > 0
}

// ListAvailableAgents returns name, state, and declared tools for every
// initialized agent (spec §4.5).
func (e *Engine) ListAvailableAgents() []AgentInfo {
	e.agentsMu.RLock()
	defer e.agentsMu.RUnlock()
	out := make([]AgentInfo, 0, len(e.agents))
	for name, inst := range e.agents {
		toolTable := inst.Tools()
		toolNames := make([]string, 0, len(toolTable))
		for t := range toolTable {
			toolNames = append(toolNames, string(t))
		}
		out = append(out, AgentInfo{Name: name, State: inst.State(), Tools: toolNames})
	}
	return out
}

// availableAgentNames returns the names of currently initialized agents, for
// passing to a Planner.
func (e *Engine) availableAgentNames() []string {
	e.agentsMu.RLock()
	defer e.agentsMu.RUnlock()
	names := make([]string, 0, len(e.agents))
	for name := range e.agents {
		names = append(names, name)
	}
	return names
}

// AvailableAgentNames is the exported form of availableAgentNames, used by
// the Request Processor to hand the Planner family its "currently available
// agent names" input (spec §4.6 step 3).
func (e *Engine) AvailableAgentNames() []string { return e.availableAgentNames() }

// GetWorkflowStatus returns a point-in-time snapshot of the named
// WorkflowExecution, or {status: not_found} when absent (spec §4.5).
func (e *Engine) GetWorkflowStatus(workflowID string) WorkflowExecution {
	e.execMu.RLock()
	defer e.execMu.RUnlock()
	exec, ok := e.execs[workflowID]
	if !ok {
		return WorkflowExecution{WorkflowID: workflowID, Status: StatusNotFound}
	}
	return *exec
}

// Shutdown closes every initialized agent and clears the execution table.
// Idempotent.
func (e *Engine) Shutdown(ctx context.Context) {
	e.agentsMu.Lock()
	for name, inst := range e.agents {
		if err := inst.Close(ctx); err != nil {
			e.logger.Error(ctx, "error shutting down agent", "agent", name, "error", err.Error())
		}
	}
	e.agents = make(map[string]agent.Instance)
	e.agentsMu.Unlock()

	e.execMu.Lock()
	e.execs = make(map[string]*WorkflowExecution)
	e.execMu.Unlock()
}

// ExecuteWorkflow runs plan to completion, honoring cooperative cancellation
// on ctx at step boundaries (spec §4.5). Bounded concurrency across
// workflows is enforced by acquiring a slot from e.sem before running; the
// call blocks (respecting ctx) while the engine is saturated.
func (e *Engine) ExecuteWorkflow(ctx context.Context, workflowID string, plan planner.WorkflowPlan) (WorkflowResult, error) {
	select {
	case e.sem <- struct{}{}:
	default:
		select {
		case e.sem <- struct{}{}:
		case <-ctx.Done():
			return WorkflowResult{}, toolerrors.New(toolerrors.KindCancelled, "workflow queue wait cancelled: "+workflowID)
		}
	}
	defer func() { <-e.sem }()

	exec := &WorkflowExecution{
		WorkflowID: workflowID,
		StartedAt:  time.Now(),
		Status:     StatusRunning,
		TotalSteps: len(plan.Steps),
	}
	e.execMu.Lock()
	e.execs[workflowID] = exec
	e.execMu.Unlock()

	results := make(map[string]StepResult, len(plan.Steps))
	stepOutputs := make(map[string]agent.Output, len(plan.Steps))

	for _, step := range plan.Steps {
		select {
		case <-ctx.Done():
			return e.finish(workflowID, exec, results, toolerrors.New(toolerrors.KindCancelled, "workflow cancelled before step "+fmt.Sprint(step.StepIndex)))
		default:
		}

		inst, err := e.lookupAgent(step.Agent)
		if err != nil {
			return e.finish(workflowID, exec, results, err)
		}

		resolvedParams := planner.ResolveParameters(step.Parameters, stepOutputs)

		// stepCtx times out on its own clock but does not inherit ctx's
		// cancellation: an in-flight invocation is allowed to finish and its
		// result is recorded before the workflow is marked Cancelled at the
		// next step boundary (spec §4.5), rather than being aborted mid-call.
		stepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.defaultStepTimeout)
		out, invokeErr := inst.Invoke(stepCtx, tools.Ident(step.Tool), resolvedParams)
		cancel()

		key := fmt.Sprintf("step_%d", step.StepIndex+1)
		results[key] = StepResult{Agent: step.Agent, Tool: step.Tool, Result: out, Error: invokeErr}

		if invokeErr != nil {
			e.logger.Error(ctx, "workflow step failed", "workflow_id", workflowID, "step", key, "error", invokeErr.Error())
			return e.finish(workflowID, exec, results, invokeErr)
		}

		normalized, _, normErr := agent.NormalizeOutput(out)
		if normErr == nil {
			stepOutputs[key] = normalized
		} else {
			stepOutputs[key] = out
		}

		e.execMu.Lock()
		exec.StepsCompleted = step.StepIndex + 1
		e.execMu.Unlock()

		e.logger.Info(ctx, "completed workflow step", "workflow_id", workflowID, "step", key)
	}

	return e.finish(workflowID, exec, results, nil)
}

func (e *Engine) lookupAgent(name string) (agent.Instance, error) {
	e.agentsMu.RLock()
	defer e.agentsMu.RUnlock()
	inst, ok := e.agents[name]
	if !ok {
		return nil, toolerrors.New(toolerrors.KindUnknownAgent, "agent not initialized: "+name)
	}
	return inst, nil
}

func (e *Engine) finish(workflowID string, exec *WorkflowExecution, results map[string]StepResult, err error) (WorkflowResult, error) {
	e.execMu.Lock()
	if err != nil {
		exec.Status = StatusFailed
	} else {
		exec.Status = StatusCompleted
	}
	e.execMu.Unlock()

	status := StatusCompleted
	if err != nil {
		status = StatusFailed
	}
	return WorkflowResult{WorkflowID: workflowID, Status: status, Results: results, Error: err}, nil
}
