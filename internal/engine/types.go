// Package engine implements the Execution Engine (spec §4.5): it drives a
// planner.WorkflowPlan to completion with partial-failure semantics,
// resolving placeholder parameters against prior step outputs and recording
// a WorkflowExecution entry for status polling.
//
// Grounded on orchestration/engine.py for the control flow (sequential
// dispatch, steps_completed/status bookkeeping, fail-fast on error) and on
// runtime/agent/engine/inmem/engine.go for the Go concurrency idiom
// (mutex-guarded status table, a buffered channel as the semaphore bounding
// concurrent workflows). ExecuteWorkflow runs each workflow synchronously in
// the caller's goroutine and returns its result directly.
package engine

import (
	"time"

	"github.com/redaptive/agentcore/internal/agent"
)

// Status is the lifecycle status of a WorkflowExecution (spec §3).
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusNotFound  Status = "not_found"
)

// WorkflowExecution is the runtime entity tracked from first step dispatch
// until a terminal status is set (spec §3). The engine exclusively owns
// this entry; GetWorkflowStatus returns a point-in-time copy so readers
// never observe a torn update.
type WorkflowExecution struct {
	WorkflowID     string
	StartedAt      time.Time
	Status         Status
	StepsCompleted int
	TotalSteps     int
}

// StepResult records the outcome of one dispatched step (spec §3).
type StepResult struct {
	Agent  string
	Tool   string
	Result agent.Output
	Error  error
}

// WorkflowResult is the Execution Engine's output (spec §3). Results is
// keyed by "step_{index+1}"; ordering is recoverable from each PlanStep's
// StepIndex, not from map iteration.
type WorkflowResult struct {
	WorkflowID string
	Status     Status
	Results    map[string]StepResult
	Error      error
}

// AgentInfo is one entry of ListAvailableAgents' output (spec §4.5).
type AgentInfo struct {
	Name  string
	State agent.State
	Tools []string
}
