// Package toolerrors provides the structured error taxonomy used across the
// orchestration core: agent registry, tool invocation, planning, and workflow
// execution all return *ToolError so callers can inspect Kind without parsing
// free-form strings. ToolError preserves error chains and supports
// errors.Is/As while remaining a plain comparable-by-message value.
package toolerrors

import (
	"errors"
	"fmt"
)

// Kind is the closed taxonomy of error conditions a component can raise, per
// the error handling design (spec §7).
type Kind string

const (
	// KindUnknownAgent means a plan referenced an agent not in the
	// initialized set.
	KindUnknownAgent Kind = "unknown_agent"
	// KindUnknownTool means a plan referenced a tool not in the agent's
	// tool table.
	KindUnknownTool Kind = "unknown_tool"
	// KindInvalidArgument means a parameter failed the tool's declared
	// schema.
	KindInvalidArgument Kind = "invalid_argument"
	// KindDependencyUnavailable means an agent's external dependency (DB,
	// model API) is missing.
	KindDependencyUnavailable Kind = "dependency_unavailable"
	// KindToolFailure means the handler ran and returned an error.
	KindToolFailure Kind = "tool_failure"
	// KindDeadlineExceeded means a step or workflow deadline elapsed.
	KindDeadlineExceeded Kind = "deadline_exceeded"
	// KindCancelled means the caller cancelled the workflow.
	KindCancelled Kind = "cancelled"
	// KindPlanInvalid means the model planner returned unparseable or
	// ill-formed JSON.
	KindPlanInvalid Kind = "plan_invalid"
	// KindConfigError means agent construction failed due to
	// configuration.
	KindConfigError Kind = "config_error"
	// KindDuplicateAgent means a registry name collision with a
	// different factory.
	KindDuplicateAgent Kind = "duplicate_agent"
)

// ToolError represents a structured failure that preserves message, kind, and
// causal context while still implementing the standard error interface.
// Errors may be nested via Cause to retain diagnostics across retries.
type ToolError struct {
	// Kind classifies the failure per the closed taxonomy above. May be
	// empty for errors that predate kind classification (e.g. wrapped
	// arbitrary errors); callers should not assume it is always set.
	Kind Kind
	// Message is the human-readable summary of the failure.
	Message string
	// Cause links to the underlying error, enabling error chains with
	// errors.Is/As.
	Cause *ToolError
}

// New constructs a ToolError with the provided kind and message.
func New(kind Kind, message string) *ToolError {
	if message == "" {
		message = string(kind)
	}
	return &ToolError{Kind: kind, Message: message}
}

// NewWithCause constructs a ToolError of the given kind that wraps an
// underlying error. The cause is converted into a ToolError chain so kind
// metadata survives while still supporting errors.Is/As through Unwrap.
func NewWithCause(kind Kind, message string, cause error) *ToolError {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &ToolError{Kind: kind, Message: message, Cause: FromError(cause)}
}

// FromError converts an arbitrary error into a ToolError chain, preserving an
// existing ToolError's kind if err already is (or wraps) one.
func FromError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{Message: err.Error(), Cause: FromError(errors.Unwrap(err))}
}

// Errorf formats according to a format specifier and returns the result as an
// untyped ToolError (Kind left empty; use New for a classified error).
func Errorf(format string, args ...any) *ToolError {
	return New("", fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the underlying error to support errors.Is/As.
func (e *ToolError) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is a *ToolError with the same Kind, allowing
// errors.Is(err, toolerrors.New(KindUnknownAgent, "")) style checks.
func (e *ToolError) Is(target error) bool {
	var te *ToolError
	if !errors.As(target, &te) {
		return false
	}
	if te.Kind == "" {
		return false
	}
	return e.Kind == te.Kind
}
