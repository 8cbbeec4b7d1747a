// Package system implements the system agent: clock and out-of-scope
// reporting tools with no external dependency (spec §4.2 DOMAIN STACK table).
//
// Grounded on original_source/src/redaptive/agents/system_agent.py. The
// Python original depends on pytz for timezone handling; no example repo in
// the pack shows a timezone library distinct from the standard library, so
// this is the one agent left on stdlib `time`/`time/tzdata` (documented in
// DESIGN.md).
package system

import (
	"context"
	"time"

	_ "time/tzdata"

	"github.com/redaptive/agentcore/internal/agent"
)

// Name is the registry name this agent is installed under.
const Name = "system"

const defaultTimezone = "America/Denver"

// Agent reports the current time and flags out-of-scope requests. It has no
// external dependency and is always Ready after Init.
type Agent struct {
	*agent.Base
}

// New constructs an uninitialized Agent.
func New() *Agent {
	return &Agent{Base: agent.NewBase(Name)}
}

// Factory is an agent.Factory suitable for registry.Register.
func Factory(ctx context.Context) (agent.Instance, error) {
	a := New()
	if err := a.Init(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Init registers this agent's tools and transitions to Ready.
func (a *Agent) Init(context.Context) error {
	a.Register(agent.ToolDescriptor{
		Name:           "get_current_time",
		Description:    "Get current time in the given timezone (default America/Denver)",
		DependencyFree: true,
		Handler:        a.getCurrentTime,
	})
	a.Register(agent.ToolDescriptor{
		Name:           "scope_check",
		Description:    "Check whether a request falls outside system scope",
		DependencyFree: true,
		Handler:        a.scopeCheck,
	})
	a.SetState(agent.StateReady)
	return nil
}

func (a *Agent) getCurrentTime(_ context.Context, params map[string]any) (agent.Output, error) {
	tzName, _ := params["timezone"].(string)
	if tzName == "" {
		tzName = defaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
		tzName = "UTC"
	}
	now := time.Now().In(loc)
	tzAbbrev, _ := now.Zone()

	return agent.Output{
		"current_date":  now.Format("2006-01-02"),
		"current_time":  now.Format("15:04:05"),
		"timezone":      tzName,
		"full_datetime": now.Format(time.RFC3339),
		"day_of_week":   now.Format("Monday"),
		"analysis":      "Current date: " + now.Format("Monday, January 2, 2006") + " at " + now.Format("03:04 PM") + " " + tzAbbrev,
	}, nil
}

func (a *Agent) scopeCheck(_ context.Context, params map[string]any) (agent.Output, error) {
	out := agent.Output{
		"scope":              params["scope"],
		"system_domain":      params["system_domain"],
		"supported_topics":   params["supported_topics"],
		"unsupported_topics": params["unsupported_topics"],
		"recommendation":     params["recommendation"],
		"analysis":           "This request is outside the scope of the Redaptive Energy-as-a-Service platform.",
	}
	return out, nil
}
