// Package energymonitoring implements the energy-monitoring agent: latest
// meter reads and usage-pattern analysis (spec §4.2 DOMAIN STACK table).
//
// Grounded on original_source/src/redaptive/agents/energy/monitoring.py.
// get_latest_energy_reading is backed by github.com/jackc/pgx/v5/pgxpool,
// following compozy-compozy's engine/infra/postgres/store.go pool-setup
// idiom in reduced form: the pool is created from the DSN with pgxpool.New
// and pinged on Init; no pool size bounds are set. When no DSN
// is configured Init leaves the agent Degraded rather than failing outright,
// so the dependency-free analyze_usage_patterns tool still works.
package energymonitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/toolerrors"
)

// Name is the registry name this agent is installed under.
const Name = "energy-monitoring"

// Agent reports meter readings and usage patterns. Reading tools require a
// configured pool; pattern analysis does not.
type Agent struct {
	*agent.Base
	dsn  string
	pool *pgxpool.Pool
}

// New constructs an uninitialized Agent. An empty dsn means "no database
// configured": Init will leave the agent Degraded.
func New(dsn string) *Agent {
	return &Agent{Base: agent.NewBase(Name), dsn: dsn}
}

// Factory builds an agent.Factory bound to dsn, suitable for
// registry.Register.
func Factory(dsn string) agent.Factory {
	return func(ctx context.Context) (agent.Instance, error) {
		a := New(dsn)
		if err := a.Init(ctx); err != nil {
			return nil, err
		}
		return a, nil
	}
}

// Init connects the pgx pool when a DSN is configured. On missing DSN or
// connection failure the agent enters Degraded and registers only
// dependency-free tools (spec §4.2).
func (a *Agent) Init(ctx context.Context) error {
	a.Register(agent.ToolDescriptor{
		Name:           "analyze_usage_patterns",
		Description:    "Analyze energy usage patterns for optimization opportunities",
		DependencyFree: true,
		Handler:        a.analyzeUsagePatterns,
	})

	if a.dsn == "" {
		a.SetState(agent.StateDegraded)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	pool, err := pgxpool.New(pingCtx, a.dsn)
	if err != nil {
		a.SetState(agent.StateDegraded)
		return nil
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		a.SetState(agent.StateDegraded)
		return nil
	}
	a.pool = pool

	a.Register(agent.ToolDescriptor{
		Name:        "get_latest_energy_reading",
		Description: "Get the most recent energy usage reading from the database",
		Handler:     a.getLatestEnergyReading,
	})
	a.SetState(agent.StateReady)
	return nil
}

// Close releases the pool, if any.
func (a *Agent) Close(ctx context.Context) error {
	if a.pool != nil {
		a.pool.Close()
	}
	a.SetState(agent.StateClosed)
	return nil
}

func (a *Agent) getLatestEnergyReading(ctx context.Context, params map[string]any) (agent.Output, error) {
	if a.pool == nil {
		return nil, toolerrors.New(toolerrors.KindDependencyUnavailable, "energy-monitoring: no database configured")
	}
	meterID, _ := params["meter_id"].(string)

	var (
		usageID, meterIDOut, buildingID, energyType string
		readingDate                                 time.Time
		energyConsumption, demandKW, powerFactor     float64
	)

	const baseQuery = `
		SELECT usage_id, meter_id, building_id, reading_date, energy_type,
		       energy_consumption, demand_kw, power_factor
		FROM energy_usage
		%s
		ORDER BY reading_date DESC
		LIMIT 1`

	var row pgx.Row
	if meterID != "" {
		row = a.pool.QueryRow(ctx, fmt.Sprintf(baseQuery, "WHERE meter_id = $1"), meterID)
	} else {
		row = a.pool.QueryRow(ctx, fmt.Sprintf(baseQuery, ""))
	}

	if err := row.Scan(&usageID, &meterIDOut, &buildingID, &readingDate, &energyType, &energyConsumption, &demandKW, &powerFactor); err != nil {
		return agent.Output{
			"status":  "no_data",
			"message": "no energy readings found for meter " + orAll(meterID),
		}, nil
	}

	return agent.Output{
		"status":            "success",
		"usage_id":          usageID,
		"meter_id":          meterIDOut,
		"building_id":       buildingID,
		"timestamp":         readingDate.Format(time.RFC3339),
		"energy_type":       energyType,
		"energy_kwh":        energyConsumption,
		"power_kw":          demandKW,
		"power_factor":      powerFactor,
	}, nil
}

func orAll(meterID string) string {
	if meterID == "" {
		return "all meters"
	}
	return meterID
}

func (a *Agent) analyzeUsagePatterns(_ context.Context, params map[string]any) (agent.Output, error) {
	scope, _ := params["scope"].(string)
	identifier, _ := params["identifier"].(string)

	patterns := agent.Output{
		"daily_profile": agent.Output{
			"peak_hours": []string{"09:00", "14:00", "18:00"},
		},
		"weekly_profile": agent.Output{
			"highest_day": "Tuesday",
			"lowest_day":  "Sunday",
		},
		"peak_demand": agent.Output{
			"coincident_peak": "15:30",
			"frequency":       "Daily",
		},
	}

	insights := []string{
		"Peak demand analysis shows potential for demand response participation",
	}

	return agent.Output{
		"status":                      "success",
		"scope":                       scope,
		"identifier":                  identifier,
		"building_id":                 identifier,
		"pattern_analysis":            patterns,
		"key_insights":                insights,
		"optimization_opportunities":  1,
		"savings_potential": agent.Output{
			"energy_savings_percent": "10-20%",
			"confidence":             "medium",
		},
	}, nil
}
