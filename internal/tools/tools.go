// Package tools defines the identifiers and payload-validation helpers shared
// by the agent contract, the planner family, and the execution engine.
package tools

// Ident is the strong type for a tool identifier scoped to a single agent
// (e.g. "get_latest_energy_reading"). Use this type instead of a bare string
// when referencing tools in maps or APIs to avoid accidental mixing with
// free-form text.
type Ident string

// FieldIssue represents a single validation issue for a tool payload,
// surfaced when params fail a tool's declared input schema.
type FieldIssue struct {
	// Field is the JSON pointer-ish path of the offending field (e.g.
	// "project_details.total_investment").
	Field string
	// Constraint is the schema validator's error message for the violated
	// constraint (or "unmarshalable" when params cannot be encoded as JSON).
	Constraint string
}
