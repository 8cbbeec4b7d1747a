package tools

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled JSON Schema document describing a tool's expected
// parameter shape. An agent may build one per tool at Init time via
// CompileSchema and reuse it across Invoke calls; the six built-in agents
// declare none.
type Schema struct {
	compiled *jsonschema.Schema
}

// CompileSchema compiles a raw JSON Schema document (as produced by a Go
// struct literal marshaled to JSON, or a literal map) into a reusable Schema.
// Grounded on the teacher's registry/service.go:validatePayloadJSONAgainstSchema,
// which compiles tool schemas the same way at the gateway boundary.
func CompileSchema(schemaDoc map[string]any) (*Schema, error) {
	if len(schemaDoc) == 0 {
		return &Schema{}, nil
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("tools: add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("tools: compile schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks params against the compiled schema. A nil or empty Schema
// always validates successfully (tools without a declared schema accept any
// params, matching §3's "describes named parameters... where applicable").
func (s *Schema) Validate(params map[string]any) []FieldIssue {
	if s == nil || s.compiled == nil {
		return nil
	}
	// jsonschema validates against decoded JSON values (map[string]any,
	// []any, json.Number, ...); round-trip through JSON so Go-native
	// values (e.g. float64 from callers vs json.Number) normalize the way
	// the schema expects.
	raw, err := json.Marshal(params)
	if err != nil {
		return []FieldIssue{{Field: "", Constraint: "unmarshalable"}}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []FieldIssue{{Field: "", Constraint: "unmarshalable"}}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return issuesFromError(err)
	}
	return nil
}

func issuesFromError(err error) []FieldIssue {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []FieldIssue{{Field: "", Constraint: err.Error()}}
	}
	var issues []FieldIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			issues = append(issues, FieldIssue{
				Field:      joinPath(v.InstanceLocation),
				Constraint: v.Error(),
			})
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(ve)
	return issues
}

func joinPath(segments []string) string {
	path := ""
	for i, s := range segments {
		if i > 0 {
			path += "."
		}
		path += s
	}
	return path
}
