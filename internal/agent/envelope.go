package agent

import "encoding/json"

// envelope mirrors the MCP-style wire shape named in spec §3/§6.1:
//
//	{ "content": [ { "text": "<json>" } ], "isError": bool }
//
// where text is a JSON-encoded object. NormalizeOutput accepts both this
// shape and the Direct map[str]any shape and always returns a flat Output,
// so downstream consumers (placeholder resolution, StepResult) never need to
// know which shape a given tool happened to return.
type envelope struct {
	Content []envelopeContent `json:"content"`
	IsError bool              `json:"isError"`
}

type envelopeContent struct {
	Text string `json:"text"`
}

// NormalizeOutput unwraps an Envelope-shaped result into a Direct Output. If
// raw is already a Direct shape (no "content"/"isError" keys), it is
// returned unchanged. If raw is an Envelope with IsError true, the decoded
// text payload is still returned (as a Direct map) so ToolFailure callers can
// inspect it; the caller decides how to treat IsError.
func NormalizeOutput(raw Output) (Output, bool, error) {
	if raw == nil {
		return Output{}, false, nil
	}
	content, hasContent := raw["content"]
	if !hasContent {
		return raw, false, nil
	}
	b, err := json.Marshal(map[string]any{"content": content, "isError": raw["isError"]})
	if err != nil {
		return nil, false, err
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, false, err
	}
	if len(env.Content) == 0 {
		return Output{}, env.IsError, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(env.Content[0].Text), &decoded); err != nil {
		// The text payload isn't a JSON object; surface it as a single field
		// rather than failing, matching the engine's "never swallow" policy.
		return Output{"text": env.Content[0].Text}, env.IsError, nil
	}
	return Output(decoded), env.IsError, nil
}
