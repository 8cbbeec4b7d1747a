package intent

import "github.com/redaptive/agentcore/internal/toolerrors"

// SemanticMatcher is a placeholder for a future embedding-backed matcher.
// Grounded on matchers/semantic_matcher.py, which is itself an unimplemented
// placeholder in the original system; Match reports a ConfigError (as the
// Reason of an Unknown match) until a real backend is wired in, rather than
// silently returning a fabricated intent.
type SemanticMatcher struct{}

// NewSemanticMatcher returns a SemanticMatcher.
func NewSemanticMatcher() *SemanticMatcher { return &SemanticMatcher{} }

// Match always returns Unknown with confidence 0 and a ConfigError message as
// its Reason: no semantic backend is configured.
func (m *SemanticMatcher) Match(text string) Match {
	return Match{
		Intent:     Unknown,
		Confidence: 0,
		Reason:     toolerrors.New(toolerrors.KindConfigError, "semantic matcher has no backend configured").Error(),
	}
}
