// Package intent implements the Intent Matcher (spec §4.3): a pure,
// deterministic classifier mapping a free-text request to the tag whose
// keyword set it overlaps with most.
//
// Grounded on matchers/base_matcher.py (the Matcher interface shape) and
// matchers/keyword_matcher.py (the scoring rule: matched keywords over total
// keywords per tag, argmax with stable tie-break, "unknown" when every tag
// scores zero).
package intent

// Match is the result of classifying a request (spec §4.3: IntentMatch).
type Match struct {
	Intent     string
	Confidence float64
	Reason     string
	AllMatches map[string]float64
}

// Matcher classifies free text into one of a fixed set of intent tags.
type Matcher interface {
	Match(text string) Match
}

// OutOfScope is the reserved tag for requests outside the domain entirely
// (spec §4.3), distinct from "unknown" (no keywords matched at all).
const OutOfScope = "out_of_scope"

// Unknown is returned when every tag scores zero.
const Unknown = "unknown"
