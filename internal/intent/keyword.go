package intent

import (
	"sort"
	"strings"
)

// KeywordMatcher scores a request against a fixed table of tag -> keyword
// set and returns the argmax. Ties break on tag name, ascending, so the
// result is deterministic regardless of map iteration order.
//
// Keyword sets for energy/portfolio/finance/monitoring are carried over
// verbatim from matchers/keyword_matcher.py. time, energy_monitoring, and
// out_of_scope are additions required by the Planner family's routing rules
// (spec §4.4) which the original matcher didn't need to distinguish on its
// own but the rule-based planner keys off.
type KeywordMatcher struct {
	keywords map[string][]string
}

// DefaultKeywordSets is the keyword table grounded on keyword_matcher.py,
// plus additions noted above.
func DefaultKeywordSets() map[string][]string {
	return map[string][]string{
		"energy":            {"energy", "consumption", "usage", "kwh", "meter"},
		"portfolio":         {"portfolio", "buildings", "facilities", "properties"},
		"finance":           {"roi", "cost", "savings", "budget", "financial"},
		"monitoring":        {"monitor", "alert", "anomaly", "real-time", "iot"},
		"energy_monitoring": {"latest", "reading", "current", "recent", "now", "date"},
		"time":              {"time", "date", "today", "clock", "timezone"},
		"document":          {"document", "pdf", "extract", "file", "attachment"},
		"summarize":         {"summarize", "summary", "tldr", "condense", "brief"},
		"out_of_scope":      {"weather", "joke", "recipe", "sports", "movie", "super bowl", "bowl", "won", "championship"},
	}
}

// NewKeywordMatcher builds a matcher from the given tag->keywords table. A
// nil table falls back to DefaultKeywordSets.
func NewKeywordMatcher(keywords map[string][]string) *KeywordMatcher {
	if keywords == nil {
		keywords = DefaultKeywordSets()
	}
	return &KeywordMatcher{keywords: keywords}
}

// Match scores text against every tag's keyword set. Each tag's score is
// matched-keywords / total-keywords for that tag (keyword_matcher.py's exact
// rule). The argmax wins; on a tie the lexicographically smallest tag name
// wins, so output is stable across runs. If every tag scores zero the result
// is Unknown with confidence 0.
func (m *KeywordMatcher) Match(text string) Match {
	lower := strings.ToLower(text)

	all := make(map[string]float64, len(m.keywords))
	tags := make([]string, 0, len(m.keywords))
	for tag := range m.keywords {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	bestTag := Unknown
	bestScore := 0.0
	var bestHits []string

	for _, tag := range tags {
		kws := m.keywords[tag]
		if len(kws) == 0 {
			continue
		}
		var hits []string
		for _, kw := range kws {
			if strings.Contains(lower, kw) {
				hits = append(hits, kw)
			}
		}
		score := float64(len(hits)) / float64(len(kws))
		all[tag] = score
		if score > bestScore {
			bestScore = score
			bestTag = tag
			bestHits = hits
		}
	}

	reason := "no keywords matched"
	if bestScore > 0 {
		reason = "matched keywords: " + strings.Join(bestHits, ", ")
	}

	return Match{
		Intent:     bestTag,
		Confidence: bestScore,
		Reason:     reason,
		AllMatches: all,
	}
}
