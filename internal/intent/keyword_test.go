package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redaptive/agentcore/internal/intent"
)

func TestKeywordMatcherPicksHighestScoringTag(t *testing.T) {
	m := intent.NewKeywordMatcher(nil)
	got := m.Match("what is our portfolio's energy consumption across all buildings")
	assert.Equal(t, "portfolio", got.Intent)
	assert.Greater(t, got.Confidence, 0.0)
}

func TestKeywordMatcherUnknownOnNoMatch(t *testing.T) {
	m := intent.NewKeywordMatcher(nil)
	got := m.Match("xyzzy plugh")
	assert.Equal(t, intent.Unknown, got.Intent)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestKeywordMatcherOutOfScope(t *testing.T) {
	m := intent.NewKeywordMatcher(nil)
	got := m.Match("tell me a joke about the weather")
	assert.Equal(t, intent.OutOfScope, got.Intent)
}

func TestKeywordMatcherDeterministicTieBreak(t *testing.T) {
	kws := map[string][]string{
		"zzz_tag": {"apple"},
		"aaa_tag": {"apple"},
	}
	m := intent.NewKeywordMatcher(kws)
	got := m.Match("apple")
	assert.Equal(t, "aaa_tag", got.Intent)
}

func TestKeywordMatcherAllMatchesPopulated(t *testing.T) {
	m := intent.NewKeywordMatcher(nil)
	got := m.Match("monitor energy usage in real-time")
	assert.Contains(t, got.AllMatches, "energy")
	assert.Contains(t, got.AllMatches, "monitoring")
}
