package rules

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// KeywordMatcher wraps an Aho-Corasick automaton for case-insensitive
// substring matching of a fixed keyword set. Matching is O(n+m)
// regardless of keyword count, which keeps repeated blocklist checks
// over full document bodies cheap.
type KeywordMatcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordMatcher builds a matcher from the given keywords. Empty
// keywords are dropped; the rest are lowercased.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		normalized = append(normalized, kw)
	}

	m := &KeywordMatcher{keywords: normalized}
	if len(normalized) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return m
}

// Contains reports whether any keyword occurs in text.
func (m *KeywordMatcher) Contains(text string) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Contains([]byte(strings.ToLower(text)))
}

// Matched returns the keywords that occur in text, in table order.
func (m *KeywordMatcher) Matched(text string) []string {
	if m.matcher == nil {
		return nil
	}
	hits := m.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}
	matched := make([]string, 0, len(hits))
	for _, idx := range hits {
		matched = append(matched, m.keywords[idx])
	}
	return matched
}

// Size returns the number of keywords in the matcher.
func (m *KeywordMatcher) Size() int {
	return len(m.keywords)
}
