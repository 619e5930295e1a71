package classifier

import (
	"strings"

	"github.com/jonesrussell/curator/internal/rules"
)

// CategoryClassifier assigns a topic category using the ordered rule
// table. This is a first-match policy, not argmax: directory-name
// rules for every category are tried before any URL rule, URL rules
// before any body-keyword rule, and within each pass the first
// matching category wins.
type CategoryClassifier struct {
	categories []compiledCategory
	fallback   string
}

type compiledCategory struct {
	name          string
	directories   []string
	urlSubstrings []string
	keywords      *rules.KeywordMatcher
}

// NewCategoryClassifier compiles the rule table's category rules.
func NewCategoryClassifier(rs *rules.RuleSet) *CategoryClassifier {
	compiled := make([]compiledCategory, 0, len(rs.Categories))
	for _, rule := range rs.Categories {
		compiled = append(compiled, compiledCategory{
			name:          rule.Name,
			directories:   lowerAll(rule.Directories),
			urlSubstrings: lowerAll(rule.URLSubstrings),
			keywords:      rules.NewKeywordMatcher(rule.Keywords),
		})
	}
	return &CategoryClassifier{
		categories: compiled,
		fallback:   rs.FallbackCategory,
	}
}

// Classify returns the first category whose rules match, or the
// fallback category when none do.
func (c *CategoryClassifier) Classify(docID, title, url, body string) string {
	id := strings.ToLower(docID)
	loweredURL := strings.ToLower(url)
	text := strings.ToLower(title + " " + body)

	for _, cat := range c.categories {
		for _, dir := range cat.directories {
			if dir != "" && strings.Contains(id, dir) {
				return cat.name
			}
		}
	}

	for _, cat := range c.categories {
		for _, sub := range cat.urlSubstrings {
			if sub != "" && strings.Contains(loweredURL, sub) {
				return cat.name
			}
		}
	}

	for _, cat := range c.categories {
		if cat.keywords.Contains(text) {
			return cat.name
		}
	}

	return c.fallback
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
