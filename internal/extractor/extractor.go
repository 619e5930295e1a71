// Package extractor parses discrete tool/resource entries out of
// listing-page documents.
package extractor

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/rules"
)

const (
	// maxEntriesPerDocument caps extraction so a degenerate listing
	// page cannot flood the downstream stages.
	maxEntriesPerDocument = 50

	// maxDescriptionLength truncates free-text paragraph descriptions.
	maxDescriptionLength = 200
)

var (
	// ## [Title](https://example.com "optional title") "optional desc"
	headingLinkPattern = regexp.MustCompile(
		`(?m)^#{2,3}\s*\[([^\]]+)\]\((https?://[^)\s]+)(?:\s+"([^)"]*)")?\)[^\S\n]*(?:"([^"\n]*)")?`)

	// Heading link followed by a free-text paragraph.
	headingParagraphPattern = regexp.MustCompile(
		`(?s)#{2,3}\s*\[([^\]]+)\]\([^)]+\)[^#]*?\n\n([^#\n]+)`)
)

// Extractor pulls entries from listing pages. Documents of any other
// kind yield an empty list.
type Extractor struct {
	rules  *rules.RuleSet
	logger logger.Logger
}

// New creates an entry extractor.
func New(rs *rules.RuleSet, log logger.Logger) *Extractor {
	return &Extractor{rules: rs, logger: log}
}

// Extract returns the entries embedded in a listing-page document.
// Finding no entries is a normal outcome, not an error.
func (e *Extractor) Extract(doc domain.ClassifiedDocument) []domain.ExtractedEntry {
	if doc.Kind != domain.KindListingPage {
		return nil
	}

	entries := make([]domain.ExtractedEntry, 0)
	seen := make(map[string]struct{})

	// Free-text paragraphs following a heading link, used when the
	// heading itself carries no quoted description. Document order is
	// kept so fallback extraction stays deterministic.
	paragraphs := make(map[string]string)
	paragraphTitles := make([]string, 0)
	for _, m := range headingParagraphPattern.FindAllStringSubmatch(doc.Body, -1) {
		title := strings.TrimSpace(m[1])
		if _, ok := paragraphs[title]; !ok {
			paragraphs[title] = strings.TrimSpace(m[2])
			paragraphTitles = append(paragraphTitles, title)
		}
	}

	for _, m := range headingLinkPattern.FindAllStringSubmatch(doc.Body, -1) {
		title := strings.TrimSpace(m[1])
		url := strings.TrimSpace(m[2])
		desc := strings.TrimSpace(m[3])
		if desc == "" {
			desc = strings.TrimSpace(m[4])
		}

		if e.rules.LinkExcluded(url, title) {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		source := domain.SourceListPage
		if desc == "" {
			if para, ok := paragraphs[title]; ok {
				desc = truncate(para, maxDescriptionLength)
				source = domain.SourceListPageDesc
			}
		}

		entries = append(entries, domain.ExtractedEntry{
			Title:            title,
			URL:              url,
			Description:      desc,
			SourceDocumentID: doc.ID,
			ExtractedFrom:    source,
		})
	}

	// Heading links the first pattern misses (relative targets) still
	// yield entries when a descriptive paragraph follows them.
	for _, title := range paragraphTitles {
		para := paragraphs[title]
		if _, dup := seen[title]; dup {
			continue
		}

		url := urlForTitle(doc.Body, title)
		if url == "" || e.rules.LinkExcluded(url, title) {
			continue
		}
		seen[title] = struct{}{}

		entries = append(entries, domain.ExtractedEntry{
			Title:            title,
			URL:              url,
			Description:      truncate(para, maxDescriptionLength),
			SourceDocumentID: doc.ID,
			ExtractedFrom:    domain.SourceListPageDesc,
		})
	}

	if len(entries) > maxEntriesPerDocument {
		entries = entries[:maxEntriesPerDocument]
	}

	e.logger.Debug("entries extracted",
		logger.String("document_id", doc.ID),
		logger.Int("entries", len(entries)))
	return entries
}

// ExtractAll runs extraction over every listing page in the corpus,
// preserving document order.
func (e *Extractor) ExtractAll(docs []domain.ClassifiedDocument) []domain.ExtractedEntry {
	all := make([]domain.ExtractedEntry, 0)
	for _, doc := range docs {
		all = append(all, e.Extract(doc)...)
	}
	return all
}

// urlForTitle recovers the link target for a heading whose description
// came from a following paragraph.
func urlForTitle(body, title string) string {
	re, err := regexp.Compile(`\[` + regexp.QuoteMeta(title) + `\]\(([^)\s]+)[^)]*\)`)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
