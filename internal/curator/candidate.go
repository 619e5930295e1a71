// Package curator filters, deduplicates and normalizes record
// candidates into the canonical schema consumed by the website's data
// layer.
package curator

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/rules"
)

// Article promotion gates: only substantial articles become record
// candidates.
const (
	minGoodArticleWords     = 800
	minDetailedContentRunes = 500
)

// CandidateBuilder turns extracted entries and article-kind documents
// into record candidates for the filter stage.
type CandidateBuilder struct {
	rules  *rules.RuleSet
	logger logger.Logger
}

// NewCandidateBuilder creates a candidate builder.
func NewCandidateBuilder(rs *rules.RuleSet, log logger.Logger) *CandidateBuilder {
	return &CandidateBuilder{rules: rs, logger: log}
}

// Build assembles the candidate list: every extracted entry, followed
// by every article that passes the quality gate. Original enumeration
// order is preserved for the dedup stage.
func (b *CandidateBuilder) Build(entries []domain.ExtractedEntry, docs []domain.ClassifiedDocument) []domain.RecordCandidate {
	candidates := make([]domain.RecordCandidate, 0, len(entries))

	for i, entry := range entries {
		candidates = append(candidates, b.fromEntry(entry, i))
	}

	for _, doc := range docs {
		if doc.Kind != domain.KindArticle {
			continue
		}
		candidate, ok := b.fromArticle(doc)
		if !ok {
			b.logger.Debug("article below candidate gate",
				logger.String("document_id", doc.ID),
				logger.String("quality_tier", doc.QualityTier),
				logger.Int("word_count", doc.WordCount))
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates
}

func (b *CandidateBuilder) fromEntry(entry domain.ExtractedEntry, index int) domain.RecordCandidate {
	return domain.RecordCandidate{
		ID:          fmt.Sprintf("%s#%d", entry.SourceDocumentID, index),
		Origin:      domain.OriginEntry,
		RecordType:  domain.RecordTypeTool,
		SourceID:    entry.SourceDocumentID,
		Title:       entry.Title,
		URL:         entry.URL,
		Description: entry.Description,
	}
}

// fromArticle promotes an article document to a candidate when it is
// excellent, or good with enough words, and its cleaned body is long
// enough to stand as detailed content.
func (b *CandidateBuilder) fromArticle(doc domain.ClassifiedDocument) (domain.RecordCandidate, bool) {
	switch doc.QualityTier {
	case domain.TierExcellent:
	case domain.TierGood:
		if doc.WordCount < minGoodArticleWords {
			return domain.RecordCandidate{}, false
		}
	default:
		return domain.RecordCandidate{}, false
	}

	content := cleanContent(doc.Body, b.rules.AdImageMarkers)
	if len([]rune(content)) < minDetailedContentRunes {
		return domain.RecordCandidate{}, false
	}

	return domain.RecordCandidate{
		ID:              doc.ID,
		Origin:          domain.OriginArticle,
		RecordType:      b.recordType(doc),
		SourceID:        doc.ID,
		Title:           doc.Title,
		URL:             urlFromBody(content, b.rules.ExcludedDomains),
		Description:     descriptionFrom(content, doc.Title),
		DetailedContent: content,
		Category:        doc.Category,
		ImageURL:        firstImage(doc.Body, b.rules.AdImageMarkers),
		WordCount:       doc.WordCount,
		ImageCount:      doc.ImageCount,
		QualityScore:    doc.QualityScore,
		QualityTier:     doc.QualityTier,
		PublishedAt:     doc.Meta.ScrapedTime,
		SourceURL:       doc.Meta.URL,
	}, true
}

// recordType decides whether an article describes a tool or reads as a
// tutorial/course.
func (b *CandidateBuilder) recordType(doc domain.ClassifiedDocument) string {
	title := strings.ToLower(doc.Title)
	for _, kw := range b.rules.ToolKeywords {
		if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
			return domain.RecordTypeTool
		}
	}
	if doc.Category == domain.CategoryAITools || doc.Category == domain.CategorySoftware {
		return domain.RecordTypeTool
	}
	return domain.RecordTypeTutorial
}
