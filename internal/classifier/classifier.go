// Package classifier labels raw documents: listing page vs article,
// topic category, word/image counts and a quality score. All
// strategies are pure functions over the document plus the static rule
// table, so re-classifying an unchanged corpus is deterministic.
package classifier

import (
	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/rules"
)

// Classifier orchestrates the kind, category and quality strategies.
type Classifier struct {
	kind     *KindClassifier
	category *CategoryClassifier
	quality  *QualityScorer
	logger   logger.Logger
}

// New creates a classifier from the rule table.
func New(rs *rules.RuleSet, log logger.Logger) *Classifier {
	return &Classifier{
		kind:     NewKindClassifier(rs),
		category: NewCategoryClassifier(rs),
		quality:  NewQualityScorer(),
		logger:   log,
	}
}

// Classify derives all classification fields for one raw document.
func (c *Classifier) Classify(doc domain.RawDocument) domain.ClassifiedDocument {
	kind := c.kind.Classify(doc)
	title := ExtractTitle(doc.Body)
	category := c.category.Classify(doc.ID, title, doc.Meta.URL, doc.Body)

	wordCount := CountWords(doc.Body)
	imageCount := CountImages(doc.Body)

	quality := c.quality.Score(wordCount, imageCount, doc.Meta.HasMainContent, HasStructure(doc.Body))

	c.logger.Debug("document classified",
		logger.String("document_id", doc.ID),
		logger.String("kind", kind.Kind),
		logger.String("kind_method", kind.Method),
		logger.String("category", category),
		logger.Int("word_count", wordCount),
		logger.Int("quality_score", quality.Score),
	)

	return domain.ClassifiedDocument{
		RawDocument:  doc,
		Kind:         kind.Kind,
		Title:        title,
		Category:     category,
		WordCount:    wordCount,
		ImageCount:   imageCount,
		QualityScore: quality.Score,
		QualityTier:  quality.Tier,
	}
}

// ClassifyAll classifies a corpus in order, invoking observe after
// each document when non-nil.
func (c *Classifier) ClassifyAll(docs []domain.RawDocument, observe func()) []domain.ClassifiedDocument {
	classified := make([]domain.ClassifiedDocument, 0, len(docs))
	for _, doc := range docs {
		classified = append(classified, c.Classify(doc))
		if observe != nil {
			observe()
		}
	}
	return classified
}
