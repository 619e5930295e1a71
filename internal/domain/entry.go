package domain

import "time"

// Extraction sources for listing-page entries.
const (
	SourceListPage     = "list-page"
	SourceListPageDesc = "list-page-with-desc"
)

// ExtractedEntry is one link/description pair pulled out of a
// listing-page document. Not guaranteed unique across documents.
type ExtractedEntry struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	Description      string `json:"description,omitempty"`
	SourceDocumentID string `json:"source_document_id"`
	ExtractedFrom    string `json:"extracted_from"`
}

// Candidate origins.
const (
	OriginEntry   = "entry"
	OriginArticle = "article"
)

// Record types for candidates: a tool listing or a long-form tutorial.
const (
	RecordTypeTool     = "tool"
	RecordTypeTutorial = "tutorial"
)

// RecordCandidate is the unit flowing through the curator: either an
// extracted listing entry or an article-derived candidate, before
// filtering, deduplication and normalization.
type RecordCandidate struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	RecordType  string `json:"record_type"`
	SourceID    string `json:"source_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	// Article-derived fields; zero values for bare entries.
	DetailedContent string     `json:"detailed_content,omitempty"`
	Category        string     `json:"category,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	WordCount       int        `json:"word_count,omitempty"`
	ImageCount      int        `json:"image_count,omitempty"`
	QualityScore    int        `json:"quality_score,omitempty"`
	QualityTier     string     `json:"quality_tier,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	SourceURL       string     `json:"source_url,omitempty"`
}
