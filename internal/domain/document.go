package domain

import "time"

// DocumentKind distinguishes index pages from single-item articles.
const (
	KindListingPage = "listing-page"
	KindArticle     = "article"
)

// Topic categories assigned by the classifier. Order of evaluation is
// defined by the rule table, not by these constants.
const (
	CategoryAITools     = "ai-tools"
	CategoryProgramming = "programming"
	CategorySoftware    = "software"
	CategoryTutorials   = "tutorials"
	CategoryOthers      = "others"
)

// Quality tiers derived from the 0-100 quality score.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierFair      = "fair"
	TierPoor      = "poor"
)

// Metadata is the optional key/value block at the top of a scraped
// document. Missing fields default rather than error.
type Metadata struct {
	URL            string     `json:"url,omitempty"`
	ScrapedTime    *time.Time `json:"scraped_time,omitempty"`
	HasMainContent bool       `json:"has_main_content"`
	ImagesCount    int        `json:"images_count"`
}

// RawDocument is one scraped unit: a directory name, a markdown-like
// body and the parsed metadata block. Immutable once loaded.
type RawDocument struct {
	ID   string   `json:"id"`
	Body string   `json:"-"`
	Meta Metadata `json:"meta"`
}

// ClassifiedDocument is a RawDocument plus the fields derived by the
// classifier. Kind and Category are pure functions of the document
// content and the static rule table.
type ClassifiedDocument struct {
	RawDocument

	Kind         string `json:"kind"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	WordCount    int    `json:"word_count"`
	ImageCount   int    `json:"image_count"`
	QualityScore int    `json:"quality_score"`
	QualityTier  string `json:"quality_tier"`
}
