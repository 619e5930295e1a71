// Package report defines the materialized stage artifacts that let
// each pipeline stage be re-run independently, and the atomic writer
// that protects the previous artifact with a timestamped snapshot.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonesrussell/curator/internal/domain"
)

// Artifact file names inside the pipeline output directory.
const (
	ClassificationFile = "classification.json"
	ExtractionFile     = "extraction.json"
	AcceptedFile       = "accepted.json"
	RejectedFile       = "rejected.json"
	SummaryFile        = "summary.json"
)

// ClassificationReport is the stage-2 artifact: per-document kind,
// category and quality.
type ClassificationReport struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	RuleVersion string                      `json:"rule_version"`
	Documents   []domain.ClassifiedDocument `json:"documents"`
	Stats       ClassificationStats         `json:"stats"`
}

// ClassificationStats summarizes one classification pass.
type ClassificationStats struct {
	Total        int            `json:"total"`
	ListingPages int            `json:"listing_pages"`
	Articles     int            `json:"articles"`
	ByCategory   map[string]int `json:"by_category"`
	ByTier       map[string]int `json:"by_tier"`
}

// NewClassificationReport builds the artifact from classified documents.
func NewClassificationReport(ruleVersion string, docs []domain.ClassifiedDocument, at time.Time) *ClassificationReport {
	stats := ClassificationStats{
		Total:      len(docs),
		ByCategory: make(map[string]int),
		ByTier:     make(map[string]int),
	}
	for _, doc := range docs {
		switch doc.Kind {
		case domain.KindListingPage:
			stats.ListingPages++
		case domain.KindArticle:
			stats.Articles++
		}
		stats.ByCategory[doc.Category]++
		stats.ByTier[doc.QualityTier]++
	}
	return &ClassificationReport{
		GeneratedAt: at,
		RuleVersion: ruleVersion,
		Documents:   docs,
		Stats:       stats,
	}
}

// ExtractionReport is the stage-3 artifact: every entry pulled out of
// the listing pages.
type ExtractionReport struct {
	GeneratedAt time.Time               `json:"generated_at"`
	RuleVersion string                  `json:"rule_version"`
	Entries     []domain.ExtractedEntry `json:"entries"`
}

// CurationSummary is the diagnostic report for a curation pass.
type CurationSummary struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	RuleVersion     string         `json:"rule_version"`
	Candidates      int            `json:"candidates"`
	Accepted        int            `json:"accepted"`
	Rejected        int            `json:"rejected"`
	Duplicates      int            `json:"duplicates"`
	KeepRatePercent int            `json:"keep_rate_percent"`
	ByReason        map[string]int `json:"by_reason"`
	ByCategory      map[string]int `json:"by_category"`
}

// NewCurationSummary computes the summary from curation outputs.
func NewCurationSummary(
	ruleVersion string,
	candidates int,
	records []domain.CanonicalRecord,
	rejections []domain.Rejection,
	at time.Time,
) *CurationSummary {
	summary := &CurationSummary{
		GeneratedAt: at,
		RuleVersion: ruleVersion,
		Candidates:  candidates,
		Accepted:    len(records),
		Rejected:    len(rejections),
		ByReason:    make(map[string]int),
		ByCategory:  make(map[string]int),
	}
	for _, r := range rejections {
		reason := r.Reason
		if d, ok := cutDuplicateReason(reason); ok {
			reason = d
			summary.Duplicates++
		}
		summary.ByReason[reason]++
	}
	for _, rec := range records {
		summary.ByCategory[rec.Category]++
	}
	if candidates > 0 {
		summary.KeepRatePercent = len(records) * 100 / candidates
	}
	return summary
}

// cutDuplicateReason folds duplicate-of:<id> reasons into one bucket.
func cutDuplicateReason(reason string) (string, bool) {
	const prefix = "duplicate-of:"
	if len(reason) > len(prefix) && reason[:len(prefix)] == prefix {
		return "duplicate", true
	}
	return reason, false
}

// RejectionReport is the curated rejection artifact.
type RejectionReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Rejections  []domain.Rejection `json:"rejections"`
}

// RecordSet is the accepted-records artifact and the final emitted
// data set.
type RecordSet struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Count       int                      `json:"count"`
	Records     []domain.CanonicalRecord `json:"records"`
}

// Read loads a JSON artifact into out. A missing artifact is a
// structural failure: the error names the path so the operator knows
// which prior stage to run.
func Read(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("required artifact %s is missing (run the producing stage first): %w", path, err)
		}
		return fmt.Errorf("read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}
