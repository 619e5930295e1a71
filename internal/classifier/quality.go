package classifier

import "github.com/jonesrussell/curator/internal/domain"

// Quality score weights. Word count contributes up to 40 points, the
// remaining factors 20 each.
const (
	wordCountThreshold1000 = 1000
	wordCountThreshold500  = 500
	wordCountThreshold200  = 200
	wordCountScore40       = 40
	wordCountScore20       = 20
	wordCountScore10       = 10

	imageCountThreshold3 = 3
	imageCountScore20    = 20
	imageCountScore10    = 10

	mainContentScore = 20
	structureScore   = 20

	tierExcellentMin = 80
	tierGoodMin      = 60
	tierFairMin      = 40
)

// QualityResult is the scored quality of one document.
type QualityResult struct {
	Score int    `json:"score"` // 0-100
	Tier  string `json:"tier"`
}

// QualityScorer evaluates content quality on a 0-100 scale from word
// count, image count, the has-main-content metadata flag and document
// structure. Pure function of its inputs.
type QualityScorer struct{}

// NewQualityScorer creates a quality scorer.
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// Score computes the weighted quality score and maps it to a tier.
func (q *QualityScorer) Score(wordCount, imageCount int, hasMainContent, hasStructure bool) QualityResult {
	score := 0

	switch {
	case wordCount >= wordCountThreshold1000:
		score += wordCountScore40
	case wordCount >= wordCountThreshold500:
		score += wordCountScore20
	case wordCount >= wordCountThreshold200:
		score += wordCountScore10
	}

	switch {
	case imageCount >= imageCountThreshold3:
		score += imageCountScore20
	case imageCount >= 1:
		score += imageCountScore10
	}

	if hasMainContent {
		score += mainContentScore
	}
	if hasStructure {
		score += structureScore
	}

	return QualityResult{Score: score, Tier: TierFor(score)}
}

// TierFor maps a quality score to its tier.
func TierFor(score int) string {
	switch {
	case score >= tierExcellentMin:
		return domain.TierExcellent
	case score >= tierGoodMin:
		return domain.TierGood
	case score >= tierFairMin:
		return domain.TierFair
	default:
		return domain.TierPoor
	}
}
