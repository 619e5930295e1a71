//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/curator/internal/domain"
)

func TestQualityScorer_Score(t *testing.T) {
	q := NewQualityScorer()

	tests := []struct {
		name           string
		wordCount      int
		imageCount     int
		hasMainContent bool
		hasStructure   bool
		wantScore      int
		wantTier       string
	}{
		{
			name:           "everything maxed",
			wordCount:      1500,
			imageCount:     4,
			hasMainContent: true,
			hasStructure:   true,
			wantScore:      100,
			wantTier:       domain.TierExcellent,
		},
		{
			name:      "empty document",
			wantScore: 0,
			wantTier:  domain.TierPoor,
		},
		{
			name:           "good article",
			wordCount:      600,
			imageCount:     1,
			hasMainContent: true,
			hasStructure:   true,
			wantScore:      70,
			wantTier:       domain.TierGood,
		},
		{
			name:      "fair text-only page",
			wordCount: 1200,
			wantScore: 40,
			wantTier:  domain.TierFair,
		},
		{
			name:      "short text only",
			wordCount: 250,
			wantScore: 10,
			wantTier:  domain.TierPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Score(tt.wordCount, tt.imageCount, tt.hasMainContent, tt.hasStructure)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTier, got.Tier)
		})
	}
}

// A longer document never scores below a shorter one, all else equal.
func TestQualityScorer_WordCountMonotonic(t *testing.T) {
	q := NewQualityScorer()

	prev := -1
	for _, wc := range []int{0, 199, 200, 499, 500, 999, 1000, 5000} {
		score := q.Score(wc, 0, false, false).Score
		if score < prev {
			t.Fatalf("score decreased at word count %d: %d < %d", wc, score, prev)
		}
		prev = score
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		tier  string
	}{
		{100, domain.TierExcellent},
		{80, domain.TierExcellent},
		{79, domain.TierGood},
		{60, domain.TierGood},
		{59, domain.TierFair},
		{40, domain.TierFair},
		{39, domain.TierPoor},
		{0, domain.TierPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.tier, TierFor(tt.score), "score %d", tt.score)
	}
}
