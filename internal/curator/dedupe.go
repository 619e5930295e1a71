package curator

import (
	"strings"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
)

// DefaultSimilarityThreshold treats two titles as near-duplicates.
const DefaultSimilarityThreshold = 0.8

// Deduper removes near-duplicate candidates in a single left-to-right
// pass: the first occurrence wins, later ones are dropped. Pairwise
// comparison is O(n²) over the accepted set, which is fine for a
// corpus of a few hundred documents.
type Deduper struct {
	threshold float64
	logger    logger.Logger
}

// NewDeduper creates a deduper with the given similarity threshold.
func NewDeduper(threshold float64, log logger.Logger) *Deduper {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Deduper{threshold: threshold, logger: log}
}

// Dedupe returns the surviving candidates and a rejection per dropped
// duplicate, with reason duplicate-of:<kept id>.
func (d *Deduper) Dedupe(candidates []domain.RecordCandidate) ([]domain.RecordCandidate, []domain.Rejection) {
	kept := make([]domain.RecordCandidate, 0, len(candidates))
	dropped := make([]domain.Rejection, 0)

outer:
	for _, c := range candidates {
		for _, k := range kept {
			if Similarity(c.Title, k.Title) >= d.threshold {
				d.logger.Debug("duplicate dropped",
					logger.String("candidate_id", c.ID),
					logger.String("duplicate_of", k.ID),
					logger.String("title", c.Title))
				dropped = append(dropped, domain.Rejection{
					CandidateID: c.ID,
					SourceID:    c.SourceID,
					Title:       c.Title,
					Reason:      domain.ReasonDuplicateOf(k.ID),
				})
				continue outer
			}
		}
		kept = append(kept, c)
	}

	return kept, dropped
}

// Similarity is a normalized edit-distance similarity over titles:
// (maxLen - editDistance) / maxLen, case-insensitive, whitespace
// trimmed. Identical strings score 1.0 and the metric is symmetric.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}

	return float64(longest-levenshtein(ra, rb)) / float64(longest)
}

// levenshtein computes edit distance over runes with a two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
