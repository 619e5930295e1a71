package curator

import (
	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/rules"
)

// Title and description bounds for the quality filter.
const (
	minTitleRunes       = 5
	maxTitleRunes       = 100
	minDescriptionRunes = 20
)

// Verdict is the outcome of checking one candidate.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Filter applies the policy blocklist and the quality/relevance checks
// to record candidates. The policy check is absolute: it runs first
// and short-circuits everything else, regardless of quality score.
type Filter struct {
	policy   *rules.KeywordMatcher
	course   *rules.KeywordMatcher
	offTopic *rules.KeywordMatcher

	excludedDomains    []string
	placeholderMarkers []string
	logger             logger.Logger
}

// NewFilter compiles the rule table's blocklists.
func NewFilter(rs *rules.RuleSet, log logger.Logger) *Filter {
	return &Filter{
		policy:             rules.NewKeywordMatcher(rs.PolicyBlocklist),
		course:             rules.NewKeywordMatcher(rs.CourseKeywords),
		offTopic:           rules.NewKeywordMatcher(rs.OffTopicKeywords),
		excludedDomains:    rs.ExcludedDomains,
		placeholderMarkers: rs.PlaceholderMarkers,
		logger:             log,
	}
}

// Check evaluates a single candidate. The input is never mutated.
func (f *Filter) Check(c domain.RecordCandidate) Verdict {
	text := c.Title + " " + c.Description + " " + c.DetailedContent

	if f.policy.Contains(text) {
		return Verdict{Reason: domain.ReasonPolicyViolation}
	}

	titleLen := len([]rune(c.Title))
	if titleLen < minTitleRunes || titleLen > maxTitleRunes {
		return Verdict{Reason: domain.ReasonLowQuality}
	}

	if !usableURL(c.URL, f.excludedDomains) && urlFromBody(c.DetailedContent, f.excludedDomains) == "" {
		return Verdict{Reason: domain.ReasonLowQuality}
	}

	if len([]rune(c.Description)) < minDescriptionRunes {
		return Verdict{Reason: domain.ReasonLowQuality}
	}

	if containsAny(c.DetailedContent, f.placeholderMarkers) {
		return Verdict{Reason: domain.ReasonLowQuality}
	}

	// Tutorial candidates are course-like by nature; the course and
	// off-topic blocklists apply to tool candidates only.
	if c.RecordType == domain.RecordTypeTool {
		if f.course.Contains(text) || f.offTopic.Contains(text) {
			return Verdict{Reason: domain.ReasonOffTopic}
		}
	}

	return Verdict{Accepted: true}
}

// Partition splits candidates into accepted and rejected sets,
// preserving order.
func (f *Filter) Partition(candidates []domain.RecordCandidate) ([]domain.RecordCandidate, []domain.Rejection) {
	accepted := make([]domain.RecordCandidate, 0, len(candidates))
	rejected := make([]domain.Rejection, 0)

	for _, c := range candidates {
		verdict := f.Check(c)
		if verdict.Accepted {
			accepted = append(accepted, c)
			continue
		}
		f.logger.Debug("candidate rejected",
			logger.String("candidate_id", c.ID),
			logger.String("title", c.Title),
			logger.String("reason", verdict.Reason))
		rejected = append(rejected, domain.Rejection{
			CandidateID: c.ID,
			SourceID:    c.SourceID,
			Title:       c.Title,
			Reason:      verdict.Reason,
		})
	}

	return accepted, rejected
}
