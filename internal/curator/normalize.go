package curator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/rules"
)

// Normalization limits.
const (
	maxSlugLength   = 50
	maxTags         = 5
	maxCleanTitle   = 100
	fallbackSlug    = "resource"
	readTimeDivisor = 200

	entryDefaultRating = 4.0
	articleBaseRating  = 3.5
	excellentBonus     = 1.0
	longArticleBonus   = 0.3
	richImageBonus     = 0.2
	maxRating          = 5.0
	longArticleWords   = 1200
	richImageCount     = 3
)

// Site categories the rendering layer understands. Classifier topics
// map onto these at normalization time.
var toolCategoryMap = map[string]string{
	domain.CategoryAITools:     "ai",
	domain.CategoryProgramming: "development",
	domain.CategorySoftware:    "productivity",
	domain.CategoryTutorials:   "education",
	domain.CategoryOthers:      "tools",
}

var tutorialCategoryMap = map[string]string{
	domain.CategoryAITools:     "ai",
	domain.CategoryProgramming: "development",
	domain.CategorySoftware:    "tools",
}

// Seed tags per site category.
var categorySeedTags = map[string][]string{
	"ai":           {"AI", "人工智能"},
	"development":  {"开发", "编程"},
	"productivity": {"效率", "工具"},
	"design":       {"设计", "创意"},
}

var (
	numericPrefix  = regexp.MustCompile(`^\d+\.\s*`)
	bracketChars   = regexp.MustCompile(`[【】\[\]]`)
	trailingColon  = regexp.MustCompile(`[：:]\s*$`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalizer converts accepted candidates into canonical records. It
// owns slug uniqueness for one emitted set; create a fresh Normalizer
// per run.
type Normalizer struct {
	rules   *rules.RuleSet
	tags    []compiledTagRule
	paid    *rules.KeywordMatcher
	free    *rules.KeywordMatcher
	slugger *Slugger
	runTime time.Time
	logger  logger.Logger
}

type compiledTagRule struct {
	tag     string
	matcher *rules.KeywordMatcher
}

// NewNormalizer creates a normalizer. runTime is the timestamp used
// when a candidate has no publication date of its own.
func NewNormalizer(rs *rules.RuleSet, runTime time.Time, log logger.Logger) *Normalizer {
	tags := make([]compiledTagRule, 0, len(rs.TagRules))
	for _, tr := range rs.TagRules {
		tags = append(tags, compiledTagRule{
			tag:     tr.Tag,
			matcher: rules.NewKeywordMatcher(tr.Keywords),
		})
	}
	return &Normalizer{
		rules:   rs,
		tags:    tags,
		paid:    rules.NewKeywordMatcher(rs.PaidKeywords),
		free:    rules.NewKeywordMatcher(rs.FreeKeywords),
		slugger: NewSlugger(),
		runTime: runTime,
		logger:  log,
	}
}

// Normalize produces the canonical record for one accepted candidate.
// Deterministic for identical inputs, except for the generated ID.
func (n *Normalizer) Normalize(c domain.RecordCandidate) domain.CanonicalRecord {
	title := CleanTitle(c.Title)
	category := n.category(c)
	description := n.description(c, title)
	detailed := n.detailedContent(c, title)

	record := domain.CanonicalRecord{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     description,
		Category:        category,
		Tags:            n.tagsFor(title+" "+description, category),
		URL:             n.resolveURL(c),
		ImageURL:        c.ImageURL,
		Rating:          n.rating(c),
		IsFree:          n.isFree(title + " " + description + " " + detailed),
		Featured:        c.QualityTier == domain.TierExcellent,
		Slug:            n.slugger.Slugify(title),
		DetailedContent: detailed,
		PublishedAt:     n.publishedAt(c),
		OriginalSource:  c.SourceURL,
	}

	if c.RecordType == domain.RecordTypeTutorial && c.WordCount > 0 {
		record.ReadTime = (c.WordCount + readTimeDivisor - 1) / readTimeDivisor
	}

	return record
}

// NormalizeAll maps candidates to records in order.
func (n *Normalizer) NormalizeAll(candidates []domain.RecordCandidate) []domain.CanonicalRecord {
	records := make([]domain.CanonicalRecord, 0, len(candidates))
	for _, c := range candidates {
		records = append(records, n.Normalize(c))
	}
	return records
}

// CleanTitle strips numeric prefixes, brackets and trailing colons,
// collapses whitespace and caps the length.
func CleanTitle(title string) string {
	title = numericPrefix.ReplaceAllString(title, "")
	title = bracketChars.ReplaceAllString(title, "")
	title = trailingColon.ReplaceAllString(title, "")
	title = whitespaceRuns.ReplaceAllString(title, " ")
	return truncateRunes(strings.TrimSpace(title), maxCleanTitle)
}

func (n *Normalizer) category(c domain.RecordCandidate) string {
	if c.Origin == domain.OriginArticle {
		if c.RecordType == domain.RecordTypeTutorial {
			if mapped, ok := tutorialCategoryMap[c.Category]; ok {
				return mapped
			}
			return "general"
		}
		if mapped, ok := toolCategoryMap[c.Category]; ok {
			return mapped
		}
		return "tools"
	}
	return categoryFromText(c.Title + " " + c.Description)
}

// categoryFromText assigns a site category for bare entries that never
// went through document classification.
func categoryFromText(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "ai") || strings.Contains(lowered, "人工智能"):
		return "ai"
	case strings.Contains(lowered, "编程") || strings.Contains(lowered, "开发") || strings.Contains(lowered, "code"):
		return "development"
	case strings.Contains(lowered, "设计") || strings.Contains(lowered, "design"):
		return "design"
	case strings.Contains(lowered, "软件") || strings.Contains(lowered, "工具"):
		return "productivity"
	default:
		return "tools"
	}
}

// description returns the candidate description, or synthesizes a
// one-sentence one from the title and category when the incoming text
// is empty, templated or too short. The field is never left empty.
func (n *Normalizer) description(c domain.RecordCandidate, title string) string {
	desc := strings.TrimSpace(c.Description)
	templated := strings.Contains(desc, "...") || strings.Contains(desc, "…")
	if desc != "" && !templated && len([]rune(desc)) >= minDescriptionRunes {
		return desc
	}
	return synthesizeDescription(title)
}

func synthesizeDescription(title string) string {
	switch {
	case strings.Contains(title, "AI") || strings.Contains(strings.ToLower(title), "ai"):
		return fmt.Sprintf("%s是一款基于人工智能技术的实用工具，为用户提供智能化的解决方案。", title)
	case strings.Contains(title, "在线") || strings.Contains(title, "生成器"):
		return fmt.Sprintf("%s是一款便捷的在线工具，提供简单易用的功能服务。", title)
	case strings.Contains(title, "开源"):
		return fmt.Sprintf("%s是一款开源工具，提供可靠的技术解决方案。", title)
	default:
		return fmt.Sprintf("%s是一款专业的工具软件，为用户提供高效便捷的服务体验。", title)
	}
}

// resolveURL keeps a usable URL, recovers one from the long-form body
// otherwise, and falls back to the sentinel.
func (n *Normalizer) resolveURL(c domain.RecordCandidate) string {
	if usableURL(c.URL, n.rules.ExcludedDomains) {
		return c.URL
	}
	if recovered := urlFromBody(c.DetailedContent, n.rules.ExcludedDomains); recovered != "" {
		return recovered
	}
	return domain.URLSentinel
}

func (n *Normalizer) detailedContent(c domain.RecordCandidate, title string) string {
	if c.DetailedContent != "" {
		return formatDetailedContent(c.DetailedContent, title)
	}
	return synthesizeDetailedContent(title, c.URL, strings.TrimSpace(c.Description))
}

func (n *Normalizer) tagsFor(text, category string) []string {
	tags := make([]string, 0, maxTags)
	seen := make(map[string]struct{})

	add := func(tag string) {
		if _, dup := seen[tag]; dup || len(tags) >= maxTags {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, seed := range categorySeedTags[category] {
		add(seed)
	}
	for _, tr := range n.tags {
		if tr.matcher.Contains(text) {
			add(tr.tag)
		}
	}

	return tags
}

// rating scales with quality tier and richness for articles; bare
// entries get a flat default.
func (n *Normalizer) rating(c domain.RecordCandidate) float64 {
	if c.Origin == domain.OriginEntry {
		return entryDefaultRating
	}

	rating := articleBaseRating
	if c.QualityTier == domain.TierExcellent {
		rating += excellentBonus
	}
	if c.WordCount > longArticleWords {
		rating += longArticleBonus
	}
	if c.ImageCount > richImageCount {
		rating += richImageBonus
	}
	if rating > maxRating {
		rating = maxRating
	}
	return math.Round(rating*10) / 10
}

func (n *Normalizer) isFree(text string) bool {
	if n.free.Contains(text) {
		return true
	}
	return !n.paid.Contains(text)
}

func (n *Normalizer) publishedAt(c domain.RecordCandidate) time.Time {
	if c.PublishedAt != nil {
		return *c.PublishedAt
	}
	return n.runTime
}
