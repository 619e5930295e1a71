//nolint:testpackage // Testing internal curation requires same package access
package curator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
)

var testRunTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()

	return NewNormalizer(newTestRules(t), testRunTime, logger.NewNop())
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"numeric prefix", "12. 智能写作助手", "智能写作助手"},
		{"cjk brackets", "【限时】智能写作助手", "限时智能写作助手"},
		{"square brackets", "[推荐] 智能写作助手", "推荐 智能写作助手"},
		{"trailing colon", "智能写作助手：", "智能写作助手"},
		{"whitespace runs", "智能  写作   助手", "智能 写作 助手"},
		{"length capped", strings.Repeat("长", 150), strings.Repeat("长", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.title))
		})
	}
}

func TestNormalize_EntryCandidate(t *testing.T) {
	n := newTestNormalizer(t)

	c := domain.RecordCandidate{
		ID:          "ai-tool#0",
		Origin:      domain.OriginEntry,
		RecordType:  domain.RecordTypeTool,
		SourceID:    "ai-tool",
		Title:       "AI写作平台SmartWrite",
		URL:         "https://smartwrite.example.com",
		Description: "一款免费的AI智能写作平台，支持多种文体的在线创作。",
	}

	rec := n.Normalize(c)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "AI写作平台SmartWrite", rec.Title)
	assert.Equal(t, "ai", rec.Category)
	assert.Equal(t, "https://smartwrite.example.com", rec.URL)
	assert.InDelta(t, 4.0, rec.Rating, 1e-9)
	assert.True(t, rec.IsFree)
	assert.False(t, rec.Featured)
	assert.NotEmpty(t, rec.Slug)
	assert.Contains(t, rec.Tags, "AI")
	assert.Contains(t, rec.Tags, "免费")
	assert.LessOrEqual(t, len(rec.Tags), maxTags)
	assert.Contains(t, rec.DetailedContent, "工具简介")
	assert.Equal(t, testRunTime, rec.PublishedAt)
	assert.Zero(t, rec.ReadTime)
}

func TestNormalize_TutorialArticle(t *testing.T) {
	n := newTestNormalizer(t)

	published := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := domain.RecordCandidate{
		ID:              "40100",
		Origin:          domain.OriginArticle,
		RecordType:      domain.RecordTypeTutorial,
		SourceID:        "40100",
		Title:           "零基础入门指南",
		Description:     "从安装环境到完成第一个项目的完整入门讲解。",
		DetailedContent: strings.Repeat("循序渐进的讲解内容。", 80),
		Category:        domain.CategoryProgramming,
		WordCount:       1000,
		QualityTier:     domain.TierGood,
		PublishedAt:     &published,
		SourceURL:       "https://example.com/40100",
	}

	rec := n.Normalize(c)

	assert.Equal(t, "development", rec.Category)
	assert.Equal(t, 5, rec.ReadTime) // 1000 words at 200 wpm
	assert.InDelta(t, 3.5, rec.Rating, 1e-9)
	assert.Equal(t, published, rec.PublishedAt)
	assert.Equal(t, "https://example.com/40100", rec.OriginalSource)
	assert.True(t, strings.HasPrefix(rec.DetailedContent, "# 零基础入门指南"))
}

func TestNormalize_RatingCapsAtFive(t *testing.T) {
	n := newTestNormalizer(t)

	c := domain.RecordCandidate{
		ID:          "50200",
		Origin:      domain.OriginArticle,
		RecordType:  domain.RecordTypeTool,
		Title:       "旗舰级修图软件深度评测",
		Description: "覆盖全部核心功能的深度评测，附大量实拍样张对比。",
		DetailedContent: strings.Repeat("非常细致的评测内容。", 80) +
			"\n官网 https://photo.example.com 下载。",
		Category:     domain.CategorySoftware,
		WordCount:    1500,
		ImageCount:   6,
		QualityTier:  domain.TierExcellent,
		QualityScore: 100,
	}

	rec := n.Normalize(c)

	assert.InDelta(t, 5.0, rec.Rating, 1e-9)
	assert.True(t, rec.Featured)
	assert.Equal(t, "productivity", rec.Category)
}

func TestNormalize_URLRecovery(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name    string
		url     string
		body    string
		wantURL string
	}{
		{
			name:    "usable url kept",
			url:     "https://keep.example.com",
			wantURL: "https://keep.example.com",
		},
		{
			name:    "recovered from body",
			url:     "#",
			body:    "详情见 https://recovered.example.com/tool 页面。",
			wantURL: "https://recovered.example.com/tool",
		},
		{
			name:    "sentinel when nothing usable",
			url:     "",
			wantURL: domain.URLSentinel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.RecordCandidate{
				Origin:          domain.OriginEntry,
				Title:           "链接恢复测试工具",
				URL:             tt.url,
				DetailedContent: tt.body,
			}
			assert.Equal(t, tt.wantURL, n.Normalize(c).URL)
		})
	}
}

func TestNormalize_SynthesizesShortDescriptions(t *testing.T) {
	n := newTestNormalizer(t)

	c := domain.RecordCandidate{
		Origin:      domain.OriginEntry,
		Title:       "二维码生成器",
		URL:         "https://qr.example.com",
		Description: "生成...",
	}

	rec := n.Normalize(c)
	assert.GreaterOrEqual(t, len([]rune(rec.Description)), minDescriptionRunes)
	assert.Contains(t, rec.Description, "二维码生成器")
}

func TestNormalize_PaidDetection(t *testing.T) {
	n := newTestNormalizer(t)

	c := domain.RecordCandidate{
		Origin:      domain.OriginEntry,
		Title:       "专业设计素材平台",
		URL:         "https://design.example.com",
		Description: "高质量素材资源站，部分内容需要订阅会员后下载。",
	}

	assert.False(t, n.Normalize(c).IsFree)
}

// Identical candidates normalize to identical records apart from the
// generated ID.
func TestNormalize_Deterministic(t *testing.T) {
	c := domain.RecordCandidate{
		Origin:      domain.OriginEntry,
		Title:       "AI写作平台SmartWrite",
		URL:         "https://smartwrite.example.com",
		Description: "一款免费的AI智能写作平台，支持多种文体的在线创作。",
	}

	a := newTestNormalizer(t).Normalize(c)
	b := newTestNormalizer(t).Normalize(c)

	a.ID, b.ID = "", ""
	assert.Equal(t, a, b)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	n := newTestNormalizer(t)

	candidates := []domain.RecordCandidate{
		{Origin: domain.OriginEntry, Title: "第一个工具条目", URL: "https://a.example.com"},
		{Origin: domain.OriginEntry, Title: "第二个工具条目", URL: "https://b.example.com"},
	}

	records := n.NormalizeAll(candidates)
	require.Len(t, records, 2)
	assert.Equal(t, "第一个工具条目", records[0].Title)
	assert.Equal(t, "第二个工具条目", records[1].Title)
}
