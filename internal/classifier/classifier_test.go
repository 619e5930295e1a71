//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
)

func TestClassifier_Classify(t *testing.T) {
	c := New(testRules(t), logger.NewNop())

	body := "# 智能图像生成器介绍\n\n" +
		"## 功能特点\n\n- 支持多种风格\n- 批量出图\n\n" +
		strings.Repeat("这是一段关于人工智能绘画的详细说明。", 40) + "\n"

	doc := domain.RawDocument{
		ID:   "73311",
		Body: body,
		Meta: domain.Metadata{
			URL:            "https://example.com/73311",
			HasMainContent: true,
		},
	}

	got := c.Classify(doc)

	assert.Equal(t, domain.KindArticle, got.Kind)
	assert.Equal(t, "智能图像生成器介绍", got.Title)
	assert.Equal(t, domain.CategoryAITools, got.Category)
	assert.Greater(t, got.WordCount, 500)
	require.NotEmpty(t, got.QualityTier)
}

// Classification is a pure function of the document and the rule
// table: repeated runs agree exactly.
func TestClassifier_Deterministic(t *testing.T) {
	c := New(testRules(t), logger.NewNop())

	doc := domain.RawDocument{
		ID:   "misc-entry",
		Body: "# 某个软件的介绍\n\n一段正文，提到软件与应用。\n",
		Meta: domain.Metadata{URL: "https://example.com/misc"},
	}

	first := c.Classify(doc)
	second := c.Classify(doc)

	assert.Equal(t, first, second)
}

func TestClassifier_ImageCountIgnoresMetadata(t *testing.T) {
	c := New(testRules(t), logger.NewNop())

	doc := domain.RawDocument{
		ID:   "11223",
		Body: "# 无图文章\n\n正文没有任何内联图片。\n",
		Meta: domain.Metadata{ImagesCount: 5},
	}

	got := c.Classify(doc)
	assert.Equal(t, 0, got.ImageCount)
}

func TestClassifier_ClassifyAll(t *testing.T) {
	c := New(testRules(t), logger.NewNop())

	docs := []domain.RawDocument{
		{ID: "10001", Body: "# 第一篇\n"},
		{ID: "10002", Body: "# 第二篇\n"},
		{ID: "10003", Body: "# 第三篇\n"},
	}

	ticks := 0
	got := c.ClassifyAll(docs, func() { ticks++ })

	require.Len(t, got, 3)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, "10001", got[0].ID)
	assert.Equal(t, "10003", got[2].ID)
}
