//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/rules"
)

func testRules(t *testing.T) *rules.RuleSet {
	t.Helper()

	rs, err := rules.Default()
	require.NoError(t, err)
	return rs
}

func TestKindClassifier_Classify(t *testing.T) {
	k := NewKindClassifier(testRules(t))

	manyLinks := strings.Repeat("一个[条目](https://example.com/item)链接。\n", 11)
	manyHeadings := strings.Repeat("## [条目标题](https://example.com/item)\n\n", 6)

	tests := []struct {
		name       string
		id         string
		body       string
		wantKind   string
		wantMethod string
	}{
		{
			name:       "numeric id wins over link density",
			id:         "48250",
			body:       manyLinks,
			wantKind:   domain.KindArticle,
			wantMethod: "numeric_id",
		},
		{
			name:       "allowlisted directory",
			id:         "ai-tool",
			body:       "# 目录\n",
			wantKind:   domain.KindListingPage,
			wantMethod: "directory_allowlist",
		},
		{
			name:       "url-encoded directory prefix",
			id:         "_e5%9c%a8%e7%ba%bf",
			body:       "# 目录\n",
			wantKind:   domain.KindListingPage,
			wantMethod: "directory_allowlist",
		},
		{
			name:       "link density",
			id:         "misc-page",
			body:       manyLinks,
			wantKind:   domain.KindListingPage,
			wantMethod: "link_density",
		},
		{
			name:       "heading-list density",
			id:         "misc-page",
			body:       manyHeadings,
			wantKind:   domain.KindListingPage,
			wantMethod: "link_density",
		},
		{
			name:       "plain article",
			id:         "some-review",
			body:       "# 一篇评测\n\n正文内容，只有一个[链接](https://example.com)。\n",
			wantKind:   domain.KindArticle,
			wantMethod: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Classify(domain.RawDocument{ID: tt.id, Body: tt.body})

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMethod, got.Method)
		})
	}
}
