//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryClassifier_FirstMatchOrdering(t *testing.T) {
	c := NewCategoryClassifier(testRules(t))

	tests := []struct {
		name  string
		docID string
		title string
		url   string
		body  string
		want  string
	}{
		{
			name:  "directory rule beats body keywords",
			docID: "learn-python",
			body:  "这篇内容大量提到人工智能。",
			want:  "tutorials",
		},
		{
			name:  "url rule beats body keywords",
			docID: "99001",
			url:   "https://example.com/software/some-app",
			body:  "其实讲的是编程开发。",
			want:  "software",
		},
		{
			name:  "body keywords in table order",
			docID: "99002",
			body:  "同时出现chatgpt和编程两个词。",
			want:  "ai-tools",
		},
		{
			name:  "fallback when nothing matches",
			docID: "99003",
			body:  "一段和任何类别都无关的文字。",
			want:  "others",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.docID, tt.title, tt.url, tt.body)
			assert.Equal(t, tt.want, got)
		})
	}
}
