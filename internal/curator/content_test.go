//nolint:testpackage // Testing internal curation requires same package access
package curator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAdMarkers = []string{"趣闲赚", "ihezu"}

func TestCleanContent(t *testing.T) {
	body := `---
url: https://example.com/12345
---
# 某工具评测

![正常截图](https://img.example.com/shot.png)

![趣闲赚广告](https://ads.example.com/banner.png)

[加入趣闲赚赚钱](https://ads.example.com/join)

正文段落，介绍这款产品的主要能力。

本文链接：https://example.com/12345
`

	content := cleanContent(body, testAdMarkers)

	assert.NotContains(t, content, "url: https")
	assert.NotContains(t, content, "趣闲赚")
	assert.NotContains(t, content, "本文链接")
	assert.Contains(t, content, "正常截图")
	assert.Contains(t, content, "正文段落")
}

func TestDescriptionFrom(t *testing.T) {
	long := "这是一段足够长的介绍文字，详细说明了产品的主要功能、适用场景以及与同类产品相比的差异化优势，" +
		"无论是个人用户还是团队协作都可以快速上手使用。"
	content := "# 标题\n\n短句。\n\n" + long + "\n"

	desc := descriptionFrom(content, "某工具")
	assert.Equal(t, long, desc)
}

func TestDescriptionFrom_FallsBackToTitle(t *testing.T) {
	desc := descriptionFrom("只有短句。", "某工具")
	assert.Contains(t, desc, "某工具")
}

func TestDescriptionFrom_TruncatesLongLines(t *testing.T) {
	content := strings.Repeat("很长的一句话反复出现", 40)

	desc := descriptionFrom(content, "某工具")
	assert.LessOrEqual(t, len([]rune(desc)), 200)
}

func TestFormatDetailedContent_DropsDuplicateHeading(t *testing.T) {
	got := formatDetailedContent("# 某工具\n\n正文内容。", "某工具")

	assert.True(t, strings.HasPrefix(got, "# 某工具\n\n"))
	assert.Equal(t, 1, strings.Count(got, "# 某工具"))
}

func TestSynthesizeDetailedContent(t *testing.T) {
	got := synthesizeDetailedContent("在线压缩工具", "https://zip.example.com", "快速压缩图片。")

	assert.Contains(t, got, "# 在线压缩工具")
	assert.Contains(t, got, "## 工具简介")
	assert.Contains(t, got, "## 使用方法")
	assert.Contains(t, got, "https://zip.example.com")
}

func TestFirstImage(t *testing.T) {
	body := "![趣闲赚横幅](https://ads.example.com/ad.png)\n" +
		"![截图](https://img.example.com/shot.png)\n"

	assert.Equal(t, "https://img.example.com/shot.png", firstImage(body, testAdMarkers))
	assert.Empty(t, firstImage("![本地](./local.png)", testAdMarkers))
}
