package curator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	leadingFrontMatter = regexp.MustCompile(`(?s)^---.*?---\n`)
	leadingMetaBlock   = regexp.MustCompile(`^(?:\w+:[^\n]*\n)+\n*`)
	pageImagesSection  = regexp.MustCompile(`(?s)## 页面图片.*?---\n`)
	navLinkLine        = regexp.MustCompile(`(?m)^\* \[[^\]]*\]\([^)]*\)\n`)
	footerLinkLine     = regexp.MustCompile(`(?m)^本文链接：.*$`)
	relatedSection     = regexp.MustCompile(`(?s)### \*相关\*.*$`)
	blankRuns          = regexp.MustCompile(`\n{3,}`)

	imageRef   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRef    = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	bodyURL    = regexp.MustCompile(`https?://[^\s)]+`)
	imageURLIn = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)[^)]*\)`)
)

// cleanContent strips scraper furniture from an article body: the
// metadata block, the page-images section, navigation link lines, ad
// images/links and footer boilerplate.
func cleanContent(body string, adMarkers []string) string {
	content := leadingFrontMatter.ReplaceAllString(body, "")
	content = leadingMetaBlock.ReplaceAllString(content, "")
	content = pageImagesSection.ReplaceAllString(content, "")
	content = navLinkLine.ReplaceAllString(content, "")

	content = imageRef.ReplaceAllStringFunc(content, func(ref string) string {
		if containsAny(ref, adMarkers) {
			return ""
		}
		return ref
	})
	content = linkRef.ReplaceAllStringFunc(content, func(ref string) string {
		if containsAny(ref, adMarkers) {
			return ""
		}
		return ref
	})

	content = footerLinkLine.ReplaceAllString(content, "")
	content = relatedSection.ReplaceAllString(content, "")
	content = blankRuns.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// descriptionFrom pulls the first substantial paragraph line out of
// cleaned content.
func descriptionFrom(content, title string) string {
	const minLineLength = 50
	const maxLength = 200

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) < minLineLength {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "!") {
			continue
		}
		return truncateRunes(line, maxLength)
	}

	return fmt.Sprintf("%s的详细介绍请查看完整内容。", title)
}

// formatDetailedContent prefixes the cleaned content with a single
// top-level title heading, dropping any duplicate of it.
func formatDetailedContent(content, title string) string {
	dup := regexp.MustCompile(`(?m)^#+ ` + regexp.QuoteMeta(title) + `\s*\n`)
	content = dup.ReplaceAllString(content, "")
	return "# " + title + "\n\n" + strings.TrimSpace(content)
}

// synthesizeDetailedContent builds a long-form body for a bare listing
// entry that carries only a title, url and short description.
func synthesizeDetailedContent(title, url, description string) string {
	if description == "" {
		description = fmt.Sprintf("%s是一款实用的在线工具。", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("## 工具简介\n\n")
	b.WriteString(description)
	b.WriteString("\n\n## 使用方法\n\n")
	b.WriteString("1. 访问工具官网\n2. 按照页面提示操作\n3. 获得所需结果\n")
	if url != "" {
		fmt.Fprintf(&b, "\n## 相关链接\n\n- 官方网站: [%s](%s)\n", title, url)
	}
	b.WriteString("\n---\n\n*工具信息来源于网络收集整理，具体功能以官方网站为准。*")
	return b.String()
}

// firstImage returns the first non-advertisement image URL in the raw
// body, or empty.
func firstImage(body string, adMarkers []string) string {
	for _, m := range imageURLIn.FindAllStringSubmatch(body, -1) {
		ref, url := m[0], m[1]
		if !strings.HasPrefix(url, "http") {
			continue
		}
		if containsAny(ref, adMarkers) {
			continue
		}
		return url
	}
	return ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
