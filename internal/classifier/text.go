package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

// NoTitleSentinel is returned when no heading could be extracted.
const NoTitleSentinel = "No Title Found"

// mainContentMarker is the heading the scraper inserts above the
// extracted page body.
const mainContentMarker = "主要内容"

var (
	topHeadingPattern    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	markedHeadingPattern = regexp.MustCompile(`## ` + mainContentMarker + `\s*\n\s*#\s+(.+)`)
	headingLinkTitle     = regexp.MustCompile(`(?m)^#{2,3}\s*\[([^\]]+)\]`)

	frontMatterPattern = regexp.MustCompile(`(?s)---.*?---`)
	imageRefPattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRefPattern     = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	codeFencePattern   = regexp.MustCompile("(?s)```.*?```")
	headingMarkPattern = regexp.MustCompile(`#{1,6}\s+`)
	emphasisPattern    = regexp.MustCompile(`\*\*|\*|__|\|`)
	latinWordPattern   = regexp.MustCompile(`[a-zA-Z]+`)

	subHeadingPattern = regexp.MustCompile(`(?m)^#{2,6}\s+`)
	listMarkPattern   = regexp.MustCompile(`[-*+]\s`)
)

// ExtractTitle pulls a best-effort title from the document body: the
// first top-level heading, then the first heading nested under the
// main-content marker, then the first heading-level link label.
func ExtractTitle(body string) string {
	if m := topHeadingPattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := markedHeadingPattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := headingLinkTitle.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return NoTitleSentinel
}

// CountWords counts CJK characters individually and Latin tokens as
// whole words, after stripping markdown furniture. The two counts are
// summed.
func CountWords(body string) int {
	clean := frontMatterPattern.ReplaceAllString(body, "")
	clean = codeFencePattern.ReplaceAllString(clean, "")
	clean = imageRefPattern.ReplaceAllString(clean, "")
	clean = linkRefPattern.ReplaceAllString(clean, "")
	clean = headingMarkPattern.ReplaceAllString(clean, "")
	clean = emphasisPattern.ReplaceAllString(clean, "")

	cjk := 0
	for _, r := range clean {
		if unicode.Is(unicode.Han, r) {
			cjk++
		}
	}
	latin := len(latinWordPattern.FindAllString(clean, -1))

	return cjk + latin
}

// CountImages counts image references in the raw body.
func CountImages(body string) int {
	return len(imageRefPattern.FindAllString(body, -1))
}

// HasStructure reports whether the body shows both headings and
// list/paragraph structure.
func HasStructure(body string) bool {
	return subHeadingPattern.MatchString(body) && listMarkPattern.MatchString(body)
}
