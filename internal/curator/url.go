package curator

import (
	"net/url"
	"strings"

	"github.com/jonesrussell/curator/internal/domain"
)

// usableURL reports whether raw is an absolute http(s) URL that does
// not point at a known non-canonical domain.
func usableURL(raw string, excludedDomains []string) bool {
	if raw == "" || raw == domain.URLSentinel {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return !domainExcluded(raw, excludedDomains)
}

// urlFromBody recovers the first usable absolute URL from long-form
// text, or returns empty.
func urlFromBody(body string, excludedDomains []string) string {
	for _, candidate := range bodyURL.FindAllString(body, -1) {
		candidate = strings.TrimRight(candidate, ".,;\"'")
		if usableURL(candidate, excludedDomains) {
			return candidate
		}
	}
	return ""
}

func domainExcluded(raw string, excludedDomains []string) bool {
	for _, d := range excludedDomains {
		if d != "" && strings.Contains(raw, d) {
			return true
		}
	}
	return false
}
