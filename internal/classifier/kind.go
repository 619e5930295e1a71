package classifier

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/rules"
)

// Listing-page density thresholds. A document exceeding either is
// treated as an index page rather than an article.
const (
	listingLinkThreshold    = 10
	listingHeadingThreshold = 5
)

var (
	numericIDPattern   = regexp.MustCompile(`^\d+$`)
	bodyLinkPattern    = regexp.MustCompile(`\]\(https?://[^)]+\)`)
	headingLinkPattern = regexp.MustCompile(`(?m)^#{2,3}\s*\[.*?\]`)
)

// KindResult carries the kind decision and how it was reached.
type KindResult struct {
	Kind   string `json:"kind"`
	Method string `json:"method"` // "numeric_id", "directory_allowlist", "link_density", "default"
}

// KindClassifier decides whether a document is a listing page or a
// single article. Explicit id-based rules always win over the density
// heuristics.
type KindClassifier struct {
	allowlist map[string]struct{}
	prefixes  []string
}

// NewKindClassifier builds the classifier from the rule table's
// listing-directory allow-list.
func NewKindClassifier(rs *rules.RuleSet) *KindClassifier {
	allowlist := make(map[string]struct{}, len(rs.ListingDirectories))
	for _, dir := range rs.ListingDirectories {
		allowlist[dir] = struct{}{}
	}
	return &KindClassifier{
		allowlist: allowlist,
		prefixes:  rs.ListingDirectoryPrefixes,
	}
}

// Classify determines the document kind from its id and body.
func (k *KindClassifier) Classify(doc domain.RawDocument) KindResult {
	// Numeric directory names are individual scraped articles.
	if numericIDPattern.MatchString(doc.ID) {
		return KindResult{Kind: domain.KindArticle, Method: "numeric_id"}
	}

	if k.isListingDirectory(doc.ID) {
		return KindResult{Kind: domain.KindListingPage, Method: "directory_allowlist"}
	}

	linkCount := len(bodyLinkPattern.FindAllString(doc.Body, -1))
	headingCount := len(headingLinkPattern.FindAllString(doc.Body, -1))
	if linkCount > listingLinkThreshold || headingCount > listingHeadingThreshold {
		return KindResult{Kind: domain.KindListingPage, Method: "link_density"}
	}

	return KindResult{Kind: domain.KindArticle, Method: "default"}
}

func (k *KindClassifier) isListingDirectory(id string) bool {
	if _, ok := k.allowlist[id]; ok {
		return true
	}
	for _, prefix := range k.prefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
