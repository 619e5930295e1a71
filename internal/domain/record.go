package domain

import "time"

// Rejection reason codes. Rejections are a normal terminal outcome, not
// errors; they are recorded in the curation report.
const (
	ReasonPolicyViolation = "policy-violation"
	ReasonLowQuality      = "low-quality"
	ReasonOffTopic        = "off-topic"
	reasonDuplicatePrefix = "duplicate-of:"
)

// ReasonDuplicateOf builds the rejection reason for a near-duplicate of
// an already-accepted candidate.
func ReasonDuplicateOf(id string) string {
	return reasonDuplicatePrefix + id
}

// URLSentinel is emitted when no usable URL could be recovered.
const URLSentinel = "#"

// CanonicalRecord is the output schema consumed by the website's data
// layer. Field names and types are a contract with the rendering layer
// and must not change without a corresponding update there.
type CanonicalRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	URL             string    `json:"url"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Rating          float64   `json:"rating"`
	IsFree          bool      `json:"isFree"`
	Featured        bool      `json:"featured"`
	Slug            string    `json:"slug"`
	DetailedContent string    `json:"detailedContent"`
	PublishedAt     time.Time `json:"publishedAt"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
	OriginalSource  string    `json:"originalSource,omitempty"`
	ReadTime        int       `json:"readTime,omitempty"`
}

// Rejection records a candidate excluded by the curator together with
// its machine-readable reason code.
type Rejection struct {
	CandidateID string `db:"candidate_id" json:"candidate_id"`
	SourceID    string `db:"source_id"    json:"source_id"`
	Title       string `db:"title"        json:"title"`
	Reason      string `db:"reason"       json:"reason"`
}
