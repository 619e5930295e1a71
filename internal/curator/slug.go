package curator

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Slugger generates URL-safe slugs that are unique within one emitted
// record set. Collisions get a numeric suffix (-2, -3, ...), with the
// base trimmed so the suffixed slug still fits the length cap.
type Slugger struct {
	seen map[string]bool
}

// NewSlugger creates a slugger with an empty collision table.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]bool)}
}

// Slugify returns the unique slug for a title. The same title slugs
// identically across runs except for collision suffixes, which depend
// on emission order. The suffix skips over slugs already taken, so a
// natural base like "foo-2" never clashes with a suffixed "foo".
func (s *Slugger) Slugify(title string) string {
	base := MakeSlug(title)
	if !s.seen[base] {
		s.seen[base] = true
		return base
	}

	for n := 2; ; n++ {
		suffix := fmt.Sprintf("-%d", n)
		candidate := truncateSlug(base, maxSlugLength-len(suffix)) + suffix
		if !s.seen[candidate] {
			s.seen[candidate] = true
			return candidate
		}
	}
}

// MakeSlug builds a single slug without uniqueness handling: lowercase,
// ASCII [a-z0-9-] only, no leading/trailing or doubled hyphens, capped
// length. Slugifying an already-valid slug returns it unchanged.
func MakeSlug(title string) string {
	out := slug.Make(title)
	out = truncateSlug(out, maxSlugLength)
	if out == "" {
		return fallbackSlug
	}
	return out
}

func truncateSlug(s string, limit int) string {
	if len(s) > limit {
		s = s[:limit]
	}
	return strings.Trim(s, "-")
}
