// Package rules defines the versioned rule table driving classification
// and curation: category keyword rules, blocklists, tag keywords and
// link exclusion patterns. All behavior differences between runs are
// configuration here, not forked code.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// CategoryRule assigns a topic category. Rules are evaluated in table
// order: directory-name matches first, then URL substrings, then body
// keywords. The first category that matches wins.
type CategoryRule struct {
	Name          string   `yaml:"name"`
	Directories   []string `yaml:"directories,omitempty"`
	URLSubstrings []string `yaml:"url_substrings,omitempty"`
	Keywords      []string `yaml:"keywords,omitempty"`
}

// TagRule maps functional keywords to one output tag.
type TagRule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is the full rule table. It is loaded once per run; the
// classifier and curator treat it as immutable.
type RuleSet struct {
	Version string `yaml:"version"`

	// Listing-page detection.
	ListingDirectories       []string `yaml:"listing_directories"`
	ListingDirectoryPrefixes []string `yaml:"listing_directory_prefixes"`

	// Category assignment, in priority order.
	Categories       []CategoryRule `yaml:"categories"`
	FallbackCategory string         `yaml:"fallback_category"`

	// Curation blocklists.
	PolicyBlocklist  []string `yaml:"policy_blocklist"`
	CourseKeywords   []string `yaml:"course_keywords"`
	OffTopicKeywords []string `yaml:"off_topic_keywords"`

	// Normalization tables.
	TagRules     []TagRule `yaml:"tag_rules"`
	PaidKeywords []string  `yaml:"paid_keywords"`
	FreeKeywords []string  `yaml:"free_keywords"`

	// Titles containing these read as tool articles rather than
	// tutorials.
	ToolKeywords []string `yaml:"tool_keywords"`

	// Link/URL handling.
	LinkExclusions  []string `yaml:"link_exclusions"`
	ExcludedDomains []string `yaml:"excluded_domains"`
	AdImageMarkers  []string `yaml:"ad_image_markers"`

	// Template placeholders left by earlier tooling.
	PlaceholderMarkers []string `yaml:"placeholder_markers"`

	linkExclusionPatterns []*regexp.Regexp
}

// Default returns the embedded rule table.
func Default() (*RuleSet, error) {
	return parse(defaultRules)
}

// Load reads a rule table from path, falling back to the embedded
// default when path is empty.
func Load(path string) (*RuleSet, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}
	rs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return rs, nil
}

func parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	if err := rs.compile(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func (rs *RuleSet) validate() error {
	if rs.Version == "" {
		return errors.New("rule table has no version")
	}
	if len(rs.Categories) == 0 {
		return errors.New("rule table defines no category rules")
	}
	for _, c := range rs.Categories {
		if c.Name == "" {
			return errors.New("category rule with empty name")
		}
	}
	if rs.FallbackCategory == "" {
		return errors.New("rule table has no fallback category")
	}
	return nil
}

func (rs *RuleSet) compile() error {
	rs.linkExclusionPatterns = make([]*regexp.Regexp, 0, len(rs.LinkExclusions))
	for _, expr := range rs.LinkExclusions {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("compile link exclusion %q: %w", expr, err)
		}
		rs.linkExclusionPatterns = append(rs.linkExclusionPatterns, re)
	}
	return nil
}

// LinkExcluded reports whether the url or label text matches a known
// navigation/pagination/ad pattern.
func (rs *RuleSet) LinkExcluded(url, label string) bool {
	for _, re := range rs.linkExclusionPatterns {
		if re.MatchString(url) || re.MatchString(label) {
			return true
		}
	}
	return false
}
