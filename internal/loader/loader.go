// Package loader reads the scraped corpus from disk: one subdirectory
// per document, each holding a content document with an optional
// leading metadata block.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/logger"
)

// ContentFileName is the primary content document inside each
// document directory. A secondary links document may sit next to it
// but is not required by the pipeline.
const ContentFileName = "content.md"

var (
	urlPattern         = regexp.MustCompile(`(?m)^url:\s*(https?://\S+)`)
	scrapedTimePattern = regexp.MustCompile(`(?m)^scraped_time:\s*(.+)$`)
	mainContentPattern = regexp.MustCompile(`(?im)^has_main_content:\s*(true|false)`)
	imagesCountPattern = regexp.MustCompile(`(?m)^images_count:\s*(\d+)`)
)

// Layouts accepted for the scraped_time metadata value.
var scrapedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Loader reads raw documents from a corpus root directory.
type Loader struct {
	root   string
	logger logger.Logger
}

// New creates a corpus loader for the given root directory.
func New(root string, log logger.Logger) *Loader {
	return &Loader{root: root, logger: log}
}

// LoadAll reads every document directory under the corpus root in
// directory-listing order. A missing root is fatal; a directory
// without a content document is logged and skipped.
func (l *Loader) LoadAll() ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read corpus root %s: %w", l.root, err)
	}

	docs := make([]domain.RawDocument, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		doc, err := l.Load(entry.Name())
		if err != nil {
			l.logger.Warn("skipping document",
				logger.String("document_id", entry.Name()),
				logger.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	l.logger.Info("corpus loaded",
		logger.String("root", l.root),
		logger.Int("documents", len(docs)))
	return docs, nil
}

// Load reads a single document directory.
func (l *Loader) Load(id string) (domain.RawDocument, error) {
	contentPath := filepath.Join(l.root, id, ContentFileName)
	data, err := os.ReadFile(contentPath)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("read %s: %w", contentPath, err)
	}

	body := string(data)
	return domain.RawDocument{
		ID:   id,
		Body: body,
		Meta: parseMetadata(body),
	}, nil
}

// parseMetadata pulls the key/value metadata block out of the document
// text. Missing keys default; they never error.
func parseMetadata(body string) domain.Metadata {
	meta := domain.Metadata{}

	if m := urlPattern.FindStringSubmatch(body); m != nil {
		meta.URL = strings.TrimSpace(m[1])
	}
	if m := mainContentPattern.FindStringSubmatch(body); m != nil {
		meta.HasMainContent = strings.EqualFold(m[1], "true")
	}
	if m := imagesCountPattern.FindStringSubmatch(body); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			meta.ImagesCount = n
		}
	}
	if m := scrapedTimePattern.FindStringSubmatch(body); m != nil {
		raw := strings.TrimSpace(m[1])
		for _, layout := range scrapedTimeLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				meta.ScrapedTime = &ts
				break
			}
		}
	}

	return meta
}
