// Package pipeline wires the batch stages together: load, classify,
// extract, curate and emit. Each stage reads the previous stage's
// artifact from the output directory, so stages can be re-run
// independently after a rule-table edit.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jonesrussell/curator/internal/classifier"
	"github.com/jonesrussell/curator/internal/config"
	"github.com/jonesrussell/curator/internal/curator"
	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/extractor"
	"github.com/jonesrussell/curator/internal/history"
	"github.com/jonesrussell/curator/internal/loader"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/report"
	"github.com/jonesrussell/curator/internal/rules"
)

// Pipeline runs the curation stages against one corpus.
type Pipeline struct {
	cfg    *config.Config
	rules  *rules.RuleSet
	logger logger.Logger
	now    func() time.Time
}

// New creates a pipeline over the given configuration and rule table.
func New(cfg *config.Config, rs *rules.RuleSet, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		rules:  rs,
		logger: log,
		now:    time.Now,
	}
}

func (p *Pipeline) artifact(name string) string {
	return filepath.Join(p.cfg.OutputDir, name)
}

// Classify loads the corpus and classifies every document. observe, if
// non-nil, is called with the document count and returns a per-document
// callback, which drives the CLI progress bar.
func (p *Pipeline) Classify(_ context.Context, observe func(total int) func()) (*report.ClassificationReport, error) {
	docs, err := loader.New(p.cfg.CorpusDir, p.logger).LoadAll()
	if err != nil {
		return nil, err
	}

	var tick func()
	if observe != nil {
		tick = observe(len(docs))
	}

	classified := classifier.New(p.rules, p.logger).ClassifyAll(docs, tick)
	rep := report.NewClassificationReport(p.rules.Version, classified, p.now())

	if err := report.Write(p.artifact(report.ClassificationFile), rep); err != nil {
		return nil, err
	}

	p.logger.Info("classification complete",
		logger.Int("documents", rep.Stats.Total),
		logger.Int("listing_pages", rep.Stats.ListingPages),
		logger.Int("articles", rep.Stats.Articles))
	return rep, nil
}

// Extract pulls entries out of the classified listing pages. It reads
// the classification artifact and rejoins document bodies from the
// corpus, since bodies are not materialized in artifacts.
func (p *Pipeline) Extract(_ context.Context) (*report.ExtractionReport, error) {
	var classification report.ClassificationReport
	if err := report.Read(p.artifact(report.ClassificationFile), &classification); err != nil {
		return nil, err
	}
	docs := p.rejoinBodies(classification.Documents)

	return p.extract(docs)
}

func (p *Pipeline) extract(docs []domain.ClassifiedDocument) (*report.ExtractionReport, error) {
	entries := extractor.New(p.rules, p.logger).ExtractAll(docs)
	rep := &report.ExtractionReport{
		GeneratedAt: p.now(),
		RuleVersion: p.rules.Version,
		Entries:     entries,
	}
	if err := report.Write(p.artifact(report.ExtractionFile), rep); err != nil {
		return nil, err
	}

	p.logger.Info("extraction complete", logger.Int("entries", len(entries)))
	return rep, nil
}

// CurationResult bundles the outputs of one curation pass.
type CurationResult struct {
	Records    []domain.CanonicalRecord
	Rejections []domain.Rejection
	Summary    *report.CurationSummary
}

// Curate filters, dedupes and normalizes the extracted entries plus the
// promoted articles, reading both prior artifacts from the output
// directory.
func (p *Pipeline) Curate(ctx context.Context) (*CurationResult, error) {
	var classification report.ClassificationReport
	if err := report.Read(p.artifact(report.ClassificationFile), &classification); err != nil {
		return nil, err
	}
	var extraction report.ExtractionReport
	if err := report.Read(p.artifact(report.ExtractionFile), &extraction); err != nil {
		return nil, err
	}
	docs := p.rejoinBodies(classification.Documents)

	return p.curate(ctx, docs, extraction.Entries, &classification)
}

func (p *Pipeline) curate(
	ctx context.Context,
	docs []domain.ClassifiedDocument,
	entries []domain.ExtractedEntry,
	classification *report.ClassificationReport,
) (*CurationResult, error) {
	startedAt := p.now()

	candidates := curator.NewCandidateBuilder(p.rules, p.logger).Build(entries, docs)
	accepted, rejections := curator.NewFilter(p.rules, p.logger).Partition(candidates)

	deduped, duplicates := curator.NewDeduper(p.cfg.SimilarityThreshold, p.logger).Dedupe(accepted)
	rejections = append(rejections, duplicates...)

	records := curator.NewNormalizer(p.rules, startedAt, p.logger).NormalizeAll(deduped)

	finishedAt := p.now()
	summary := report.NewCurationSummary(p.rules.Version, len(candidates), records, rejections, finishedAt)

	if err := report.Write(p.artifact(report.AcceptedFile), &report.RecordSet{
		GeneratedAt: finishedAt,
		Count:       len(records),
		Records:     records,
	}); err != nil {
		return nil, err
	}
	if err := report.Write(p.artifact(report.RejectedFile), &report.RejectionReport{
		GeneratedAt: finishedAt,
		Rejections:  rejections,
	}); err != nil {
		return nil, err
	}
	if err := report.Write(p.artifact(report.SummaryFile), summary); err != nil {
		return nil, err
	}

	p.recordHistory(ctx, startedAt, finishedAt, classification, summary, rejections)

	p.logger.Info("curation complete",
		logger.Int("candidates", summary.Candidates),
		logger.Int("accepted", summary.Accepted),
		logger.Int("rejected", summary.Rejected),
		logger.Int("keep_rate_percent", summary.KeepRatePercent))

	return &CurationResult{Records: records, Rejections: rejections, Summary: summary}, nil
}

// Emit publishes the accepted record set to the site data file. The
// writer snapshots the previous data file before replacing it.
func (p *Pipeline) Emit(_ context.Context) (*report.RecordSet, error) {
	var set report.RecordSet
	if err := report.Read(p.artifact(report.AcceptedFile), &set); err != nil {
		return nil, err
	}
	if err := report.Write(p.cfg.DataFile, &set); err != nil {
		return nil, err
	}

	p.logger.Info("record set emitted",
		logger.String("path", p.cfg.DataFile),
		logger.Int("records", set.Count))
	return &set, nil
}

// Run executes every stage in sequence over a single corpus load,
// writing all artifacts and the final data file.
func (p *Pipeline) Run(ctx context.Context, observe func(total int) func()) (*CurationResult, error) {
	classification, err := p.Classify(ctx, observe)
	if err != nil {
		return nil, err
	}
	docs := p.rejoinBodies(classification.Documents)

	extraction, err := p.extract(docs)
	if err != nil {
		return nil, err
	}

	result, err := p.curate(ctx, docs, extraction.Entries, classification)
	if err != nil {
		return nil, err
	}

	if _, err := p.Emit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// rejoinBodies reloads document bodies from the corpus. Artifacts
// carry classification fields only; a document whose directory has
// disappeared since classification keeps an empty body and is logged.
func (p *Pipeline) rejoinBodies(docs []domain.ClassifiedDocument) []domain.ClassifiedDocument {
	l := loader.New(p.cfg.CorpusDir, p.logger)
	out := make([]domain.ClassifiedDocument, 0, len(docs))
	for _, doc := range docs {
		raw, err := l.Load(doc.ID)
		if err != nil {
			p.logger.Warn("document body unavailable, continuing without it",
				logger.String("id", doc.ID),
				logger.Error(err))
			out = append(out, doc)
			continue
		}
		doc.Body = raw.Body
		doc.Meta = raw.Meta
		out = append(out, doc)
	}
	return out
}

// recordHistory appends the run to the history store. History is an
// audit aid: failures are logged and never fail the batch.
func (p *Pipeline) recordHistory(
	ctx context.Context,
	startedAt, finishedAt time.Time,
	classification *report.ClassificationReport,
	summary *report.CurationSummary,
	rejections []domain.Rejection,
) {
	if p.cfg.HistoryDB == "" {
		return
	}
	store, err := history.Open(p.cfg.HistoryDB)
	if err != nil {
		p.logger.Warn("history store unavailable", logger.Error(err))
		return
	}
	defer store.Close()

	run := history.Run{
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		RuleVersion:  p.rules.Version,
		Documents:    classification.Stats.Total,
		ListingPages: classification.Stats.ListingPages,
		Articles:     classification.Stats.Articles,
		Candidates:   summary.Candidates,
		Accepted:     summary.Accepted,
		Rejected:     summary.Rejected,
	}
	if err := store.RecordRun(ctx, run, rejections); err != nil {
		p.logger.Warn("history record failed", logger.Error(err))
	}
}

// LoadRules loads the rule table from the configured path, falling back
// to the embedded default table.
func LoadRules(cfg *config.Config) (*rules.RuleSet, error) {
	if cfg.RulesFile != "" {
		rs, err := rules.Load(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules from %s: %w", cfg.RulesFile, err)
		}
		return rs, nil
	}
	return rules.Default()
}
