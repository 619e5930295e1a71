package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/curator/internal/config"
	"github.com/jonesrussell/curator/internal/domain"
	"github.com/jonesrussell/curator/internal/history"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/pipeline"
	"github.com/jonesrussell/curator/internal/report"
	"github.com/jonesrussell/curator/internal/rules"
)

const listingBody = `url: https://ahhhhfs.com/ai-tool/
images_count: 0

# AI工具导航

## [SmartWrite智能写作平台](https://smartwrite.example.com) "一款基于人工智能的写作辅助平台，支持多种文体的创作需求。"

## [PicMagic图像处理助手](https://picmagic.example.com) "在线图片压缩与格式转换服务，操作简单且响应速度很快。"

## [下一页](https://ahhhhfs.com/ai-tool/page/2/)
`

func articleBody() string {
	return `url: https://note-review.example.com/67890
scraped_time: 2025-05-20 09:00:00
has_main_content: true
images_count: 0

# NoteFlow笔记软件深度评测

NoteFlow是一款界面简洁的笔记软件，支持多端同步、标签管理和全文检索，适合需要长期积累知识的用户使用，本文基于两周的日常使用记录整理。

## 功能特点

- 多端同步
- 全文检索

![主界面截图](https://img.example.com/noteflow-1.png)
![编辑器截图](https://img.example.com/noteflow-2.png)
![检索截图](https://img.example.com/noteflow-3.png)

` + strings.Repeat("这款笔记软件的标签体系让长期积累的内容保持整齐，检索速度也令人满意。", 40) + "\n"
}

func writeCorpusDoc(t *testing.T, root, id, content string) {
	t.Helper()

	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.md"), []byte(content), 0o644))
}

func testSetup(t *testing.T) (*config.Config, *rules.RuleSet) {
	t.Helper()

	tmp := t.TempDir()
	corpus := filepath.Join(tmp, "corpus")
	writeCorpusDoc(t, corpus, "ai-tool", listingBody)
	writeCorpusDoc(t, corpus, "67890", articleBody())

	cfg := &config.Config{
		CorpusDir: corpus,
		OutputDir: filepath.Join(tmp, "reports"),
		DataFile:  filepath.Join(tmp, "data", "records.json"),
		HistoryDB: filepath.Join(tmp, "history.db"),
	}

	rs, err := rules.Default()
	require.NoError(t, err)
	return cfg, rs
}

func TestPipeline_Run(t *testing.T) {
	cfg, rs := testSetup(t)
	p := pipeline.New(cfg, rs, logger.NewNop())

	result, err := p.Run(context.Background(), nil)
	require.NoError(t, err)

	for _, name := range []string{
		report.ClassificationFile,
		report.ExtractionFile,
		report.AcceptedFile,
		report.RejectedFile,
		report.SummaryFile,
	} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, "artifact %s should exist", name)
	}

	assert.Equal(t, 3, result.Summary.Candidates)
	assert.Equal(t, 3, result.Summary.Accepted)
	assert.Equal(t, 0, result.Summary.Rejected)
	assert.Equal(t, 100, result.Summary.KeepRatePercent)

	var set report.RecordSet
	require.NoError(t, report.Read(cfg.DataFile, &set))
	require.Equal(t, 3, set.Count)

	byTitle := make(map[string]domain.CanonicalRecord)
	for _, rec := range set.Records {
		byTitle[rec.Title] = rec
	}

	entry, ok := byTitle["SmartWrite智能写作平台"]
	require.True(t, ok)
	assert.Equal(t, "https://smartwrite.example.com", entry.URL)
	assert.Equal(t, "ai", entry.Category)

	article, ok := byTitle["NoteFlow笔记软件深度评测"]
	require.True(t, ok)
	assert.Equal(t, "productivity", article.Category)
	assert.True(t, article.Featured)
	assert.Equal(t, "https://note-review.example.com/67890", article.OriginalSource)

	// Slugs are unique within the emitted set.
	slugs := make(map[string]struct{})
	for _, rec := range set.Records {
		require.NotEmpty(t, rec.Slug)
		_, dup := slugs[rec.Slug]
		require.False(t, dup, "duplicate slug %s", rec.Slug)
		slugs[rec.Slug] = struct{}{}
	}
}

func TestPipeline_RecordsHistory(t *testing.T) {
	cfg, rs := testSetup(t)
	p := pipeline.New(cfg, rs, logger.NewNop())

	_, err := p.Run(context.Background(), nil)
	require.NoError(t, err)

	store, err := history.Open(cfg.HistoryDB)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.LastRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Documents)
	assert.Equal(t, 3, runs[0].Accepted)
}

func TestPipeline_StagesRunIndependently(t *testing.T) {
	cfg, rs := testSetup(t)
	ctx := context.Background()

	_, err := pipeline.New(cfg, rs, logger.NewNop()).Classify(ctx, nil)
	require.NoError(t, err)

	extraction, err := pipeline.New(cfg, rs, logger.NewNop()).Extract(ctx)
	require.NoError(t, err)
	assert.Len(t, extraction.Entries, 2)

	result, err := pipeline.New(cfg, rs, logger.NewNop()).Curate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.Accepted)

	set, err := pipeline.New(cfg, rs, logger.NewNop()).Emit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Count)
}

func TestPipeline_CurateRequiresPriorArtifacts(t *testing.T) {
	cfg, rs := testSetup(t)

	_, err := pipeline.New(cfg, rs, logger.NewNop()).Curate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestPipeline_ClassifyObserver(t *testing.T) {
	cfg, rs := testSetup(t)

	var total, ticks int
	observe := func(n int) func() {
		total = n
		return func() { ticks++ }
	}

	_, err := pipeline.New(cfg, rs, logger.NewNop()).Classify(context.Background(), observe)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, ticks)
}
