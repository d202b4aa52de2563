package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"arxivdigest/internal/config"
	"arxivdigest/internal/digest"
	"arxivdigest/internal/domain"
	"arxivdigest/internal/ports"
	"arxivdigest/internal/scanner"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Registry    *scanner.Registry
	Sources     []config.SourceConfig
	Preferences domain.Preferences
	Enricher    ports.Enricher
	Renderer    ports.Renderer
	Logger      *slog.Logger
	OutputPath  string
	ArchiveDir  string
	Now         func() time.Time
}

// Pipeline implements the daily digest workflow: scan each source, enrich,
// classify, aggregate, render once.
type Pipeline struct {
	registry    *scanner.Registry
	sources     []config.SourceConfig
	preferences domain.Preferences
	enricher    ports.Enricher
	renderer    ports.Renderer
	logger      *slog.Logger
	outputPath  string
	archiveDir  string
	now         func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		registry:    deps.Registry,
		sources:     deps.Sources,
		preferences: deps.Preferences,
		enricher:    deps.Enricher,
		renderer:    deps.Renderer,
		logger:      deps.Logger,
		outputPath:  deps.OutputPath,
		archiveDir:  deps.ArchiveDir,
		now:         now,
	}
}

// ProcessDay generates the digest page for the requested day. Per-source
// failures are fatal for the run; per-entry and per-call failures degrade
// inside the collaborators.
func (p *Pipeline) ProcessDay(ctx context.Context, day time.Time) error {
	if p.registry == nil {
		return fmt.Errorf("scanner registry is not configured")
	}
	if len(p.sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	sourcesPayload := map[string]domain.SourcePayload{}
	var page domain.Page

	for i, src := range p.sources {
		strategy, err := p.registry.Resolve(src.Scanner)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.Key, err)
		}

		articles, err := strategy.Scan(ctx, scanner.Request{
			Day:   day,
			Key:   src.Key,
			Label: src.Label,
			URL:   src.URL,
		})
		if err != nil {
			return fmt.Errorf("scan source %s: %w", src.Key, err)
		}
		if len(articles) == 0 {
			return fmt.Errorf("no papers were parsed from %s", src.URL)
		}

		p.enrichArticles(ctx, articles)

		grouped := digest.Classify(articles)
		stats := digest.ComputeStats(articles, grouped)
		favorites := digest.FilterByAuthors(articles, p.preferences.FavoriteAuthors)
		watched := digest.FilterByKeywords(articles, p.preferences.Keywords)

		p.debug("source processed",
			"source", src.Key,
			"articles", len(articles),
			"favorite_matches", len(favorites),
			"keyword_matches", len(watched))

		pageDate := earliestDate(articles)
		sourcesPayload[src.Key] = domain.SourcePayload{
			Label:           src.Label,
			URL:             src.URL,
			Date:            pageDate.Format("2006-01-02"),
			Articles:        articleViews(articles),
			Stats:           stats,
			FavoriteMatches: articleIDs(favorites),
			KeywordMatches:  articleIDs(watched),
		}

		page.Sources = append(page.Sources, domain.SourceTab{Key: src.Key, Label: src.Label})
		if i == 0 {
			page.Label = src.Label
			page.URL = src.URL
			page.Date = pageDate.Format("2006-01-02")
			page.TotalPapers = stats.Total
			page.Stats = stats
			page.Sections = grouped.Sections
			page.FavoriteMatches = favorites
			page.KeywordMatches = watched
			page.Payload.DefaultSource = src.Key
		}
	}

	page.GeneratedAt = p.now().Format("2006-01-02 15:04 MST")
	page.Preferences = p.preferences
	page.Payload.GeneratedAt = page.GeneratedAt
	page.Payload.Sources = sourcesPayload
	page.Payload.Preferences = p.preferences

	if p.renderer == nil {
		return fmt.Errorf("renderer is not configured")
	}
	html, err := p.renderer.Render(page)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	if err := os.WriteFile(p.outputPath, html, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", p.outputPath, err)
	}
	p.debug("wrote digest", "path", p.outputPath, "bytes", len(html))

	if p.archiveDir != "" {
		name := fmt.Sprintf("digest-%s.html", page.Date)
		if err := os.MkdirAll(p.archiveDir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
		archivePath := filepath.Join(p.archiveDir, name)
		if err := os.WriteFile(archivePath, html, 0o644); err != nil {
			return fmt.Errorf("write archive %s: %w", archivePath, err)
		}
	}

	return nil
}

// enrichArticles fills keywords and summaries, one outstanding call at a
// time. Enrichment failures degrade to the local summarizer and are never
// fatal.
func (p *Pipeline) enrichArticles(ctx context.Context, articles []domain.Article) {
	for i := range articles {
		article := &articles[i]
		if p.enricher != nil && article.Abstract != "" {
			result, err := p.enricher.Enrich(ctx, article.Abstract)
			if err != nil {
				p.warn("enrichment failed", "id", article.ID, "error", err)
			} else {
				article.Keywords = result.Keywords
				article.Summary = result.Summary
			}
		}
		if article.Summary == "" {
			article.Summary = digest.LocalSummary(article.Abstract)
		}
	}
}

func earliestDate(articles []domain.Article) time.Time {
	earliest := articles[0].SubmissionDate
	for _, a := range articles[1:] {
		if a.SubmissionDate.Before(earliest) {
			earliest = a.SubmissionDate
		}
	}
	return earliest
}

func articleViews(articles []domain.Article) []domain.ArticleView {
	views := make([]domain.ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, domain.NewArticleView(a))
	}
	return views
}

func articleIDs(articles []domain.Article) []string {
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
