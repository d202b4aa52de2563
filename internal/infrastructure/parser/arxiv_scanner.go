package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"arxivdigest/internal/domain"
	"arxivdigest/internal/ports"
	"arxivdigest/internal/scanner"
)

// httpHeaders imitate a browser; arXiv serves a block page to bare clients.
var httpHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// ArxivScanner fetches a listing page and extracts the requested day's
// articles, section by section.
type ArxivScanner struct {
	client *http.Client
	detail ports.DetailFetcher
	logger *slog.Logger
	now    func() time.Time
}

// NewArxivScanner wires an HTTP client and the optional detail-page fetcher.
func NewArxivScanner(client *http.Client, detail ports.DetailFetcher, logger *slog.Logger) *ArxivScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ArxivScanner{client: client, detail: detail, logger: logger, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (a *ArxivScanner) Name() string {
	return "arxiv"
}

// Scan fetches the source's listing page and returns all articles from
// sections matching the requested day. When no section matches, it falls back
// to the most recent date found on the page and emits a notice.
func (a *ArxivScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	doc, err := a.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.Key, err)
	}

	sections, err := extractSections(doc, a.now())
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.Key, err)
	}

	target := midnightUTC(req.Day)
	matching := sectionsForDate(sections, target)
	if len(matching) == 0 && len(sections) > 0 {
		latest := sections[0].Date
		for _, sec := range sections[1:] {
			if sec.Date.After(latest) {
				latest = sec.Date
			}
		}
		matching = sectionsForDate(sections, latest)
		a.warn("no entries for requested date, falling back to most recent",
			"source", req.Key,
			"requested", target.Format("2006-01-02"),
			"fallback", latest.Format("2006-01-02"))
	}

	var articles []domain.Article
	for _, sec := range matching {
		sec.List.Find("dt").Each(func(_ int, dt *goquery.Selection) {
			dd := dt.NextAllFiltered("dd").First()
			if dd.Length() == 0 {
				return
			}
			article := extractEntry(dt, dd, sec.Label, sec.Date)
			if article == nil {
				return
			}
			if a.detail != nil && article.AbsURL != "" {
				if full := a.detail.FetchAbstract(ctx, article.AbsURL); full != "" {
					article.Abstract = full
				}
			}
			articles = append(articles, *article)
		})
	}

	return articles, nil
}

func (a *ArxivScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range httpHeaders {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing %s returned %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", pageURL, err)
	}

	return doc, nil
}

func sectionsForDate(sections []section, date time.Time) []section {
	var out []section
	for _, sec := range sections {
		if sec.Date.Equal(date) {
			out = append(out, sec)
		}
	}
	return out
}

func (a *ArxivScanner) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
