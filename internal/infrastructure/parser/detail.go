package parser

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"arxivdigest/internal/ports"
)

const abstractCacheBucket = "abstracts"

// DetailClient fetches the full abstract from an entry's own page. Failures
// are silent; the caller keeps the short listing excerpt.
type DetailClient struct {
	client *http.Client
	cache  ports.Cache
	logger *slog.Logger
}

var _ ports.DetailFetcher = (*DetailClient)(nil)

// NewDetailClient wires an HTTP client and the shared collaborator cache.
func NewDetailClient(client *http.Client, cache ports.Cache, logger *slog.Logger) *DetailClient {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &DetailClient{client: client, cache: cache, logger: logger}
}

// FetchAbstract returns the full abstract text for absURL, or "" on any
// failure. Successful lookups are cached by URL; failures are not, so a
// transient error can be retried on a later run.
func (d *DetailClient) FetchAbstract(ctx context.Context, absURL string) string {
	if absURL == "" {
		return ""
	}
	if d.cache != nil {
		if text, ok := d.cache.Get(abstractCacheBucket, absURL); ok {
			return text
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, absURL, nil)
	if err != nil {
		return ""
	}
	for k, v := range httpHeaders {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.debug("detail fetch failed", "url", absURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.debug("detail fetch failed", "url", absURL, "status", resp.Status)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	blockquote := doc.Find("blockquote.abstract").First()
	if blockquote.Length() == 0 {
		return ""
	}

	text := collapseText(blockquote)
	if strings.HasPrefix(strings.ToLower(text), "abstract:") {
		text = strings.TrimSpace(text[len("abstract:"):])
	}

	if d.cache != nil && text != "" {
		_ = d.cache.Set(abstractCacheBucket, absURL, text)
	}
	return text
}

func (d *DetailClient) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
