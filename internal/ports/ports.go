package ports

import (
	"context"

	"arxivdigest/internal/domain"
)

// DetailFetcher retrieves the full abstract from an entry's own page.
// It returns "" on any failure; callers keep the short listing excerpt.
type DetailFetcher interface {
	FetchAbstract(ctx context.Context, absURL string) string
}

// Enricher asks the external model for keywords and a one-sentence summary.
// Callers degrade to the local fallbacks when it errors.
type Enricher interface {
	Enrich(ctx context.Context, abstract string) (domain.Enrichment, error)
}

// Cache stores collaborator results across calls within (memory) or across
// (bbolt) runs. Buckets separate abstracts from enrichment results.
type Cache interface {
	Get(bucket, key string) (string, bool)
	Set(bucket, key, value string) error
}

// Renderer turns the assembled page into the final HTML document.
type Renderer interface {
	Render(page domain.Page) ([]byte, error)
}
