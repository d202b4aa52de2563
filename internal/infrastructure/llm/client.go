package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"arxivdigest/internal/config"
	"arxivdigest/internal/domain"
	"arxivdigest/internal/ports"
)

const (
	enrichmentCacheBucket = "enrichment"
	enrichAttempts        = 2
)

const systemPrompt = "You extract concise research keywords."

const promptTemplate = `Extract the %d most informative keywords (single words or short noun phrases) from the research abstract below, plus a one-sentence summary.
Respond with a JSON object of the form {"keywords": ["keyword 1", "keyword 2"], "summary": "..."} using at most %d keywords.

Abstract:
%s`

// Client asks an OpenRouter-style chat completions API for keywords and a
// one-sentence summary. Results (including failures) are cached by abstract
// text so duplicate entries cost one call.
type Client struct {
	endpoint     string
	model        string
	apiKey       string
	referer      string
	title        string
	keywordCount int
	cache        ports.Cache
	logger       *slog.Logger
	httpClient   *http.Client
}

var _ ports.Enricher = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.EnrichmentConfig, cache ports.Cache, logger *slog.Logger) *Client {
	return &Client{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		referer:      cfg.Referer,
		title:        cfg.Title,
		keywordCount: cfg.KeywordCount,
		cache:        cache,
		logger:       logger,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Enrich requests keywords and a summary for the abstract. A malformed
// response degrades through the tolerant parser rather than erroring; only
// transport-level failures surface as errors.
func (c *Client) Enrich(ctx context.Context, abstract string) (domain.Enrichment, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return domain.Enrichment{}, fmt.Errorf("enrichment client misconfigured")
	}

	abstract = strings.TrimSpace(abstract)
	if abstract == "" {
		return domain.Enrichment{}, nil
	}

	if cached, ok := c.cachedResult(abstract); ok {
		return cached, nil
	}

	content, err := c.complete(ctx, abstract)
	if err != nil {
		// Cache the failure too, matching the one-attempt-per-abstract
		// behavior expected for a run full of duplicate entries.
		c.storeResult(abstract, domain.Enrichment{})
		return domain.Enrichment{}, err
	}

	result := parseEnrichment(content, c.keywordCount)
	c.storeResult(abstract, result)
	return result, nil
}

func (c *Client) complete(ctx context.Context, abstract string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf(promptTemplate, c.keywordCount, c.keywordCount, abstract)},
		},
		"temperature": 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal enrichment payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < enrichAttempts; attempt++ {
		content, err := c.post(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request keywords: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("enrichment error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode enrichment response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("enrichment response carried no choices")
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func (c *Client) cachedResult(abstract string) (domain.Enrichment, bool) {
	if c.cache == nil {
		return domain.Enrichment{}, false
	}
	raw, ok := c.cache.Get(enrichmentCacheBucket, abstract)
	if !ok {
		return domain.Enrichment{}, false
	}
	var result domain.Enrichment
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return domain.Enrichment{}, false
	}
	return result, true
}

func (c *Client) storeResult(abstract string, result domain.Enrichment) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.cache.Set(enrichmentCacheBucket, abstract, string(raw)); err != nil && c.logger != nil {
		c.logger.Debug("enrichment cache write failed", "error", err)
	}
}
