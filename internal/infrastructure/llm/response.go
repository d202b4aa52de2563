package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"arxivdigest/internal/domain"
)

var (
	jsonBlockExpr = regexp.MustCompile(`(?s)\{.*\}`)
	lineSplitExpr = regexp.MustCompile(`[\n,;]+`)
)

// parseEnrichment interprets a model response through tiered fallbacks, in
// order: strict JSON, a regex-extracted {...} block (covers code fences and
// stray prose), and finally a naive line/comma split. The first tier that
// yields keywords wins; the summary is only trusted from the structured
// tiers. Keywords are deduplicated case-insensitively and capped.
func parseEnrichment(content string, maxKeywords int) domain.Enrichment {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Enrichment{}
	}

	keywords, summary := parseStructured(content)
	if len(keywords) == 0 && summary == "" {
		if block := jsonBlockExpr.FindString(content); block != "" && block != content {
			keywords, summary = parseStructured(block)
		}
	}
	if len(keywords) == 0 {
		for _, part := range lineSplitExpr.Split(content, -1) {
			if part = strings.Trim(part, " •-\t"); part != "" {
				keywords = append(keywords, part)
			}
		}
	}

	return domain.Enrichment{
		Keywords: dedupeKeywords(keywords, maxKeywords),
		Summary:  strings.TrimSpace(summary),
	}
}

// parseStructured handles the two JSON shapes models actually produce: an
// object with "keywords" (and optionally "summary"), or a bare array.
func parseStructured(content string) (keywords []string, summary string) {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, ""
	}

	switch v := parsed.(type) {
	case map[string]any:
		if values, ok := v["keywords"].([]any); ok {
			keywords = stringItems(values)
		}
		if s, ok := v["summary"].(string); ok {
			summary = s
		}
	case []any:
		keywords = stringItems(v)
	}
	return keywords, summary
}

func stringItems(values []any) []string {
	var out []string
	for _, item := range values {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func dedupeKeywords(keywords []string, max int) []string {
	var unique []string
	seen := map[string]struct{}{}
	for _, keyword := range keywords {
		key := strings.ToLower(keyword)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, keyword)
		if len(unique) >= max {
			break
		}
	}
	return unique
}
