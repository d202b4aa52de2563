package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const arxivBaseURL = "https://arxiv.org"

// collapseText extracts the selection's text with runs of whitespace
// collapsed to single spaces and the ends trimmed.
func collapseText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// descriptorText returns the selection's collapsed text with a leading
// descriptor label ("Title:", "Authors:", ...) stripped when present.
// A missing selection yields "".
func descriptorText(sel *goquery.Selection, prefix string) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	text := collapseText(sel)
	if strings.HasPrefix(text, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	return text
}

// resolveURL resolves href against the arXiv base URL.
func resolveURL(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(arxivBaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// lastPathSegment returns the final segment of a URL path, used to derive an
// identifier when the anchor carries no visible text.
func lastPathSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// splitAndTrim splits on sep, trims each part and drops empties, preserving
// the source order.
func splitAndTrim(text, sep string) []string {
	var out []string
	for _, part := range strings.Split(text, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
