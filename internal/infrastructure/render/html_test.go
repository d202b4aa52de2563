package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxivdigest/internal/domain"
)

func samplePage() domain.Page {
	article := domain.Article{
		ID:             "arXiv:2406.00001",
		AbsURL:         "https://arxiv.org/abs/2406.00001",
		PDFURL:         "https://arxiv.org/pdf/2406.00001",
		Title:          "Neural Scene Reconstruction",
		Authors:        []string{"Alice Example", "Bob Sample"},
		Abstract:       "We reconstruct scenes. Includes a literal </script> sequence.",
		PrimarySubject: "Computer Vision and Pattern Recognition (cs.CV)",
		SectionLabel:   "New submissions",
		Summary:        "We reconstruct scenes.",
	}

	stats := domain.Stats{
		Total:            1,
		TotalAuthorships: 2,
		UniqueAuthors:    2,
		SectionCounts:    []domain.LabelCount{{Label: "New submissions", Count: 1}},
		TopAuthors:       []domain.LabelCount{{Label: "Alice Example", Count: 1}},
		AverageAuthors:   2,
	}

	payload := domain.Payload{
		GeneratedAt: "2024-06-03 12:00 UTC",
		Sources: map[string]domain.SourcePayload{
			"cs.CV": {
				Label:    "Computer Vision (cs.CV)",
				URL:      "https://arxiv.org/list/cs.CV/recent",
				Date:     "2024-06-03",
				Articles: []domain.ArticleView{domain.NewArticleView(article)},
				Stats:    stats,
			},
		},
		Preferences:   domain.Preferences{FavoriteAuthors: []string{"Alice Example"}},
		DefaultSource: "cs.CV",
	}

	return domain.Page{
		GeneratedAt: "2024-06-03 12:00 UTC",
		Date:        "2024-06-03",
		Label:       "Computer Vision (cs.CV)",
		URL:         "https://arxiv.org/list/cs.CV/recent",
		TotalPapers: 1,
		Sources:     []domain.SourceTab{{Key: "cs.CV", Label: "Computer Vision (cs.CV)"}},
		Stats:       stats,
		Sections: []domain.SectionGroup{
			{
				Label: "New submissions",
				Subjects: []domain.SubjectGroup{
					{Name: article.PrimarySubject, Articles: []domain.Article{article}},
				},
			},
		},
		Preferences: payload.Preferences,
		Payload:     payload,
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.Render(samplePage())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Neural Scene Reconstruction")
	assert.Contains(t, html, "New submissions")
	assert.Contains(t, html, "Computer Vision (cs.CV)")
	assert.Contains(t, html, `id="digest-data"`)
	assert.Contains(t, html, `"arxiv_id":"arXiv:2406.00001"`)

	// The abstract's "</script>" must not be able to close the data block:
	// the only unescaped closing tags are the page's own.
	payloadStart := strings.Index(html, `id="digest-data"`)
	require.Greater(t, payloadStart, 0)
	payloadBlock := html[payloadStart:]
	payloadBlock = payloadBlock[:strings.Index(payloadBlock, "</script>")]
	assert.NotContains(t, payloadBlock, "</script")
	assert.Contains(t, payloadBlock, `</script`)
}

func TestRenderEmptySources(t *testing.T) {
	t.Parallel()

	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	page := domain.Page{
		GeneratedAt: "2024-06-03 12:00 UTC",
		Payload:     domain.Payload{Sources: map[string]domain.SourcePayload{}},
	}
	out, err := r.Render(page)
	require.NoError(t, err)
	assert.Contains(t, string(out), "digest-data")
}
