package digest

import (
	"sort"
	"strings"

	"arxivdigest/internal/domain"
)

// counter counts strings while remembering first-seen order, so top-N
// rankings can break frequency ties by input order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the n most frequent entries; ties keep first-seen order.
func (c *counter) top(n int) []domain.LabelCount {
	items := make([]domain.LabelCount, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, domain.LabelCount{Label: key, Count: c.counts[key]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// ComputeStats derives the per-run aggregate numbers from the parsed
// articles and their grouping. When no article carries enrichment keywords,
// the top-phrases slot falls back to the locally extracted candidates.
func ComputeStats(articles []domain.Article, grouped domain.Grouped) domain.Stats {
	total := len(articles)

	totalAuthorships := 0
	uniqueAuthors := map[string]struct{}{}
	authorCounter := newCounter()
	keywordCounter := newCounter()
	for _, article := range articles {
		totalAuthorships += len(article.Authors)
		for _, author := range article.Authors {
			uniqueAuthors[strings.ToLower(author)] = struct{}{}
			authorCounter.add(author)
		}
		for _, keyword := range article.Keywords {
			if keyword != "" {
				keywordCounter.add(keyword)
			}
		}
	}

	sectionCounts := make([]domain.LabelCount, 0, len(grouped.Sections))
	for _, sec := range grouped.Sections {
		n := 0
		for _, subj := range sec.Subjects {
			n += len(subj.Articles)
		}
		sectionCounts = append(sectionCounts, domain.LabelCount{Label: sec.Label, Count: n})
	}

	topPhrases := keywordCounter.top(5)
	if len(topPhrases) == 0 {
		topPhrases = TopPhrases(articles, 3)
	}

	average := 0.0
	if total > 0 {
		average = float64(totalAuthorships) / float64(total)
	}

	return domain.Stats{
		Total:            total,
		TotalAuthorships: totalAuthorships,
		UniqueAuthors:    len(uniqueAuthors),
		SectionCounts:    sectionCounts,
		TopAuthors:       authorCounter.top(5),
		TopPhrases:       topPhrases,
		AverageAuthors:   average,
	}
}
