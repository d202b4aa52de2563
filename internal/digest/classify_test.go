package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxivdigest/internal/domain"
)

func art(id, section, subject string, authors ...string) domain.Article {
	return domain.Article{
		ID:             id,
		SectionLabel:   section,
		PrimarySubject: subject,
		Authors:        authors,
	}
}

func TestClassifyGroupsInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		art("1", "New submissions", "cs.CV"),
		art("2", "New submissions", "cs.RO"),
		art("3", "Cross submissions", "cs.CV"),
		art("4", "New submissions", "cs.CV"),
	}

	grouped := Classify(articles)
	require.Len(t, grouped.Sections, 2)

	assert.Equal(t, "New submissions", grouped.Sections[0].Label)
	assert.Equal(t, "Cross submissions", grouped.Sections[1].Label)

	subjects := grouped.Sections[0].Subjects
	require.Len(t, subjects, 2)
	assert.Equal(t, "cs.CV", subjects[0].Name)
	assert.Equal(t, "cs.RO", subjects[1].Name)

	// Articles keep listing order inside their bucket.
	require.Len(t, subjects[0].Articles, 2)
	assert.Equal(t, "1", subjects[0].Articles[0].ID)
	assert.Equal(t, "4", subjects[0].Articles[1].ID)
}

func TestClassifyFlattenPreservesEveryArticle(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		art("1", "A", "x"),
		art("2", "B", "y"),
		art("1", "B", "x"), // same id in two sections stays duplicated
	}

	flat := Classify(articles).Flatten()
	require.Len(t, flat, len(articles))

	ids := map[string]int{}
	for _, a := range flat {
		ids[a.ID]++
	}
	assert.Equal(t, map[string]int{"1": 2, "2": 1}, ids)
}

func TestClassifyEmpty(t *testing.T) {
	t.Parallel()

	grouped := Classify(nil)
	assert.Empty(t, grouped.Sections)
	assert.Empty(t, grouped.Flatten())
}
