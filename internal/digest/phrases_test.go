package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxivdigest/internal/domain"
)

func TestCandidatePhrases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "stopwords and short tokens close phrases",
			in:   "A Fast and Robust Method for 3D Pose Estimation",
			want: []string{"fast", "robust method", "3d pose estimation"},
		},
		{
			name: "digits are dropped without closing the phrase",
			in:   "trained on 12 million images",
			want: []string{"trained", "million images"},
		},
		{
			name: "long runs become sliding windows",
			in:   "deep convolutional neural network feature extraction",
			want: []string{
				"deep convolutional neural network",
				"convolutional neural network feature",
				"neural network feature extraction",
			},
		},
		{
			name: "punctuation alone does not close a phrase",
			in:   "graph-based segmentation, fast",
			want: []string{"graph based segmentation fast"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, candidatePhrases(tc.in, maxPhraseWords))
		})
	}
}

func TestCandidatePhrasesIdempotentOverRepeats(t *testing.T) {
	t.Parallel()

	first := candidatePhrases("robust method for pose estimation", maxPhraseWords)
	second := candidatePhrases("robust method for pose estimation", maxPhraseWords)
	assert.Equal(t, first, second)
}

func TestTopPhrasesRanking(t *testing.T) {
	t.Parallel()

	mk := func(id, abstract string) domain.Article {
		a := art(id, "A", "x")
		a.Abstract = abstract
		return a
	}

	articles := []domain.Article{
		mk("1", "We study pose estimation. The pose estimation problem is hard."),
		mk("2", "Our pose estimation pipeline uses graph matching. The graph matching step dominates."),
	}

	top := TopPhrases(articles, 10)
	require.NotEmpty(t, top)

	// Length-weighted score ranks longer frequent phrases first; the exact
	// leader depends on the fixture, but scores must be non-increasing.
	prev := top[0].Count * wordCount(top[0].Label)
	for _, item := range top[1:] {
		score := item.Count * wordCount(item.Label)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestTopPhrasesCapsResults(t *testing.T) {
	t.Parallel()

	a := art("1", "A", "x")
	a.Abstract = "alpha beta. gamma delta. epsilon zeta. eta theta."

	top := TopPhrases([]domain.Article{a}, 2)
	assert.Len(t, top, 2)
}

func TestTopPhrasesDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	a := art("1", "A", "x")
	a.Abstract = "zebra crossing and apple orchard."

	top := TopPhrases([]domain.Article{a}, 2)
	require.Len(t, top, 2)
	// Equal score and count: lexicographic order decides.
	assert.Equal(t, "apple orchard", top[0].Label)
	assert.Equal(t, "zebra crossing", top[1].Label)
}

func wordCount(s string) int {
	n := 1
	for _, r := range s {
		if r == ' ' {
			n++
		}
	}
	return n
}
