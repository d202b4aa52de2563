package digest

import (
	"regexp"
	"sort"
	"strings"

	"arxivdigest/internal/domain"
)

// maxPhraseWords caps candidate phrases; longer runs are expanded into
// sliding windows of exactly this length rather than truncated.
const maxPhraseWords = 4

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "with", "from", "that", "this", "have", "has",
		"are", "was", "were", "can", "will", "into", "than", "when", "what",
		"which", "using", "used", "been", "also", "such", "their", "our",
		"between", "other", "more", "less", "these", "those", "while",
		"where", "whose", "they", "them", "towards", "toward", "your",
		"about", "over", "both", "each", "two", "three", "four", "five",
		"new", "per", "via", "upon", "onto", "within", "without", "across",
		"through", "throughout", "among", "amongst", "because", "since",
		"after", "before", "during", "whereas", "however", "there",
		"therein", "thereof", "thereby", "here", "herein", "hereof",
		"hereby", "very", "many", "much", "most", "any", "all", "some",
		"none", "few", "either", "neither", "not", "nor", "yet", "but",
		"though", "although", "ever", "every", "even", "still", "quite",
		"rather", "further", "around", "outside", "inside",
	} {
		stopwords[w] = struct{}{}
	}
}

// candidatePhrases segments lowercased free text into keyword candidates.
// Stopwords and short purely-alphabetic tokens close the current phrase;
// purely numeric tokens are dropped without closing it. Overlong runs emit
// all contiguous maxWords-sized windows.
func candidatePhrases(text string, maxWords int) []string {
	var phrases []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		for _, words := range splitLongPhrase(current, maxWords) {
			phrases = append(phrases, strings.Join(words, " "))
		}
		current = nil
	}

	for _, token := range tokenSplit.Split(strings.ToLower(text), -1) {
		if token == "" {
			continue
		}
		if _, stop := stopwords[token]; stop || (len(token) <= 2 && isAlpha(token)) {
			flush()
			continue
		}
		if isDigits(token) {
			continue
		}
		current = append(current, token)
	}
	flush()

	return phrases
}

func splitLongPhrase(words []string, maxWords int) [][]string {
	if len(words) <= maxWords {
		return [][]string{words}
	}
	windows := make([][]string, 0, len(words)-maxWords+1)
	for i := 0; i+maxWords <= len(words); i++ {
		windows = append(windows, words[i:i+maxWords])
	}
	return windows
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// TopPhrases counts candidate phrases over every article's title and
// abstract and returns the n best. Ranking favors a length-weighted score
// (count times word count), then raw count, then lexicographic order, which
// makes the output a total order and therefore deterministic.
func TopPhrases(articles []domain.Article, n int) []domain.LabelCount {
	counts := map[string]int{}
	lengths := map[string]int{}
	var order []string

	for _, article := range articles {
		text := article.Title + " " + article.Abstract
		for _, phrase := range candidatePhrases(text, maxPhraseWords) {
			if _, ok := counts[phrase]; !ok {
				order = append(order, phrase)
				lengths[phrase] = len(strings.Fields(phrase))
			}
			counts[phrase]++
		}
	}

	items := make([]domain.LabelCount, 0, len(order))
	for _, phrase := range order {
		items = append(items, domain.LabelCount{Label: phrase, Count: counts[phrase]})
	}

	sort.Slice(items, func(i, j int) bool {
		si := items[i].Count * lengths[items[i].Label]
		sj := items[j].Count * lengths[items[j].Label]
		if si != sj {
			return si > sj
		}
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}
