package digest

import "strings"

// summaryWordBudget caps the local summary; longer first sentences are cut
// and marked with an ellipsis.
const summaryWordBudget = 40

// LocalSummary produces the fallback one-sentence summary used when no
// enrichment is available: the abstract's first sentence, capped at the word
// budget.
func LocalSummary(abstract string) string {
	text := strings.Join(strings.Fields(abstract), " ")
	if text == "" {
		return ""
	}

	sentence := text
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 == len(text) || text[i+1] == ' ' {
			sentence = text[:i+1]
			break
		}
	}

	words := strings.Fields(sentence)
	if len(words) > summaryWordBudget {
		sentence = strings.Join(words[:summaryWordBudget], " ") + "..."
	}
	return sentence
}
