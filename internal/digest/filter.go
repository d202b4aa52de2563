package digest

import (
	"strings"

	"arxivdigest/internal/domain"
)

// FilterByAuthors returns articles where any favorite name appears, case
// insensitively, as a substring of any author name. Deliberately permissive:
// "Smith" matches "John Smithson". An empty favorites list yields an empty
// result; the caller distinguishes that from "no matches" via the configured
// list length. Listing order is preserved.
func FilterByAuthors(articles []domain.Article, favorites []string) []domain.Article {
	lowered := lowerAll(favorites)
	if len(lowered) == 0 {
		return nil
	}

	var matched []domain.Article
	for _, article := range articles {
		if anyAuthorMatches(article.Authors, lowered) {
			matched = append(matched, article)
		}
	}
	return matched
}

// FilterByKeywords returns articles whose title or abstract contains any
// watch word, case insensitively. Listing order is preserved; an article
// matching several words appears once.
func FilterByKeywords(articles []domain.Article, keywords []string) []domain.Article {
	lowered := lowerAll(keywords)
	if len(lowered) == 0 {
		return nil
	}

	var matched []domain.Article
	for _, article := range articles {
		haystack := strings.ToLower(article.Title + " " + article.Abstract)
		for _, keyword := range lowered {
			if strings.Contains(haystack, keyword) {
				matched = append(matched, article)
				break
			}
		}
	}
	return matched
}

func anyAuthorMatches(authors, favorites []string) bool {
	for _, author := range authors {
		lowered := strings.ToLower(author)
		for _, favorite := range favorites {
			if strings.Contains(lowered, favorite) {
				return true
			}
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
