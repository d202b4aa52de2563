package digest

import "arxivdigest/internal/domain"

// Classify buckets articles by section label, then by primary subject.
// Buckets appear in first-seen order and keep the listing order of their
// articles, so equal inputs always produce identical output. Articles sharing
// an external id across sections stay in both buckets; the source repeats
// entries and that duplication is accepted as-is.
func Classify(articles []domain.Article) domain.Grouped {
	var grouped domain.Grouped
	sectionIdx := map[string]int{}
	subjectIdx := map[string]map[string]int{}

	for _, article := range articles {
		si, ok := sectionIdx[article.SectionLabel]
		if !ok {
			si = len(grouped.Sections)
			sectionIdx[article.SectionLabel] = si
			subjectIdx[article.SectionLabel] = map[string]int{}
			grouped.Sections = append(grouped.Sections, domain.SectionGroup{Label: article.SectionLabel})
		}

		section := &grouped.Sections[si]
		subjects := subjectIdx[article.SectionLabel]
		pi, ok := subjects[article.PrimarySubject]
		if !ok {
			pi = len(section.Subjects)
			subjects[article.PrimarySubject] = pi
			section.Subjects = append(section.Subjects, domain.SubjectGroup{Name: article.PrimarySubject})
		}

		section.Subjects[pi].Articles = append(section.Subjects[pi].Articles, article)
	}

	return grouped
}
