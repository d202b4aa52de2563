package domain

// LabelCount pairs a label (author, section, phrase) with an occurrence count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats is recomputed per run from the parsed articles; it carries no state
// between runs.
type Stats struct {
	Total            int          `json:"total"`
	TotalAuthorships int          `json:"total_authorships"`
	UniqueAuthors    int          `json:"unique_authors"`
	SectionCounts    []LabelCount `json:"section_counts"`
	TopAuthors       []LabelCount `json:"top_authors"`
	TopPhrases       []LabelCount `json:"top_phrases"`
	AverageAuthors   float64      `json:"average_authors"`
}

// SubjectGroup holds the articles of one primary subject, in listing order.
type SubjectGroup struct {
	Name     string
	Articles []Article
}

// SectionGroup holds one section's articles bucketed by primary subject.
// Subjects appear in first-seen order.
type SectionGroup struct {
	Label    string
	Subjects []SubjectGroup
}

// Grouped is the two-level classification sectionLabel -> primarySubject ->
// articles. Slices (not maps) so that iteration order is stable.
type Grouped struct {
	Sections []SectionGroup
}

// Flatten returns all articles in grouping order.
func (g Grouped) Flatten() []Article {
	var out []Article
	for _, sec := range g.Sections {
		for _, subj := range sec.Subjects {
			out = append(out, subj.Articles...)
		}
	}
	return out
}
