package domain

// ArticleView is the JSON shape embedded into the generated page.
type ArticleView struct {
	ID             string   `json:"arxiv_id"`
	Title          string   `json:"title"`
	AbsURL         string   `json:"abs_url"`
	PDFURL         string   `json:"pdf_url"`
	Authors        []string `json:"authors"`
	Abstract       string   `json:"abstract"`
	PrimarySubject string   `json:"primary_subject"`
	Subjects       []string `json:"subjects"`
	SectionLabel   string   `json:"section_type"`
	SubmissionDate string   `json:"submission_date"`
	Keywords       []string `json:"keywords"`
	Summary        string   `json:"summary"`
}

// NewArticleView converts an Article for embedding, formatting the date.
func NewArticleView(a Article) ArticleView {
	return ArticleView{
		ID:             a.ID,
		Title:          a.Title,
		AbsURL:         a.AbsURL,
		PDFURL:         a.PDFURL,
		Authors:        a.Authors,
		Abstract:       a.Abstract,
		PrimarySubject: a.PrimarySubject,
		Subjects:       a.Subjects,
		SectionLabel:   a.SectionLabel,
		SubmissionDate: a.SubmissionDate.Format("2006-01-02"),
		Keywords:       a.Keywords,
		Summary:        a.Summary,
	}
}

// SourcePayload is the per-source slice of the embedded JSON payload.
type SourcePayload struct {
	Label           string        `json:"label"`
	URL             string        `json:"url"`
	Date            string        `json:"date"`
	Articles        []ArticleView `json:"articles"`
	Stats           Stats         `json:"stats"`
	FavoriteMatches []string      `json:"favorite_matches"`
	KeywordMatches  []string      `json:"keyword_matches"`
}

// Payload is everything the client-side script needs to re-render sources.
type Payload struct {
	GeneratedAt   string                   `json:"generated_at"`
	Sources       map[string]SourcePayload `json:"sources"`
	Preferences   Preferences              `json:"preferences"`
	DefaultSource string                   `json:"default_source"`
}

// SourceTab identifies one configured source in the page header.
type SourceTab struct {
	Key   string
	Label string
}

// Page carries the server-rendered view of the default source plus the full
// payload for the client script.
type Page struct {
	GeneratedAt     string
	Date            string
	Label           string
	URL             string
	TotalPapers     int
	Sources         []SourceTab
	Stats           Stats
	Sections        []SectionGroup
	FavoriteMatches []Article
	KeywordMatches  []Article
	Preferences     Preferences
	Payload         Payload
}
