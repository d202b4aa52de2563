package domain

import "time"

// Article is one submission extracted from a listing page. It is constructed
// once during extraction; only Keywords and Summary may be filled in later by
// the enrichment step, before aggregation.
type Article struct {
	ID             string
	AbsURL         string
	PDFURL         string
	Title          string
	Authors        []string
	Abstract       string
	PrimarySubject string
	Subjects       []string
	SectionLabel   string
	SubmissionDate time.Time
	Keywords       []string
	Summary        string
}

// Enrichment is the best-effort result of the external keyword/summary call.
type Enrichment struct {
	Keywords []string
	Summary  string
}

// Preferences holds the user's watch lists. Entries are trimmed and non-empty
// by the time they leave the config loader.
type Preferences struct {
	FavoriteAuthors []string `json:"favorite_authors"`
	Keywords        []string `json:"keywords"`
}
