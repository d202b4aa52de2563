package parser

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"arxivdigest/internal/domain"
)

// extractEntry builds an Article from one dt/dd pair. It returns nil when no
// identifier anchor can be located; such entries are skipped, not fatal.
// Missing sub-elements default to empty fields.
func extractEntry(dt, dd *goquery.Selection, sectionLabel string, sectionDate time.Time) *domain.Article {
	anchor := dt.Find(`a[title="Abstract"]`).First()
	if anchor.Length() == 0 {
		anchor = dt.Find(`a[href*="/abs/"]`).First()
	}
	if anchor.Length() == 0 {
		return nil
	}

	href := anchor.AttrOr("href", "")
	id := strings.TrimSpace(anchor.Text())
	if id == "" {
		id = lastPathSegment(href)
	}
	absURL := resolveURL(href)

	pdfURL := ""
	if pdf := dt.Find(`a[title="Download PDF"]`).First(); pdf.Length() > 0 {
		pdfURL = resolveURL(pdf.AttrOr("href", ""))
	}

	title := descriptorText(dd.Find("div.list-title").First(), "Title:")

	authorsRaw := descriptorText(dd.Find("div.list-authors").First(), "Authors:")
	authors := splitAndTrim(authorsRaw, ",")

	abstractSel := dd.Find("p.mathjax").First()
	if abstractSel.Length() == 0 {
		abstractSel = dd.Find("div.mathjax").First()
	}
	abstract := descriptorText(abstractSel, "Abstract:")

	subjectsSel := dd.Find("div.list-subjects").First()
	subjectsText := descriptorText(subjectsSel, "Subjects:")
	subjects := splitAndTrim(subjectsText, ";")

	primary := ""
	if span := subjectsSel.Find("span.primary-subject").First(); span.Length() > 0 {
		primary = collapseText(span)
	}
	if primary == "" && len(subjects) > 0 {
		primary = subjects[0]
	}

	return &domain.Article{
		ID:             id,
		AbsURL:         absURL,
		PDFURL:         pdfURL,
		Title:          title,
		Authors:        authors,
		Abstract:       abstract,
		PrimarySubject: primary,
		Subjects:       subjects,
		SectionLabel:   sectionLabel,
		SubmissionDate: midnightUTC(sectionDate),
	}
}
