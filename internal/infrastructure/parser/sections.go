package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// sectionSeparator delimits the section label from the date remainder in a
// listing heading, e.g. "New submissions for Mon, 3 Jun 2024 (showing ...)".
const sectionSeparator = " for "

// section is one heading-delimited group of entries sharing a label and date.
type section struct {
	Date  time.Time
	Label string
	List  *goquery.Selection
}

// extractSections walks the #dlpage container and yields (date, label, dl)
// triples in document order. The primary strategy matches headings carrying
// the separator token; when it finds nothing, a fallback traversal over raw
// dl blocks recovers dates from the nearest preceding dateline marker and
// labels from the nearest preceding heading.
func extractSections(doc *goquery.Document, today time.Time) ([]section, error) {
	dlpage := doc.Find("div#dlpage").First()
	if dlpage.Length() == 0 {
		return nil, fmt.Errorf("listing page does not contain the expected #dlpage container")
	}

	order := documentOrder(dlpage)
	lists := dlpage.Find("dl")

	var sections []section
	seen := map[*html.Node]bool{}

	dlpage.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
		heading := collapseText(h)
		label, remainder, found := strings.Cut(heading, sectionSeparator)
		if !found {
			return
		}
		dateStr, _, _ := strings.Cut(remainder, "(")

		dl := firstNodeAfter(lists, order, order[h.Get(0)])
		if dl == nil || seen[dl] {
			return
		}
		seen[dl] = true

		sections = append(sections, section{
			Date:  parseHeadingDate(dateStr, today),
			Label: strings.TrimSpace(label),
			List:  dlpage.FindNodes(dl),
		})
	})

	if len(sections) > 0 {
		return sections, nil
	}

	datelines := dlpage.Find("div.list-dateline")
	headings := dlpage.Find("h2, h3")
	lists.Each(func(_ int, dl *goquery.Selection) {
		pos := order[dl.Get(0)]

		date := midnightUTC(today)
		if node := lastNodeBefore(datelines, order, pos); node != nil {
			date = parseHeadingDate(collapseText(dlpage.FindNodes(node)), today)
		}

		label := "Unlabeled"
		if node := lastNodeBefore(headings, order, pos); node != nil {
			text := collapseText(dlpage.FindNodes(node))
			if before, _, found := strings.Cut(text, sectionSeparator); found {
				label = before
			} else {
				label = text
			}
		}

		sections = append(sections, section{Date: date, Label: label, List: dl})
	})

	return sections, nil
}

// documentOrder assigns depth-first indices to every node under root so that
// "nearest following"/"nearest preceding" lookups match document order.
func documentOrder(root *goquery.Selection) map[*html.Node]int {
	order := map[*html.Node]int{}
	i := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range root.Nodes {
		walk(n)
	}
	return order
}

// firstNodeAfter returns the candidate with the smallest document position
// strictly after pos, or nil.
func firstNodeAfter(candidates *goquery.Selection, order map[*html.Node]int, pos int) *html.Node {
	var best *html.Node
	for _, n := range candidates.Nodes {
		p, ok := order[n]
		if !ok || p <= pos {
			continue
		}
		if best == nil || p < order[best] {
			best = n
		}
	}
	return best
}

// lastNodeBefore returns the candidate with the largest document position
// strictly before pos, or nil.
func lastNodeBefore(candidates *goquery.Selection, order map[*html.Node]int, pos int) *html.Node {
	var best *html.Node
	for _, n := range candidates.Nodes {
		p, ok := order[n]
		if !ok || p >= pos {
			continue
		}
		if best == nil || p > order[best] {
			best = n
		}
	}
	return best
}
