package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"arxivdigest/internal/domain"
	"arxivdigest/internal/ports"
)

//go:embed digest.tmpl
var digestTemplate string

// HTMLRenderer produces the single self-contained digest page.
type HTMLRenderer struct {
	tpl *template.Template
}

var _ ports.Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer parses the embedded page template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("digest").Funcs(templateFuncs()).Parse(digestTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse digest template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"subjectTotal": func(subjects []domain.SubjectGroup) int {
			n := 0
			for _, s := range subjects {
				n += len(s.Articles)
			}
			return n
		},
	}
}

type pageData struct {
	domain.Page
	PayloadJSON template.JS
}

// Render executes the template with the page and its embedded JSON payload.
// The payload is escaped so a literal "</script>" inside an abstract cannot
// break out of the data block.
func (r *HTMLRenderer) Render(page domain.Page) ([]byte, error) {
	raw, err := json.Marshal(page.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	escaped := strings.ReplaceAll(string(raw), "</", "<\\/")

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, pageData{Page: page, PayloadJSON: template.JS(escaped)}); err != nil {
		return nil, fmt.Errorf("execute digest template: %w", err)
	}
	return buf.Bytes(), nil
}
