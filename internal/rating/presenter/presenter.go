package presenter

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Presenter renders the upload form, rating results and errors as HTML pages.
type Presenter struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the embedded templates.
func New() (*Presenter, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Presenter{tmpl: tmpl, md: newMarkdown()}, nil
}

type pageView struct {
	L           *i18n.Localizer
	Lang        string
	Filename    string
	Gauge       GaugeView
	Suggestions template.HTML
	Error       string
	MaxSizeMB   int64
}

// RenderIndex writes the upload form.
func (p *Presenter) RenderIndex(w io.Writer, locale string, maxSize int64) error {
	l := i18n.NewLocalizer(locale)
	return p.tmpl.ExecuteTemplate(w, "index.html", pageView{
		L:         l,
		Lang:      l.GetLocale(),
		MaxSizeMB: maxSize >> 20,
	})
}

// RenderResult writes the filename, the score gauge and the suggestions.
func (p *Presenter) RenderResult(w io.Writer, locale string, rating *domain.Rating) error {
	l := i18n.NewLocalizer(locale)

	suggestions, err := renderMarkdown(p.md, rating.Suggestions)
	if err != nil {
		// fall back to escaped plain text
		suggestions = template.HTML("<p>" + template.HTMLEscapeString(rating.Suggestions) + "</p>")
	}

	return p.tmpl.ExecuteTemplate(w, "result.html", pageView{
		L:           l,
		Lang:        l.GetLocale(),
		Filename:    rating.Filename,
		Gauge:       NewGauge(l.T("ui.gauge_title"), rating.Score, rating.MaxScore),
		Suggestions: suggestions,
	})
}

// RenderError writes an error page with an already localized message.
func (p *Presenter) RenderError(w io.Writer, locale, filename, message string) error {
	l := i18n.NewLocalizer(locale)
	return p.tmpl.ExecuteTemplate(w, "error.html", pageView{
		L:        l,
		Lang:     l.GetLocale(),
		Filename: filename,
		Error:    message,
	})
}
