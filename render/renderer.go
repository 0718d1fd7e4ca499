// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/survey-insights/survey"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome     = "home"
	PageInsights = "insights"
	PageError    = "error"
	PageThanks   = "thanks"
)

// LoadErrorMessage is shown when the sheet could not be fetched.
const LoadErrorMessage = "Could not load insights."

var funcs = template.FuncMap{
	"width": func(p float64) string {
		return strconv.FormatFloat(p, 'f', 2, 64) + "%"
	},
	"facetLabel": func(f survey.Facet) string {
		switch f {
		case survey.FacetMaritalStatus:
			return "Status"
		case survey.FacetAgeGroup:
			return "Age"
		}
		s := string(f)
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"ms": func(d time.Duration) int64 {
		return d.Milliseconds()
	},
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Has reports whether a named template exists.
func (r *Renderer) Has(name string) bool {
	return r.tmpl.Lookup(name) != nil
}

// Page renders a full HTML page with the given status. The page is rendered
// into a buffer first so a template error never leaves a half-written body.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Fragment renders a named block into w. A block that does not exist renders
// nothing instead of failing the page around it.
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	if !r.Has(name) {
		slog.Debug("skipping missing fragment", "name", name)
		return nil
	}
	return r.tmpl.ExecuteTemplate(w, name, data)
}
