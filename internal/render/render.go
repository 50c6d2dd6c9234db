// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site. Every
// page template is paired with the shared base layout and receives the
// localization table through template functions.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"pocsclinic/internal/content"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title string          // Page title for <title> tag
	Lang  models.Language // Language the page is rendered in
	Path  string          // Request path, used by the language switch
	Data  map[string]any  // Page-specific data
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	templates map[string]*template.Template
	table     *i18n.Table
}

// New parses all page templates from the embedded filesystem. A nil table
// uses the embedded localization table.
func New(table *i18n.Table) (*Renderer, error) {
	if table == nil {
		table = i18n.Default()
	}
	r := &Renderer{
		templates: make(map[string]*template.Template),
		table:     table,
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap()).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

func (rn *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		// t looks up a localized string.
		"t": func(lang models.Language, key string) string {
			return rn.table.T(lang, key)
		},
		// tf substitutes one {{name}} placeholder.
		"tf": func(lang models.Language, key, name, value string) string {
			return rn.table.Format(lang, key, map[string]string{name: value})
		},
		"date": func(date string, lang models.Language) string {
			return content.FormatDate(date, lang)
		},
		// href appends the language to an internal link.
		"href": func(path string, lang models.Language) string {
			return withLang(path, lang)
		},
		// switchLang links the current page in the other language.
		"switchLang": func(path string, lang models.Language) string {
			other := models.LanguageEN
			if lang == models.LanguageEN {
				other = models.LanguageZH
			}
			return withLang(path, other)
		},
		"add": func(a, b int) int { return a + b },
	}
}

// withLang sets the lang query parameter on path, keeping other parameters.
func withLang(path string, lang models.Language) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set("lang", string(lang))
	u.RawQuery = q.Encode()
	return u.String()
}

// Has reports whether a page template exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Execute renders the named page with the base layout into w.
func (rn *Renderer) Execute(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Bytes renders the named page into a buffer, for callers that cache the
// result.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.Execute(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Page renders a full page with the given status. Rendering happens into a
// buffer first so a template error still produces a clean 500.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	if data.Path == "" {
		data.Path = r.URL.Path
	}
	body, err := rn.Bytes(name, data)
	if err != nil {
		slog.Error("render page", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	HTML(w, status, body)
}

// HTML writes an already rendered page.
func HTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
