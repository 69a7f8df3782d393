// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollconnect/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageHome     = "home.html"
	PageCreate   = "create.html"
	PagePolls    = "polls.html"
	PageEdit     = "edit.html"
	PageShare    = "share.html"
	PageError    = "error.html"
)

var pages = []string{
	PageLogin, PageRegister, PageHome, PageCreate,
	PagePolls, PageEdit, PageShare, PageError,
}

// Page is the data every template receives
type Page struct {
	Title    string
	Username string
	Flash    *models.Flash
	Data     any
}

var funcs = template.FuncMap{
	"ago":     humanize.Time,
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
	"percent": func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
	"lines":   func(s []string) string { return strings.Join(s, "\n") },
}

type Renderer struct {
	templates map[string]*template.Template
}

// New parses the layout together with every page template
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Render executes a page into a buffer first so a template error never
// leaves a half-written response
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.templates[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		slog.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error renders the error page with a plain message
func (r *Renderer) Error(w http.ResponseWriter, status int, username, message string) {
	r.Render(w, status, PageError, Page{
		Title:    http.StatusText(status),
		Username: username,
		Data:     message,
	})
}
