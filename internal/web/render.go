// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/entry"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex   = "index"
	pageAbout   = "about"
	pageJournal = "journal"
	pageAddUser = "addUser"
	pageError   = "error"
)

var pages = []string{pageIndex, pageAbout, pageJournal, pageAddUser, pageError}

type pageData struct {
	Title       string
	User        *middleware.Identity
	LoginFailed bool
	Entries     []entry.EntryResponse
	Message     string
	Error       string
	Detail      string
	Status      int
}

type renderer struct {
	templates map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	templates := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		tmpl, err := template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &renderer{templates: templates}, nil
}

// render executes into a buffer first so a template failure can still
// produce a clean 500.
func (rd *renderer) render(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	data pageData,
) {
	tmpl, ok := rd.templates[page]
	if !ok {
		core.InternalServerError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		core.InternalServerError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}
