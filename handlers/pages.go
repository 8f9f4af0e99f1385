// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/today-i-learned/category"
	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/models"
	"github.com/danielhkuo/today-i-learned/session"
)

// AppTitle is shown in the page title and header
const AppTitle = "Today I Learned"

//go:embed templates/*.html static/style.css
var assets embed.FS

type pageData struct {
	Title      string
	State      facts.State
	Categories []models.Category
	Alerts     []facts.Alert
	Remaining  int
}

type factRow struct {
	Fact     models.Fact
	Updating bool
}

// ParseTemplates parses the embedded page templates
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"upper":        strings.ToUpper,
		"emptyMessage": facts.EmptyMessage,
		"color":        category.Color,
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"row": func(p *pageData, f models.Fact) factRow {
			return factRow{Fact: f, Updating: p.State.Updating[f.ID]}
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(assets, "templates/*.html")
}

// PageHandler serves the server-rendered page. Requests sent by HTMX get
// the app fragment back; plain form posts are redirected to the page.
type PageHandler struct {
	sessions *session.Manager
	tmpl     *template.Template
	timeout  time.Duration
}

func NewPageHandler(sessions *session.Manager, tmpl *template.Template, timeout time.Duration) *PageHandler {
	return &PageHandler{sessions: sessions, tmpl: tmpl, timeout: timeout}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)
	h.render(w, "index.html", ctrl)
}

// SetCategory handles POST /category
func (h *PageHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	// Store failures are queued as alerts and shown on the next render
	if err := ctrl.SetCategory(ctx, r.FormValue("category")); errors.Is(err, facts.ErrUnknownCategory) {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	h.respond(w, r, ctrl)
}

// ToggleForm handles POST /form/toggle
func (h *PageHandler) ToggleForm(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)
	ctrl.ToggleForm()
	h.respond(w, r, ctrl)
}

// Submit handles POST /facts. An invalid form is re-rendered as typed,
// without messages.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	form := facts.Form{
		Text:     r.FormValue("text"),
		Source:   r.FormValue("source"),
		Category: r.FormValue("category"),
	}
	if _, err := ctrl.Submit(ctx, form); err != nil {
		slog.Debug("fact not shared", "error", err)
	}

	h.respond(w, r, ctrl)
}

// Vote handles POST /facts/{id}/vote/{counter}
func (h *PageHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	counter, err := models.ParseCounter(r.PathValue("counter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctrl := h.sessions.Controller(w, r)

	ctx, cancel := storeContext(r, h.timeout)
	defer cancel()

	if _, err := ctrl.Vote(ctx, id, counter); err != nil {
		slog.Debug("vote not recorded", "id", id, "error", err)
	}

	h.respond(w, r, ctrl)
}

// Style handles GET /static/style.css
func (h *PageHandler) Style(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, assets, "static/style.css")
}

func (h *PageHandler) respond(w http.ResponseWriter, r *http.Request, ctrl *facts.Controller) {
	if isHTMX(r) {
		h.render(w, "main", ctrl)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render executes into a buffer so a template error never leaves a half
// written page
func (h *PageHandler) render(w http.ResponseWriter, name string, ctrl *facts.Controller) {
	state := ctrl.State()
	data := &pageData{
		Title:      AppTitle,
		State:      state,
		Categories: category.List(),
		Alerts:     ctrl.TakeAlerts(),
		Remaining:  state.Form.Remaining(),
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write page", "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
