package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "about", "donations", "donation_form",
	"products", "product_form", "register", "login", "error",
}

// page is the data every template receives.
type page struct {
	Title    string
	UserID   int64
	UserName string
	Flash    *flash
	Query    string
	Data     any
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &renderer{pages: pages}, nil
}

// render executes the named page into a buffer first so that a template
// error never leaves a half-written response.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	t, ok := h.renderer.pages[name]
	if !ok {
		h.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	p.UserID = UserIDFromContext(r.Context())
	if p.UserID != 0 {
		p.UserName = h.userName(r, p.UserID)
	}
	if p.Flash == nil {
		p.Flash = h.popFlash(w, r)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		h.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// userName looks up the display name for the navigation bar. A failed
// lookup only hides the name.
func (h *Handlers) userName(r *http.Request, id int64) string {
	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.logger.Warn(r.Context(), "user lookup failed",
			"error", err.Error(),
			"user_id", id,
			"request_id", RequestIDFromContext(r.Context()))
		return ""
	}
	return u.UserName
}

// serverError logs err and answers with a generic 500 page that reveals
// nothing about the cause.
func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed",
		"error", err.Error(),
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Internal server error\n"))
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusNotFound, "error", page{Title: "Not found", Data: message})
}
