// Package web provides the server-rendered HTML surface of the application.
// It serves the question index with title search, detail pages with Markdown
// content rendered to HTML, and embedded static assets.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ponder/internal/common/pagination"
	"ponder/internal/handler/http/pathutil"
	qUC "ponder/internal/usecase/question"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// indexPageLimit caps how many questions the index renders at once.
// Seed lists are small; the cap only guards against unbounded pages.
const indexPageLimit = 1000

// Handler renders the HTML pages.
type Handler struct {
	Svc    *qUC.Service
	Logger *slog.Logger

	tmpl *template.Template
	md   goldmark.Markdown
}

// NewHandler creates a web handler with parsed templates and a Markdown
// renderer using GitHub-flavored extensions. Raw HTML in question content is
// escaped by the renderer.
func NewHandler(svc *qUC.Service, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		Svc:    svc,
		Logger: logger,
		tmpl:   tmpl,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// Register registers the HTML routes with the given mux.
// All pages are public; writes go through the JSON API only.
func Register(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /{$}", http.HandlerFunc(h.Index))
	mux.Handle("GET /view/", http.HandlerFunc(h.Detail))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static directory is embedded at compile time.
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
}

type indexQuestion struct {
	ID    int64
	Title string
}

type indexData struct {
	Query     string
	Questions []indexQuestion
	Total     int64
}

// Index renders the question list page with an optional title filter.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	result, err := h.Svc.List(ctx, query, pagination.Params{Page: 1, Limit: indexPageLimit})
	if err != nil {
		h.Logger.Error("Failed to render index", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Query: query,
		Total: result.Pagination.Total,
	}
	for _, q := range result.Data {
		data.Questions = append(data.Questions, indexQuestion{ID: q.ID, Title: q.Title})
	}

	h.render(w, http.StatusOK, "index.html", data)
}

type detailData struct {
	Title   string
	Content template.HTML
}

// Detail renders a single question with its Markdown content converted to
// HTML. Absent and malformed IDs both render the 404 page.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/view/")
	if err != nil {
		h.renderNotFound(w)
		return
	}

	question, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, qUC.ErrQuestionNotFound) || errors.Is(err, qUC.ErrInvalidQuestionID) {
			h.renderNotFound(w)
			return
		}
		h.Logger.Error("Failed to render detail", "id", id, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(question.Content), &buf); err != nil {
		h.Logger.Error("Failed to convert markdown", "id", id, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "detail.html", detailData{
		Title:   question.Title,
		Content: template.HTML(buf.String()),
	})
}

func (h *Handler) renderNotFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, "notfound.html", nil)
}

func (h *Handler) render(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.Logger.Error("Template execution failed", "template", name, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Warn("Failed to write response", "template", name, "error", err.Error())
	}
}
