package handler

import (
	"html/template"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/llm"
	"github.com/joestump/joe-blog/internal/metrics"
	"github.com/joestump/joe-blog/internal/prompt"
	"github.com/joestump/joe-blog/internal/session"
)

// ResultView is a generated article prepared for the page.
type ResultView struct {
	ID       string
	Text     string
	HTML     template.HTML
	Filename string
}

// GeneratorPage is the template data for the generator form and its result.
type GeneratorPage struct {
	BasePage
	Provider     string
	Form         blog.Submission
	Limits       blog.Limits
	Placeholders []string
	Flash        *Flash
	Prompt       string
	Result       *ResultView
	LastDownload string
}

// GeneratorHandler serves the form, runs generations and serves downloads.
type GeneratorHandler struct {
	sessions *scs.SessionManager
	svc      *blog.Service
	defaults blog.Submission
}

// NewGeneratorHandler creates a new GeneratorHandler. defaults seeds the form
// of a fresh session.
func NewGeneratorHandler(sm *scs.SessionManager, svc *blog.Service, defaults blog.Submission) *GeneratorHandler {
	return &GeneratorHandler{sessions: sm, svc: svc, defaults: defaults}
}

func (h *GeneratorHandler) page(r *http.Request, form blog.Submission) GeneratorPage {
	placeholders, _ := prompt.Placeholders(form.Template)
	data := GeneratorPage{
		BasePage:     newBasePage(r),
		Provider:     llm.DisplayName(h.svc.Provider()),
		Form:         form,
		Limits:       h.svc.Limits(),
		Placeholders: placeholders,
	}
	if _, topic, _, ok := session.LoadResult(r.Context(), h.sessions); ok {
		data.LastDownload = blog.DownloadFilename(topic)
	}
	return data
}

// Index serves GET /. Without an API key the page shows setup guidance
// instead of waiting for a submit.
func (h *GeneratorHandler) Index(w http.ResponseWriter, r *http.Request) {
	form := session.LoadSubmission(r.Context(), h.sessions, h.defaults)
	data := h.page(r, form)
	if strings.TrimSpace(form.APIKey) == "" {
		data.Flash = &Flash{
			Type:    blog.LevelInfo,
			Message: "Add your " + data.Provider + " API key in the settings to start.",
		}
	}
	render(w, "index.html", data)
}

// Generate handles POST /generate: one full interaction from validation to
// display. Every outcome renders with 200 so HTMX swaps the notice in.
func (h *GeneratorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	sub, msg := parseSubmission(r, session.LoadSubmission(ctx, h.sessions, h.defaults))
	if msg != "" {
		data := h.page(r, sub)
		data.Flash = &Flash{Type: blog.LevelWarning, Message: msg}
		h.respond(w, r, data)
		return
	}
	session.SaveSubmission(ctx, h.sessions, sub)

	out := h.svc.Run(ctx, sub)
	if out.Result != nil {
		session.SaveResult(ctx, h.sessions, out.Result)
	} else {
		session.ClearResult(ctx, h.sessions)
	}

	data := h.page(r, sub)
	data.Prompt = out.Prompt
	if out.Notice != nil {
		data.Flash = &Flash{Type: out.Notice.Level, Message: out.Notice.Message}
	}
	if res := out.Result; res != nil {
		data.Result = &ResultView{
			ID:       res.ID,
			Text:     res.Text,
			HTML:     template.HTML(res.HTML), // goldmark output, raw HTML omitted
			Filename: res.Filename,
		}
	}
	h.respond(w, r, data)
}

func (h *GeneratorHandler) respond(w http.ResponseWriter, r *http.Request, data GeneratorPage) {
	if isHTMX(r) {
		renderPageFragment(w, "index.html", "result", data)
		return
	}
	render(w, "index.html", data)
}

// Download handles GET /download: the session's latest article as a text file.
func (h *GeneratorHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, topic, text, ok := session.LoadResult(r.Context(), h.sessions)
	if !ok {
		http.Error(w, "nothing has been generated in this session", http.StatusNotFound)
		return
	}

	filename := blog.DownloadFilename(topic)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	if _, err := io.WriteString(w, text); err != nil {
		log.Printf("download %s: %v", id, err)
		return
	}
	metrics.DownloadsTotal.Inc()
}

// parseSubmission reads the posted form over the session values. Fields that
// are absent from the post keep their session value. A non-empty message
// reports an unparsable number.
func parseSubmission(r *http.Request, current blog.Submission) (blog.Submission, string) {
	sub := current
	if _, ok := r.PostForm["api_key"]; ok {
		sub.APIKey = strings.TrimSpace(r.PostFormValue("api_key"))
	}
	if _, ok := r.PostForm["model"]; ok {
		sub.Model = strings.TrimSpace(r.PostFormValue("model"))
	}
	if _, ok := r.PostForm["template"]; ok {
		// Browsers submit textarea line breaks as CRLF.
		sub.Template = strings.ReplaceAll(r.PostFormValue("template"), "\r\n", "\n")
	}
	if _, ok := r.PostForm["topic"]; ok {
		sub.Topic = r.PostFormValue("topic")
	}
	if _, ok := r.PostForm["keyword"]; ok {
		sub.Keyword = r.PostFormValue("keyword")
	}
	if v := r.PostFormValue("temperature"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sub, "Temperature must be a number."
		}
		sub.Temperature = t
	}
	if v := r.PostFormValue("max_output_tokens"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return sub, "Max output tokens must be a whole number."
		}
		sub.MaxOutputTokens = n
	}
	return sub, ""
}
