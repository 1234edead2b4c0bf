package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/llm"
	"github.com/joestump/joe-blog/internal/session"
	"github.com/joestump/joe-blog/internal/testutil"
)

type stubGenerator struct {
	text  string
	err   error
	calls []llm.Request
}

func (g *stubGenerator) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &llm.Response{Text: g.text}, nil
}

type generatorTestEnv struct {
	srv      *httptest.Server
	client   *http.Client
	gen      *stubGenerator
	factoryN int
}

// newGeneratorTestEnv serves the full router with sessions stored in an
// in-memory SQLite database and a client that keeps the session cookie.
func newGeneratorTestEnv(t *testing.T, text string, genErr error) *generatorTestEnv {
	t.Helper()
	env := &generatorTestEnv{gen: &stubGenerator{text: text, err: genErr}}

	conn := testutil.NewTestDB(t)
	sm := session.NewSessionManager(conn, "sqlite3", time.Hour, false)
	svc := blog.NewService("gemini", "", func(llm.Settings) (llm.Generator, error) {
		env.factoryN++
		return env.gen, nil
	})

	env.srv = httptest.NewServer(NewRouter(Deps{
		SessionManager: sm,
		Blog:           svc,
		Defaults:       blog.Defaults("gemini-1.5-flash"),
	}))
	t.Cleanup(env.srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return env
}

func (e *generatorTestEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (e *generatorTestEnv) post(t *testing.T, path string, form url.Values, htmx bool) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func generateForm(apiKey, topic string) url.Values {
	return url.Values{
		"api_key":           {apiKey},
		"model":             {"gemini-1.5-flash"},
		"temperature":       {"0.70"},
		"max_output_tokens": {"2048"},
		"template":          {"Write about {topic}\r\nKeyword: {keyword}"},
		"topic":             {topic},
		"keyword":           {"dbms"},
	}
}

func TestIndex_ShowsKeyGuidanceWithoutKey(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	resp, body := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Add your Gemini API key in the settings to start.") {
		t.Error("missing API key guidance")
	}
	if !strings.Contains(body, `value="structure of DBMS"`) {
		t.Error("default topic not prefilled")
	}
	if !strings.Contains(body, "Write high-quality, plagiarism-free") {
		t.Error("default template not prefilled")
	}
}

func TestIndex_TemplateKeepsLeadingNewline(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	// HTML parsers drop the first newline after <textarea>.
	_, body := env.get(t, "/")
	if !strings.Contains(body, "<textarea name=\"template\" rows=\"14\">\n\nWrite high-quality") {
		t.Error("template textarea does not preserve the leading newline")
	}
}

func TestGenerate_SuccessAndDownload(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	resp, body := env.post(t, "/generate", generateForm("secret", "DBMS Structure"), false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(env.gen.calls) != 1 {
		t.Fatalf("Generate calls = %d, want 1", len(env.gen.calls))
	}
	if !strings.Contains(body, "<p>Hello</p>") {
		t.Errorf("rendered result missing from page:\n%s", body)
	}
	if !strings.Contains(body, "Show final prompt sent to LLM") {
		t.Error("final prompt block missing")
	}
	if got := env.gen.calls[0].Prompt; got != "Write about DBMS Structure\nKeyword: dbms" {
		t.Errorf("prompt = %q", got)
	}

	resp, body = env.get(t, "/download")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", resp.StatusCode)
	}
	if body != "Hello" {
		t.Errorf("download body = %q, want %q", body, "Hello")
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "attachment; filename=dbms-structure-blog.txt" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGenerate_EmptyTopicMakesNoCall(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	_, body := env.post(t, "/generate", generateForm("secret", "   "), false)
	if len(env.gen.calls) != 0 {
		t.Errorf("Generate calls = %d, want 0", len(env.gen.calls))
	}
	if !strings.Contains(body, "Please enter a topic.") || !strings.Contains(body, "alert-warning") {
		t.Error("empty topic warning missing")
	}
}

func TestGenerate_MissingKeyMakesNoCall(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	_, body := env.post(t, "/generate", generateForm("", "DBMS Structure"), false)
	if env.factoryN != 0 || len(env.gen.calls) != 0 {
		t.Errorf("factory=%d calls=%d, want 0/0", env.factoryN, len(env.gen.calls))
	}
	if !strings.Contains(body, "alert-info") {
		t.Error("API key guidance missing")
	}
}

func TestGenerate_FailureShowsMessageAndClearsDownload(t *testing.T) {
	env := newGeneratorTestEnv(t, "", errors.New("quota exceeded"))

	resp, body := env.post(t, "/generate", generateForm("secret", "DBMS Structure"), false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Error while generating blog: quota exceeded") {
		t.Errorf("failure message missing:\n%s", body)
	}
	if len(env.gen.calls) != 1 {
		t.Errorf("Generate calls = %d, want 1", len(env.gen.calls))
	}

	resp, _ = env.get(t, "/download")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("download status = %d, want 404", resp.StatusCode)
	}
}

func TestGenerate_TemplateError(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)
	form := generateForm("secret", "Go")
	form.Set("template", "Write for {audience}")

	_, body := env.post(t, "/generate", form, false)
	if len(env.gen.calls) != 0 {
		t.Errorf("Generate calls = %d, want 0", len(env.gen.calls))
	}
	if !strings.Contains(body, "Prompt template error") {
		t.Error("template error missing")
	}
}

func TestGenerate_BadNumber(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)
	form := generateForm("secret", "Go")
	form.Set("temperature", "warm")

	_, body := env.post(t, "/generate", form, false)
	if len(env.gen.calls) != 0 {
		t.Errorf("Generate calls = %d, want 0", len(env.gen.calls))
	}
	if !strings.Contains(body, "Temperature must be a number.") {
		t.Error("parse warning missing")
	}
}

func TestGenerate_HTMXReturnsFragment(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	_, body := env.post(t, "/generate", generateForm("secret", "DBMS Structure"), true)
	if strings.Contains(body, "<html") {
		t.Error("HTMX response contains full layout")
	}
	if !strings.Contains(body, "<p>Hello</p>") || !strings.Contains(body, `href="/download"`) {
		t.Errorf("fragment missing result or download link:\n%s", body)
	}
}

func TestSession_CarriesFormValues(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	form := generateForm("secret", "Go channels")
	form.Set("temperature", "0.25")
	env.post(t, "/generate", form, false)

	_, body := env.get(t, "/")
	if !strings.Contains(body, `value="Go channels"`) {
		t.Error("topic not carried over in session")
	}
	if !strings.Contains(body, `value="0.25"`) {
		t.Error("temperature not carried over in session")
	}
	if strings.Contains(body, "API key in the settings to start") {
		t.Error("key guidance shown although the session has a key")
	}
	if !strings.Contains(body, "go-channels-blog.txt") {
		t.Error("last download link missing")
	}
}

func TestDownload_NothingGenerated(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)
	resp, _ := env.get(t, "/download")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTheme_Toggle(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	resp, _ := env.post(t, "/theme", url.Values{"theme": {"blog-dark"}}, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("HX-Trigger"); !strings.Contains(got, "blog-dark") {
		t.Errorf("HX-Trigger = %q", got)
	}

	_, body := env.get(t, "/")
	if !strings.Contains(body, `data-theme="blog-dark"`) {
		t.Error("theme cookie not applied")
	}

	resp, _ = env.post(t, "/theme", url.Values{"theme": {"neon"}}, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid theme status = %d", resp.StatusCode)
	}

	resp, _ = env.post(t, "/theme", url.Values{"theme": {"blog-light"}}, false)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("plain post status = %d, want 303", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)

	resp, body := env.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, body)
	}

	env.post(t, "/generate", generateForm("secret", "Go"), false)
	resp, body = env.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "joeblog_generations_total") {
		t.Error("generation counter not exported")
	}
}

func TestStaticAssets(t *testing.T) {
	env := newGeneratorTestEnv(t, "Hello", nil)
	resp, body := env.get(t, "/static/css/app.css")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "blog-dark") {
		t.Errorf("static css = %d", resp.StatusCode)
	}
}
