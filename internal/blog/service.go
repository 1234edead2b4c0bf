package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joestump/joe-blog/internal/llm"
	"github.com/joestump/joe-blog/internal/metrics"
	"github.com/joestump/joe-blog/internal/prompt"
	"github.com/joestump/joe-blog/internal/store"
)

// GeneratorFactory configures a Generator from the session's credential and
// model. llm.New is the production factory; tests inject stubs.
type GeneratorFactory func(llm.Settings) (llm.Generator, error)

// Result is a successfully generated article.
type Result struct {
	ID          string
	Topic       string
	Prompt      string
	Text        string
	HTML        string
	Filename    string
	GeneratedAt time.Time
}

// Outcome is the terminal state of one interaction.
type Outcome struct {
	State  State
	Reason Reason
	Notice *Notice
	Prompt string
	Result *Result
}

// Service runs generate interactions against one configured provider.
type Service struct {
	provider     string
	baseURL      string
	limits       Limits
	newGenerator GeneratorFactory
	md           goldmark.Markdown
	now          func() time.Time
	history      chan<- store.Generation
}

// NewService creates a Service. A nil factory uses llm.New.
func NewService(provider, baseURL string, newGenerator GeneratorFactory) *Service {
	if newGenerator == nil {
		newGenerator = llm.New
	}
	return &Service{
		provider:     provider,
		baseURL:      baseURL,
		limits:       DefaultLimits,
		newGenerator: newGenerator,
		md:           goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now:          time.Now,
	}
}

// SetHistory makes the service publish every provider call on ch. Sends never
// block; a full channel drops the record.
func (s *Service) SetHistory(ch chan<- store.Generation) { s.history = ch }

// Provider returns the configured provider name.
func (s *Service) Provider() string { return s.provider }

// Limits returns the accepted parameter bounds.
func (s *Service) Limits() Limits { return s.limits }

// Run executes one interaction: Idle → Validating → Invoking →
// Displaying | Failed. The provider is called at most once and only after the
// API key, topic, settings and template have all been accepted.
func (s *Service) Run(ctx context.Context, sub Submission) Outcome {
	out := s.run(ctx, sub)
	label := "ok"
	if out.State == StateFailed {
		label = string(out.Reason)
	}
	metrics.GenerationsTotal.WithLabelValues(label).Inc()
	return out
}

func (s *Service) run(ctx context.Context, sub Submission) Outcome {
	if strings.TrimSpace(sub.APIKey) == "" {
		return failed(ReasonMissingAPIKey, LevelInfo,
			fmt.Sprintf("Add your %s API key in the settings to start.", llm.DisplayName(s.provider)))
	}
	if strings.TrimSpace(sub.Topic) == "" {
		return failed(ReasonEmptyTopic, LevelWarning, "Please enter a topic.")
	}
	if msg := s.checkLimits(sub); msg != "" {
		return failed(ReasonInvalidSettings, LevelWarning, msg)
	}

	finalPrompt, err := prompt.FillBlog(sub.Template, sub.Keyword, sub.Topic)
	if err != nil {
		return failed(ReasonTemplate, LevelError, "Prompt template error: "+err.Error())
	}

	gen, err := s.newGenerator(llm.Settings{
		Provider: s.provider,
		APIKey:   sub.APIKey,
		Model:    strings.TrimSpace(sub.Model),
		BaseURL:  s.baseURL,
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return failed(ReasonMissingAPIKey, LevelInfo, err.Error())
		}
		out := failed(ReasonGeneration, LevelError, "Error while generating blog: "+err.Error())
		out.Prompt = finalPrompt
		return out
	}

	id := uuid.NewString()
	log.Printf("blog: generation %s %s (provider=%s model=%q)", id, StateInvoking, s.provider, sub.Model)

	start := time.Now()
	resp, err := gen.Generate(ctx, llm.Request{
		Prompt:          finalPrompt,
		Temperature:     sub.Temperature,
		MaxOutputTokens: sub.MaxOutputTokens,
	})
	elapsed := time.Since(start)
	metrics.GenerationDuration.WithLabelValues(s.provider).Observe(elapsed.Seconds())

	rec := store.Generation{
		ID:         id,
		Provider:   s.provider,
		Model:      strings.TrimSpace(sub.Model),
		Topic:      sub.Topic,
		Keyword:    sub.Keyword,
		Prompt:     finalPrompt,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  s.now(),
	}
	if err != nil {
		log.Printf("blog: generation %s failed: %v", id, err)
		rec.Status, rec.Error = store.StatusFailed, err.Error()
		s.publish(rec)
		out := failed(ReasonGeneration, LevelError, "Error while generating blog: "+err.Error())
		out.Prompt = finalPrompt
		return out
	}
	log.Printf("blog: generation %s done (%d bytes)", id, len(resp.Text))
	rec.Status, rec.Body = store.StatusOK, resp.Text
	s.publish(rec)

	return Outcome{
		State:  StateDisplaying,
		Prompt: finalPrompt,
		Result: &Result{
			ID:          id,
			Topic:       sub.Topic,
			Prompt:      finalPrompt,
			Text:        resp.Text,
			HTML:        s.renderMarkdown(id, resp.Text),
			Filename:    DownloadFilename(sub.Topic),
			GeneratedAt: rec.CreatedAt,
		},
	}
}

func (s *Service) publish(rec store.Generation) {
	if s.history == nil {
		return
	}
	select {
	case s.history <- rec:
	default:
		log.Printf("blog: history queue full, dropping generation %s", rec.ID)
	}
}

// checkLimits returns a user-facing message when a parameter is out of range.
func (s *Service) checkLimits(sub Submission) string {
	l := s.limits
	if math.IsNaN(sub.Temperature) || sub.Temperature < l.MinTemperature || sub.Temperature > l.MaxTemperature {
		return fmt.Sprintf("Temperature must be between %.2f and %.2f.", l.MinTemperature, l.MaxTemperature)
	}
	if sub.MaxOutputTokens < l.MinMaxOutputTokens || sub.MaxOutputTokens > l.MaxMaxOutputTokens {
		return fmt.Sprintf("Max output tokens must be between %d and %d.", l.MinMaxOutputTokens, l.MaxMaxOutputTokens)
	}
	return ""
}

// renderMarkdown converts the article to HTML. Raw HTML in the model output is
// omitted by goldmark's default renderer. On failure the caller falls back to
// showing the plain text.
func (s *Service) renderMarkdown(id, text string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		log.Printf("blog: generation %s markdown render: %v", id, err)
		return ""
	}
	return buf.String()
}

func failed(reason Reason, level, msg string) Outcome {
	return Outcome{
		State:  StateFailed,
		Reason: reason,
		Notice: &Notice{Level: level, Message: msg},
	}
}
