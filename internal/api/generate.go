package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/metrics"
)

// GenerateRequest is the body of POST /generate. Omitted settings use the
// server defaults; an omitted keyword uses the topic.
type GenerateRequest struct {
	APIKey          string   `json:"api_key" example:"AIza..."`
	Model           string   `json:"model,omitempty" example:"gemini-1.5-flash"`
	Temperature     *float64 `json:"temperature,omitempty" example:"0.7"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty" example:"2048"`
	Template        string   `json:"template,omitempty"`
	Topic           string   `json:"topic" example:"DBMS Structure"`
	Keyword         string   `json:"keyword,omitempty" example:"structure of DBMS"`
}

// GenerateResponse is a generated article.
type GenerateResponse struct {
	ID       string `json:"id" example:"3f1c2a9e-8d7b-4c1e-9a55-0b6f2d7e4c10"`
	Text     string `json:"text"`
	Prompt   string `json:"prompt"`
	Filename string `json:"filename" example:"dbms-structure-blog.txt"`
}

// DefaultsResponse describes the server's form defaults and limits.
type DefaultsResponse struct {
	Provider           string  `json:"provider" example:"gemini"`
	Model              string  `json:"model" example:"gemini-1.5-flash"`
	Temperature        float64 `json:"temperature" example:"0.7"`
	MaxOutputTokens    int     `json:"max_output_tokens" example:"2048"`
	Template           string  `json:"template"`
	MinTemperature     float64 `json:"min_temperature" example:"0"`
	MaxTemperature     float64 `json:"max_temperature" example:"1"`
	MinMaxOutputTokens int     `json:"min_max_output_tokens" example:"256"`
	MaxMaxOutputTokens int     `json:"max_max_output_tokens" example:"4096"`
}

type generateAPIHandler struct {
	svc      *blog.Service
	defaults blog.Submission
}

// errorCodes maps a failed interaction to its HTTP status and error code.
var errorCodes = map[blog.Reason]struct {
	status int
	code   string
}{
	blog.ReasonMissingAPIKey:   {http.StatusBadRequest, "API_KEY_REQUIRED"},
	blog.ReasonEmptyTopic:      {http.StatusBadRequest, "TOPIC_REQUIRED"},
	blog.ReasonInvalidSettings: {http.StatusBadRequest, "INVALID_SETTINGS"},
	blog.ReasonTemplate:        {http.StatusBadRequest, "TEMPLATE_ERROR"},
	blog.ReasonGeneration:      {http.StatusBadGateway, "GENERATION_FAILED"},
}

// Generate fills the template and calls the generation provider once.
// POST /api/v1/generate
//
// @Summary      Generate a blog article
// @Description  Fills the prompt template with topic and keyword and sends it to the configured provider. No retries.
// @Tags         Generate
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateRequest  true  "Generation settings"
// @Success      200      {object}  GenerateResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /generate [post]
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.APIRequestsTotal.WithLabelValues("BAD_REQUEST").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	out := h.svc.Run(r.Context(), h.submission(req))
	if out.State != blog.StateDisplaying {
		ec, ok := errorCodes[out.Reason]
		if !ok {
			ec.status, ec.code = http.StatusInternalServerError, "INTERNAL"
		}
		metrics.APIRequestsTotal.WithLabelValues(ec.code).Inc()
		writeError(w, ec.status, out.Notice.Message, ec.code)
		return
	}

	metrics.APIRequestsTotal.WithLabelValues("OK").Inc()
	writeJSON(w, http.StatusOK, GenerateResponse{
		ID:       out.Result.ID,
		Text:     out.Result.Text,
		Prompt:   out.Result.Prompt,
		Filename: out.Result.Filename,
	})
}

// GetDefaults returns the form defaults and parameter limits.
// GET /api/v1/defaults
//
// @Summary      Form defaults
// @Description  Default model, generation parameters, prompt template and the accepted ranges
// @Tags         Generate
// @Produce      json
// @Success      200  {object}  DefaultsResponse
// @Router       /defaults [get]
func (h *generateAPIHandler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	l := h.svc.Limits()
	writeJSON(w, http.StatusOK, DefaultsResponse{
		Provider:           h.svc.Provider(),
		Model:              h.defaults.Model,
		Temperature:        h.defaults.Temperature,
		MaxOutputTokens:    h.defaults.MaxOutputTokens,
		Template:           h.defaults.Template,
		MinTemperature:     l.MinTemperature,
		MaxTemperature:     l.MaxTemperature,
		MinMaxOutputTokens: l.MinMaxOutputTokens,
		MaxMaxOutputTokens: l.MaxMaxOutputTokens,
	})
}

func (h *generateAPIHandler) submission(req GenerateRequest) blog.Submission {
	sub := h.defaults
	sub.APIKey = strings.TrimSpace(req.APIKey)
	sub.Topic = req.Topic
	sub.Keyword = req.Keyword
	if strings.TrimSpace(sub.Keyword) == "" {
		sub.Keyword = req.Topic
	}
	if m := strings.TrimSpace(req.Model); m != "" {
		sub.Model = m
	}
	if req.Temperature != nil {
		sub.Temperature = *req.Temperature
	}
	if req.MaxOutputTokens != nil {
		sub.MaxOutputTokens = *req.MaxOutputTokens
	}
	if req.Template != "" {
		sub.Template = req.Template
	}
	return sub
}
