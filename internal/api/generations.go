package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GenerationReader reads generation history.
type GenerationReader interface {
	Get(ctx context.Context, id string) (*store.Generation, error)
	ListRecent(ctx context.Context, limit int) ([]*store.Generation, error)
}

// GenerationResponse is one recorded provider call.
type GenerationResponse struct {
	ID         string    `json:"id" example:"3f1c2a9e-8d7b-4c1e-9a55-0b6f2d7e4c10"`
	Provider   string    `json:"provider" example:"gemini"`
	Model      string    `json:"model" example:"gemini-1.5-flash"`
	Topic      string    `json:"topic" example:"DBMS Structure"`
	Keyword    string    `json:"keyword" example:"structure of DBMS"`
	Prompt     string    `json:"prompt"`
	Text       string    `json:"text"`
	Status     string    `json:"status" example:"ok"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms" example:"2150"`
	Filename   string    `json:"filename" example:"dbms-structure-blog.txt"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerationListResponse wraps a page of history.
type GenerationListResponse struct {
	Generations []GenerationResponse `json:"generations"`
}

type generationsAPIHandler struct {
	gens GenerationReader
}

// List returns recent generations, newest first.
// GET /api/v1/generations
//
// @Summary      List recent generations
// @Tags         History
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows (1-100, default 20)"
// @Success      200    {object}  GenerationListResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /generations [get]
func (h *generationsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100", "BAD_REQUEST")
			return
		}
		limit = n
	}

	gens, err := h.gens.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("api: list generations: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL")
		return
	}

	resp := GenerationListResponse{Generations: make([]GenerationResponse, 0, len(gens))}
	for _, g := range gens {
		resp.Generations = append(resp.Generations, toGenerationResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one generation by ID.
// GET /api/v1/generations/{id}
//
// @Summary      Get a generation
// @Tags         History
// @Produce      json
// @Param        id   path      string  true  "Generation ID"
// @Success      200  {object}  GenerationResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /generations/{id} [get]
func (h *generationsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gens.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "generation not found", "NOT_FOUND")
		return
	}
	if err != nil {
		log.Printf("api: get generation: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, toGenerationResponse(g))
}

func toGenerationResponse(g *store.Generation) GenerationResponse {
	return GenerationResponse{
		ID:         g.ID,
		Provider:   g.Provider,
		Model:      g.Model,
		Topic:      g.Topic,
		Keyword:    g.Keyword,
		Prompt:     g.Prompt,
		Text:       g.Body,
		Status:     g.Status,
		Error:      g.Error,
		DurationMS: g.DurationMS,
		Filename:   blog.DownloadFilename(g.Topic),
		CreatedAt:  g.CreatedAt,
	}
}
