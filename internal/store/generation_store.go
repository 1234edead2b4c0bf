package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Generation statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Generation is one provider call and what came back from it.
type Generation struct {
	ID         string    `db:"id"`
	Provider   string    `db:"provider"`
	Model      string    `db:"model"`
	Topic      string    `db:"topic"`
	Keyword    string    `db:"keyword"`
	Prompt     string    `db:"prompt"`
	Body       string    `db:"body"`
	Status     string    `db:"status"`
	Error      string    `db:"error"`
	DurationMS int64     `db:"duration_ms"`
	CreatedAt  time.Time `db:"created_at"`
}

// GenerationStore is the sqlx-backed store for generation history.
type GenerationStore struct {
	db *sqlx.DB
}

// NewGenerationStore creates a new GenerationStore.
func NewGenerationStore(db *sqlx.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// q rebinds ? placeholders to the driver's native format.
func (s *GenerationStore) q(query string) string { return s.db.Rebind(query) }

// Record inserts a generation row. An empty ID or zero CreatedAt is filled in.
func (s *GenerationStore) Record(ctx context.Context, g Generation) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	g.CreatedAt = g.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO generations (id, provider, model, topic, keyword, prompt, body, status, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), g.ID, g.Provider, g.Model, g.Topic, g.Keyword, g.Prompt, g.Body, g.Status, g.Error, g.DurationMS, g.CreatedAt)
	return err
}

// Get returns the generation with the given ID, or ErrNotFound.
func (s *GenerationStore) Get(ctx context.Context, id string) (*Generation, error) {
	var g Generation
	err := s.db.GetContext(ctx, &g, s.q(`SELECT * FROM generations WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListRecent returns up to limit generations, newest first.
func (s *GenerationStore) ListRecent(ctx context.Context, limit int) ([]*Generation, error) {
	var gens []*Generation
	err := s.db.SelectContext(ctx, &gens, s.q(`
		SELECT * FROM generations ORDER BY created_at DESC, id LIMIT ?
	`), limit)
	if err != nil {
		return nil, err
	}
	return gens, nil
}

// DeleteBefore removes generations created before cutoff and returns how many
// rows were deleted.
func (s *GenerationStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM generations WHERE created_at < ?`), cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
