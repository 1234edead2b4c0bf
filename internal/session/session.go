// Package session keeps the generator form and the last result for the
// lifetime of one browser session.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/joe-blog/internal/blog"
)

const (
	APIKeyKey          = "api_key"
	ModelKey           = "model"
	TemperatureKey     = "temperature"
	MaxOutputTokensKey = "max_output_tokens"
	TemplateKey        = "template"
	TopicKey           = "topic"
	KeywordKey         = "keyword"

	ResultIDKey    = "result_id"
	ResultTopicKey = "result_topic"
	ResultTextKey  = "result_text"
)

// NewSessionManager creates an SCS session manager backed by the application DB.
// The driver parameter selects the appropriate store: "mysql", "postgres", or
// "sqlite3" (default).
func NewSessionManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "joe_blog_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// SaveSubmission stores the submitted form so the next page view shows the
// same configuration.
func SaveSubmission(ctx context.Context, sm *scs.SessionManager, sub blog.Submission) {
	sm.Put(ctx, APIKeyKey, sub.APIKey)
	sm.Put(ctx, ModelKey, sub.Model)
	sm.Put(ctx, TemperatureKey, sub.Temperature)
	sm.Put(ctx, MaxOutputTokensKey, sub.MaxOutputTokens)
	sm.Put(ctx, TemplateKey, sub.Template)
	sm.Put(ctx, TopicKey, sub.Topic)
	sm.Put(ctx, KeywordKey, sub.Keyword)
}

// LoadSubmission returns the session's form values. Values never saved in this
// session come from defaults.
func LoadSubmission(ctx context.Context, sm *scs.SessionManager, defaults blog.Submission) blog.Submission {
	sub := defaults
	if sm.Exists(ctx, APIKeyKey) {
		sub.APIKey = sm.GetString(ctx, APIKeyKey)
	}
	if sm.Exists(ctx, ModelKey) {
		sub.Model = sm.GetString(ctx, ModelKey)
	}
	if sm.Exists(ctx, TemperatureKey) {
		sub.Temperature = sm.GetFloat(ctx, TemperatureKey)
	}
	if sm.Exists(ctx, MaxOutputTokensKey) {
		sub.MaxOutputTokens = sm.GetInt(ctx, MaxOutputTokensKey)
	}
	if sm.Exists(ctx, TemplateKey) {
		sub.Template = sm.GetString(ctx, TemplateKey)
	}
	if sm.Exists(ctx, TopicKey) {
		sub.Topic = sm.GetString(ctx, TopicKey)
	}
	if sm.Exists(ctx, KeywordKey) {
		sub.Keyword = sm.GetString(ctx, KeywordKey)
	}
	return sub
}

// SaveResult remembers the latest generated article for download.
func SaveResult(ctx context.Context, sm *scs.SessionManager, res *blog.Result) {
	sm.Put(ctx, ResultIDKey, res.ID)
	sm.Put(ctx, ResultTopicKey, res.Topic)
	sm.Put(ctx, ResultTextKey, res.Text)
}

// ClearResult drops the stored article, e.g. after a failed generation.
func ClearResult(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, ResultIDKey)
	sm.Remove(ctx, ResultTopicKey)
	sm.Remove(ctx, ResultTextKey)
}

// LoadResult returns the latest article's id, topic and text. ok is false when
// nothing has been generated in this session.
func LoadResult(ctx context.Context, sm *scs.SessionManager) (id, topic, text string, ok bool) {
	if !sm.Exists(ctx, ResultTextKey) {
		return "", "", "", false
	}
	return sm.GetString(ctx, ResultIDKey), sm.GetString(ctx, ResultTopicKey), sm.GetString(ctx, ResultTextKey), true
}
