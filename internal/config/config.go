package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/joestump/joe-blog/internal/llm"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	LLM struct {
		Provider string
		Model    string
		BaseURL  string
		// APIKey is only read by the generate command. The web form never
		// falls back to it; every session supplies its own key.
		APIKey string
	}
	API struct {
		// RequireToken guards /api/v1 with bearer tokens issued by
		// "joe-blog token create".
		RequireToken bool
	}
	History struct {
		// Enabled records every provider call in the generations table.
		// Off by default: generated articles then live only in the session.
		Enabled bool
		// Retention prunes recorded generations older than this. Zero keeps
		// everything.
		Retention time.Duration
	}
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (JOE_BLOG_ prefix) and optional joe-blog.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOE_BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("joe-blog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "joe-blog.db")
	v.SetDefault("session.lifetime", "24h")
	v.SetDefault("insecure_cookies", false)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("api.require_token", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.retention", "0s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.LLM.Provider = v.GetString("llm.provider")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")
	cfg.API.RequireToken = v.GetBool("api.require_token")
	cfg.History.Enabled = v.GetBool("history.enabled")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOE_BLOG_SESSION_LIFETIME: %w", err)
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("JOE_BLOG_SESSION_LIFETIME must be positive")
	}
	cfg.SessionLifetime = lifetime

	retention, err := time.ParseDuration(v.GetString("history.retention"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOE_BLOG_HISTORY_RETENTION: %w", err)
	}
	if retention < 0 {
		return nil, fmt.Errorf("JOE_BLOG_HISTORY_RETENTION must not be negative")
	}
	cfg.History.Retention = retention

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("JOE_BLOG_DB_DRIVER must be sqlite3, mysql, or postgres (got %q)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("JOE_BLOG_DB_DSN is required")
	}
	if !slices.Contains(llm.Providers, cfg.LLM.Provider) {
		return nil, fmt.Errorf("JOE_BLOG_LLM_PROVIDER must be one of %s (got %q)", strings.Join(llm.Providers, ", "), cfg.LLM.Provider)
	}
	if cfg.LLM.Provider == "openai-compatible" && cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("JOE_BLOG_LLM_BASE_URL is required for the openai-compatible provider")
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llm.DefaultModel(cfg.LLM.Provider)
	}

	return cfg, nil
}
