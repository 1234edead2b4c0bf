package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/store"
)

// mockTokenStore is a test double implementing auth.TokenStore.
type mockTokenStore struct {
	records map[string]*auth.TokenRecord

	mu   sync.Mutex
	used []string
}

func (m *mockTokenStore) Create(ctx context.Context, name, tokenHash string, expiresAt *time.Time) (*auth.TokenRecord, error) {
	return nil, nil
}

func (m *mockTokenStore) GetByHash(ctx context.Context, hash string) (*auth.TokenRecord, error) {
	if rec, ok := m.records[hash]; ok {
		return rec, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockTokenStore) List(ctx context.Context) ([]*auth.TokenRecord, error) {
	return nil, nil
}

func (m *mockTokenStore) Revoke(ctx context.Context, id string) error {
	return nil
}

func (m *mockTokenStore) UpdateLastUsed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used = append(m.used, id)
	return nil
}

// okHandler is a simple handler that returns 200.
func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func jsonError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}

func TestBearerTokenMiddleware(t *testing.T) {
	valid, validHash, _ := auth.GenerateToken()
	revoked, revokedHash, _ := auth.GenerateToken()
	expired, expiredHash, _ := auth.GenerateToken()
	unknown, _, _ := auth.GenerateToken()

	ts := &mockTokenStore{records: map[string]*auth.TokenRecord{
		validHash:   {ID: "valid", TokenHash: validHash},
		revokedHash: {ID: "revoked", TokenHash: revokedHash, RevokedAt: sql.NullTime{Time: time.Now(), Valid: true}},
		expiredHash: {ID: "expired", TokenHash: expiredHash, ExpiresAt: sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}},
	}}
	mw := auth.NewBearerTokenMiddleware(ts, jsonError)
	h := mw.Authenticate(okHandler())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer " + unknown, http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusUnauthorized {
				var body map[string]string
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body["code"] != "UNAUTHORIZED" {
					t.Errorf("code = %q", body["code"])
				}
			}
		})
	}
}

func TestBearerTokenMiddleware_IgnoresSessionCookie(t *testing.T) {
	mw := auth.NewBearerTokenMiddleware(&mockTokenStore{}, jsonError)
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.AddCookie(&http.Cookie{Name: "joe_blog_session", Value: "abc"})
	w := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBearerTokenMiddleware_UpdatesLastUsed(t *testing.T) {
	plaintext, hash, _ := auth.GenerateToken()
	ts := &mockTokenStore{records: map[string]*auth.TokenRecord{hash: {ID: "tok-1", TokenHash: hash}}}
	h := auth.NewBearerTokenMiddleware(ts, jsonError).Authenticate(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+plaintext)
	h.ServeHTTP(httptest.NewRecorder(), req)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ts.mu.Lock()
		n := len(ts.used)
		ts.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("UpdateLastUsed was not called")
}
