package auth

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrorWriter writes a JSON error body in the API's error format.
type ErrorWriter func(w http.ResponseWriter, status int, message, code string)

// BearerTokenMiddleware authenticates API requests via Bearer token. Session
// cookies are never accepted on API routes.
type BearerTokenMiddleware struct {
	tokens   TokenStore
	writeErr ErrorWriter
	now      func() time.Time
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware. writeErr
// renders the 401 body.
func NewBearerTokenMiddleware(ts TokenStore, writeErr ErrorWriter) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: ts, writeErr: writeErr, now: time.Now}
}

// Authenticate rejects requests without an active token with 401. Valid
// tokens get last_used_at bumped asynchronously.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plaintext, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || plaintext == "" {
			m.unauthorized(w)
			return
		}

		rec, err := m.tokens.GetByHash(r.Context(), HashToken(plaintext))
		if err != nil || !rec.Active(m.now()) {
			m.unauthorized(w)
			return
		}

		go func(id string) {
			if err := m.tokens.UpdateLastUsed(context.Background(), id); err != nil {
				log.Printf("auth: update last_used_at for token %s: %v", id, err)
			}
		}(rec.ID)

		next.ServeHTTP(w, r)
	})
}

func (m *BearerTokenMiddleware) unauthorized(w http.ResponseWriter) {
	m.writeErr(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
}
