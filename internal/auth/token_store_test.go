package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/store"
	"github.com/joestump/joe-blog/internal/testutil"
)

func newTokenTestStore(t *testing.T) *auth.SQLTokenStore {
	t.Helper()
	return auth.NewSQLTokenStore(testutil.NewTestDB(t))
}

func TestGenerateToken(t *testing.T) {
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if len(plaintext) < 10 {
		t.Errorf("plaintext too short: %q", plaintext)
	}
	if !strings.HasPrefix(plaintext, auth.TokenPrefix) {
		t.Errorf("plaintext = %q, want prefix %q", plaintext, auth.TokenPrefix)
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}
	if got := auth.HashToken(plaintext); got != hash {
		t.Errorf("HashToken = %q, want %q", got, hash)
	}

	other, _, _ := auth.GenerateToken()
	if other == plaintext {
		t.Error("two generated tokens are equal")
	}
}

func TestTokenStore_CreateAndGetByHash(t *testing.T) {
	ts := newTokenTestStore(t)
	ctx := context.Background()

	_, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec, err := ts.Create(ctx, "ci", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Name != "ci" {
		t.Errorf("Name = %q, want %q", rec.Name, "ci")
	}
	if rec.ExpiresAt.Valid {
		t.Error("ExpiresAt set for a token without expiry")
	}

	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("ID = %q, want %q", got.ID, rec.ID)
	}
	if !got.Active(time.Now()) {
		t.Error("fresh token is not active")
	}
}

func TestTokenStore_GetByHash_NotFound(t *testing.T) {
	ts := newTokenTestStore(t)

	_, err := ts.GetByHash(context.Background(), "nonexistent-hash")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByHash(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_Revoke(t *testing.T) {
	ts := newTokenTestStore(t)
	ctx := context.Background()

	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, "revoke-me", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ts.Revoke(ctx, rec.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash after revoke: %v", err)
	}
	if !got.RevokedAt.Valid {
		t.Error("expected RevokedAt to be set after revoke")
	}
	if got.Active(time.Now()) {
		t.Error("revoked token is still active")
	}
}

func TestTokenStore_Revoke_NotFound(t *testing.T) {
	ts := newTokenTestStore(t)

	err := ts.Revoke(context.Background(), "nonexistent-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Revoke(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_ExpiryAndList(t *testing.T) {
	ts := newTokenTestStore(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, "expired", hash, &past)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Active(time.Now()) {
		t.Error("expired token is active")
	}

	_, hash2, _ := auth.GenerateToken()
	if _, err := ts.Create(ctx, "second", hash2, nil); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	all, err := ts.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List len = %d, want 2", len(all))
	}
}

func TestTokenStore_UpdateLastUsed(t *testing.T) {
	ts := newTokenTestStore(t)
	ctx := context.Background()

	_, hash, _ := auth.GenerateToken()
	rec, err := ts.Create(ctx, "used", hash, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.LastUsedAt.Valid {
		t.Error("new token has LastUsedAt")
	}
	if err := ts.UpdateLastUsed(ctx, rec.ID); err != nil {
		t.Fatalf("UpdateLastUsed: %v", err)
	}
	got, err := ts.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if !got.LastUsedAt.Valid {
		t.Error("LastUsedAt not set")
	}
}
