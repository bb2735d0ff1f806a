package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/model"
)

// ── Tokens ─────────────────────────────────────────────────────────────────

func TestToken_RoundTrip(t *testing.T) {
	a := auth.New("test-secret")
	tok, err := a.IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken returned %v", err)
	}

	userID, err := a.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken returned %v", err)
	}
	if userID != "user-123" {
		t.Errorf("VerifyToken = %q, want user-123", userID)
	}
}

func TestToken_WrongSecretRejected(t *testing.T) {
	tok, err := auth.New("secret-a").IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken returned %v", err)
	}

	_, err = auth.New("secret-b").VerifyToken(tok)
	if !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("VerifyToken with wrong secret = %v, want ErrUnauthorized", err)
	}
}

func TestToken_GarbageRejected(t *testing.T) {
	a := auth.New("test-secret")
	for _, tok := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		if _, err := a.VerifyToken(tok); !errors.Is(err, model.ErrUnauthorized) {
			t.Errorf("VerifyToken(%q) = %v, want ErrUnauthorized", tok, err)
		}
	}
}

// ── RequireOwner ───────────────────────────────────────────────────────────

func TestRequireOwner_Match(t *testing.T) {
	if err := auth.RequireOwner("user-1", "user-1"); err != nil {
		t.Errorf("RequireOwner(same user) = %v, want nil", err)
	}
}

func TestRequireOwner_Mismatch(t *testing.T) {
	err := auth.RequireOwner("user-1", "user-2")
	if !errors.Is(err, model.ErrForbidden) {
		t.Errorf("RequireOwner(different users) = %v, want ErrForbidden", err)
	}
}

// ── Passwords ──────────────────────────────────────────────────────────────

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("hunter22!")
	if err != nil {
		t.Fatalf("HashPassword returned %v", err)
	}
	if hash == "hunter22!" {
		t.Error("hash must not equal the plaintext password")
	}
	if !auth.CheckPassword("hunter22!", hash) {
		t.Error("CheckPassword(correct password) should be true")
	}
	if auth.CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword(wrong password) should be false")
	}
}

// ── Middleware ─────────────────────────────────────────────────────────────

func TestMiddleware_MissingTokenRejected(t *testing.T) {
	a := auth.New("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	a.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddleware_ValidTokenPassesUserID(t *testing.T) {
	a := auth.New("test-secret")
	tok, err := a.IssueToken("user-77")
	if err != nil {
		t.Fatalf("IssueToken returned %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = auth.UserID(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	a.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != "user-77" {
		t.Errorf("UserID in handler = %q, want user-77", gotUserID)
	}
}
