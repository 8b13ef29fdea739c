package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"herbsera/globals"
	"herbsera/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		Email: "tester@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestParseTokenValid(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users/profile", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "local:abc", time.Hour))

	claims, err := parseToken(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "local:abc" {
		t.Fatalf("expected subject local:abc, got %s", claims.Subject)
	}
}

func TestParseTokenExpired(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users/profile", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "local:abc", -time.Hour))

	_, err := parseToken(r)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestParseTokenMissingOrMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users/profile", nil)
	if _, err := parseToken(r); err == nil {
		t.Fatal("expected error for missing header")
	}

	r.Header.Set("Authorization", "Token abc")
	if _, err := parseToken(r); err == nil {
		t.Fatal("expected error for non-bearer header")
	}

	r.Header.Set("Authorization", "Bearer not.a.jwt")
	if _, err := parseToken(r); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestParseTokenRejectsEmptySubject(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users/profile", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "", time.Hour))

	if _, err := parseToken(r); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func requestWithRole(role string) *http.Request {
	r := httptest.NewRequest("GET", "/api/admin/users", nil)
	ctx := context.WithValue(r.Context(), globals.RoleKey, role)
	return r.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, requestWithRole(models.RoleAdmin), nil)
	if !called {
		t.Fatal("expected admin to pass the gate")
	}

	for _, role := range []string{models.RoleUser, "superadmin", ""} {
		w = httptest.NewRecorder()
		called = false
		handler(w, requestWithRole(role), nil)
		if called {
			t.Fatalf("role %q must not pass the admin gate", role)
		}
		if w.Code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403, got %d", role, w.Code)
		}
	}
}
