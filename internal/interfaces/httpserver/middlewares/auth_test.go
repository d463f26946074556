package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/config"
)

func newAuthEngine(t *testing.T, apiKeys string, enabled bool) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAPIKeyAuth(&config.Config{
		AuthEnabled: enabled,
		APIKeys:     apiKeys,
		HashSecret:  "test-secret",
	}, zerolog.Nop())

	var principal string
	engine := gin.New()
	engine.Use(auth.Middleware())
	engine.GET("/probe", func(c *gin.Context) {
		principal, _ = PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine, &principal
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	engine, principal := newAuthEngine(t, "", false)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *principal != "" {
		t.Errorf("principal = %q, want empty", *principal)
	}
}

func TestAuthAcceptsHeaderKey(t *testing.T) {
	engine, principal := newAuthEngine(t, "ci:sk-ci-12345,ops:sk-ops-6789", true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-API-Key", "sk-ops-6789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *principal != "ops" {
		t.Errorf("principal = %q, want ops", *principal)
	}
}

func TestAuthAcceptsBearerKey(t *testing.T) {
	engine, principal := newAuthEngine(t, "ci:sk-ci-12345", true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer sk-ci-12345")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *principal != "ci" {
		t.Errorf("principal = %q, want ci", *principal)
	}
}

func TestAuthRejectsMissingKey(t *testing.T) {
	engine, _ := newAuthEngine(t, "ci:sk-ci-12345", true)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "unauthorized" {
		t.Errorf("code = %q, want unauthorized", body.Code)
	}
}

func TestAuthRejectsUnknownKey(t *testing.T) {
	engine, principal := newAuthEngine(t, "ci:sk-ci-12345", true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-API-Key", "sk-guessed")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *principal != "" {
		t.Errorf("principal = %q, want empty", *principal)
	}
}

func TestAuthSkipsMalformedEntries(t *testing.T) {
	engine, principal := newAuthEngine(t, "notakeypair, ,ci:sk-ci-12345", true)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-API-Key", "sk-ci-12345")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *principal != "ci" {
		t.Errorf("principal = %q, want ci", *principal)
	}

	// The malformed entry must not have become a valid credential.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-API-Key", "notakeypair")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d for malformed entry, want 401", rec.Code)
	}
}
