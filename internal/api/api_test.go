package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func stubMCP() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("mcp"))
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := NewRouter(stubMCP(), false, "")

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		if body := rec.Body.String(); !strings.Contains(body, `"status":"ok"`) {
			t.Errorf("%s body = %q, want status ok", path, body)
		}
	}
}

func TestMCPEndpointMounted(t *testing.T) {
	r := NewRouter(stubMCP(), false, "")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "mcp" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "mcp")
	}
}

func TestMCPEndpointRequiresToken(t *testing.T) {
	r := NewRouter(stubMCP(), true, "secret-token")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Errorf("body = %q, want unauthorized error", rec.Body.String())
	}
}

func TestMCPEndpointRejectsWrongToken(t *testing.T) {
	r := NewRouter(stubMCP(), true, "secret-token")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMCPEndpointAcceptsValidToken(t *testing.T) {
	r := NewRouter(stubMCP(), true, "secret-token")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHealthSkipsAuth(t *testing.T) {
	r := NewRouter(stubMCP(), true, "secret-token")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health with auth enabled: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
