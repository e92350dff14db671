package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthRoute(t *testing.T) {
	e := NewRouter([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if ok, _ := body["ok"].(bool); !ok {
		t.Fatal("expected ok: true")
	}
	if name, _ := body["name"].(string); name != apiName {
		t.Fatalf("name = %q, want %q", name, apiName)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Run("named origin keeps credentials", func(t *testing.T) {
		e := NewRouter([]string{"http://localhost:5173"})

		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Fatalf("Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Fatalf("Allow-Credentials = %q, want true", got)
		}
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		e := NewRouter([]string{"*"})

		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got == "true" {
			t.Fatal("wildcard CORS must not allow credentials")
		}
	})
}
