package requesthandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	for name, auth := range map[string]string{
		"NoAuth":    "",
		"WrongAuth": "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if auth != "" {
				req.Header.Set(echo.HeaderAuthorization, auth)
			}
			rec := httptest.NewRecorder()
			if err := (HealthHandler{}).Any(e.NewContext(req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}
			var out map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatal(err)
			}
			if out["status"] != "ok" {
				t.Errorf("Expected status ok, got %v", out)
			}
			if _, err := time.Parse(time.RFC3339Nano, out["timestamp"]); err != nil {
				t.Errorf("Expected an ISO-8601 timestamp, got %q", out["timestamp"])
			}
		})
	}
}

func TestHealthMethodNotAllowed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	if err := (HealthHandler{}).Any(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}
