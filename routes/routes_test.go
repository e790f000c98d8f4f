package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"washdesk/handlers"
	"washdesk/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "routes-test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ok := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { c.String(http.StatusOK, name) }
	}
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		AIChatHandler:        ok("chat"),
		CreateBookingHandler: ok("booking"),
		SubmitContactHandler: ok("contact"),
		AdminHandler:         handlers.NewAdminHandler(nil, nil),
		AdminJWTSecret:       testSecret,
	})
	return r
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter()
	for path, want := range map[string]string{
		"/api/chat":    "chat",
		"/api/booking": "booking",
		"/api/contact": "contact",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set("Origin", "https://tideline.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("%s: status = %d body = %q", path, w.Code, w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s: allow-origin = %q", path, got)
		}
	}
}

func TestPreflight(t *testing.T) {
	r := newTestRouter()

	// Bare OPTIONS, no Origin header.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/chat", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("allow-origin header missing")
	}
	if w.Body.Len() != 0 {
		t.Fatalf("preflight body = %q", w.Body.String())
	}

	// Browser preflight.
	req := httptest.NewRequest(http.MethodOptions, "/api/booking", nil)
	req.Header.Set("Origin", "https://tideline.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("allow-origin header missing")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/api/bookings", "/api/contacts"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", path, w.Code)
		}
	}

	token, err := utils.GenerateAdminToken(testSecret, "owner", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?limit=0", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	// Authenticated, then rejected by the limit check before any service call.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}
