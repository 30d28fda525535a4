package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"steam-roi/internal/api/models"
	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), CORS([]string{"http://localhost:3000"}), Logger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestLoggerRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Set(zap.NewNop().Sugar()) })

	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if id := w.Header().Get(RequestIDHeader); id == "" {
		t.Error("missing generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if id := w.Header().Get(RequestIDHeader); id != "req-42" {
		t.Errorf("request id = %q, want req-42", id)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if got := entries[1].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("logged request_id = %v", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q", got)
	}
}

func TestErrorHandlerRecovers(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" || resp.Error.Message != "boom" {
		t.Errorf("error = %+v", resp.Error)
	}
}
