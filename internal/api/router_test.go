package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steam-roi/internal/api/models"
	"steam-roi/internal/config"
	"steam-roi/internal/evaluation"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, staticDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := evaluation.Build(config.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	srv := config.Server{CORSOrigins: []string{"http://localhost:3000"}, StaticDir: staticDir}
	return NewRouter(c, srv)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, "")

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Errorf("/health = %d", w.Code)
	}

	w := get(r, "/api/credit-tiers")
	var tiers models.CreditTiersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tiers); err != nil {
		t.Fatal(err)
	}
	if len(tiers.Tiers) != 6 || len(tiers.PaybackPeriods) != 5 {
		t.Errorf("credit tiers = %+v", tiers)
	}

	w = get(r, "/api/leads")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"leads":[]}` {
		t.Errorf("/api/leads = %d %s", w.Code, w.Body.String())
	}

	w = get(r, "/api/nope")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "NOT_FOUND") {
		t.Errorf("/api/nope = %d %s", w.Code, w.Body.String())
	}
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(t, dir)

	w := get(r, "/dashboard")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "app") {
		t.Errorf("/dashboard = %d %s", w.Code, w.Body.String())
	}
	if w := get(r, "/api/missing"); w.Code != http.StatusNotFound {
		t.Errorf("/api/missing = %d", w.Code)
	}
}
