package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type noopModule struct {
	registered bool
}

func (m *noopModule) RegisterRoutes(api *gin.RouterGroup) {
	m.registered = true
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newTestEngine(t *testing.T, deps *RouteDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := RegisterRoutes(r, deps); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func TestRegisterRoutes_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if err := RegisterRoutes(nil, &RouteDeps{Modules: []Module{&noopModule{}}}); err == nil {
		t.Error("expected error for nil router")
	}
	if err := RegisterRoutes(gin.New(), nil); err == nil {
		t.Error("expected error for nil deps")
	}
	if err := RegisterRoutes(gin.New(), &RouteDeps{}); err == nil {
		t.Error("expected error for empty module list")
	}
	if err := RegisterRoutes(gin.New(), &RouteDeps{Modules: []Module{nil}}); err == nil {
		t.Error("expected error for nil module")
	}
}

func TestRegisterRoutes_ModulesMountUnderAPIV1(t *testing.T) {
	mod := &noopModule{}
	r := newTestEngine(t, &RouteDeps{Modules: []Module{mod}, DB: openTestDB(t)})

	if !mod.registered {
		t.Fatal("module was not registered")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Errorf("got %d %q; want 200 pong", w.Code, w.Body.String())
	}
}

func TestHealth_OK(t *testing.T) {
	r := newTestEngine(t, &RouteDeps{Modules: []Module{&noopModule{}}, DB: openTestDB(t)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != "ok" || body.Components["database"] != "ok" {
		t.Errorf("body = %+v", body)
	}
}

func TestHealth_DegradedWithoutDB(t *testing.T) {
	r := newTestEngine(t, &RouteDeps{Modules: []Module{&noopModule{}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d; want 503", w.Code)
	}
}

func TestNoRoute_JSONEnvelope(t *testing.T) {
	r := newTestEngine(t, &RouteDeps{Modules: []Module{&noopModule{}}, DB: openTestDB(t)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nonsense", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != http.StatusNotFound || body.Message != "not found" {
		t.Errorf("body = %+v", body)
	}
}
