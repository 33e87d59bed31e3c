package taxonomy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// setupAPIRouter wires the category routes without the auth guard so handler
// behavior can be exercised directly.
func setupAPIRouter(svc domain.TaxonomyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, Category)

	g := r.Group("/api/v1/category")
	g.GET("", h.List)
	g.GET("/select", h.Select)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	return r
}

func newTestService() domain.TaxonomyService {
	return NewService(newFakeRepo(), Category)
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCreate(t *testing.T) {
	r := setupAPIRouter(newTestService())

	w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"Hành Động","status":1}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201, body: %s", w.Code, w.Body.String())
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "category created" {
		t.Errorf("Message = %q", resp.Message)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("Data = %T; want object", resp.Data)
	}
	if data["slug"] != "hanh-dong" {
		t.Errorf("slug = %v; want hanh-dong", data["slug"])
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Error("unexpected field in payload")
	}
}

func TestHandlerCreate_ValidationError(t *testing.T) {
	r := setupAPIRouter(newTestService())

	w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"","status":9}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := resp.Errors["title"]; !ok {
		t.Errorf("expected title in errors, got %v", resp.Errors)
	}
	if _, ok := resp.Errors["status"]; !ok {
		t.Errorf("expected status in errors, got %v", resp.Errors)
	}
}

func TestHandlerCreate_Conflict(t *testing.T) {
	r := setupAPIRouter(newTestService())

	if w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"Taken"}`); w.Code != http.StatusCreated {
		t.Fatalf("seed status = %d", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"Taken"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d; want 409, body: %s", w.Code, w.Body.String())
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected per-field collision details")
	}
}

func TestHandlerGet_NotFound(t *testing.T) {
	r := setupAPIRouter(newTestService())

	w := doJSON(r, http.MethodGet, "/api/v1/category/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "category not found" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestHandlerGet_BadID(t *testing.T) {
	r := setupAPIRouter(newTestService())

	for _, id := range []string{"abc", "0", "-4"} {
		w := doJSON(r, http.MethodGet, "/api/v1/category/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d; want 400", id, w.Code)
		}
	}
}

func TestHandlerUpdateRoundTrip(t *testing.T) {
	r := setupAPIRouter(newTestService())

	w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"Before"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	var created pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	id := created.Data.(map[string]any)["id"].(float64)

	w = doJSON(r, http.MethodPut, "/api/v1/category/1", `{"title":"After","status":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/v1/category/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data := got.Data.(map[string]any)
	if data["id"].(float64) != id {
		t.Errorf("id = %v; want %v", data["id"], id)
	}
	if data["title"] != "After" || data["slug"] != "after" {
		t.Errorf("got %v; want updated title and re-derived slug", data)
	}
}

func TestHandlerDelete(t *testing.T) {
	r := setupAPIRouter(newTestService())

	if w := doJSON(r, http.MethodPost, "/api/v1/category", `{"title":"Doomed"}`); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w := doJSON(r, http.MethodDelete, "/api/v1/category/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/v1/category/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d; want 404", w.Code)
	}
}

func TestHandlerList_Envelope(t *testing.T) {
	r := setupAPIRouter(newTestService())

	w := doJSON(r, http.MethodGet, "/api/v1/category?page=1&page_size=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "category list" {
		t.Errorf("Message = %q", resp.Message)
	}
}
