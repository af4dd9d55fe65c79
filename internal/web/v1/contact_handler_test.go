package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yogawell/member-service/internal/core/repository/memory"
	logicv1 "github.com/yogawell/member-service/internal/logic/v1"
)

// newTestRouter mounts a handler group on a silent router with a no-op
// logger injected the way the logging middleware would.
func newTestRouter(register func(*gin.RouterGroup), prefix string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("logger", zap.NewNop())
		c.Next()
	})
	register(r.Group(prefix))
	return r
}

func newContactRouter() *gin.Engine {
	handler := NewContactHandler(logicv1.NewContactService(memory.NewContactRepository()))
	return newTestRouter(handler.RegisterRoutes, "/api/contact-us")
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRequest(t *testing.T, r http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return resp
}

func contactForm() url.Values {
	return url.Values{
		"name":     {"Asha Rao"},
		"email":    {"asha@x.com"},
		"phone_no": {"123"},
		"message":  {"hello"},
	}
}

func TestContactCreateAndGet(t *testing.T) {
	r := newContactRouter()

	w := postForm(t, r, "/api/contact-us/", contactForm())
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if !resp.Success || resp.Message != "Contact created successfully" {
		t.Fatalf("create response = %+v", resp)
	}
	data := resp.Data.(map[string]interface{})
	if data["id"].(float64) != 1 {
		t.Fatalf("id = %v, want 1", data["id"])
	}
	if data["phone_no"] != "123" {
		t.Fatalf("phone_no = %v", data["phone_no"])
	}

	w = doRequest(t, r, http.MethodGet, "/api/contact-us/123")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}
	resp = decodeResponse(t, w)
	data = resp.Data.(map[string]interface{})
	if data["message"] != "hello" {
		t.Fatalf("message = %v", data["message"])
	}
}

func TestContactCreateDuplicate(t *testing.T) {
	r := newContactRouter()

	if w := postForm(t, r, "/api/contact-us/", contactForm()); w.Code != http.StatusOK {
		t.Fatalf("first create status = %d", w.Code)
	}
	w := postForm(t, r, "/api/contact-us/", contactForm())
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Success {
		t.Fatalf("duplicate create reported success")
	}
}

func TestContactCreateValidation(t *testing.T) {
	r := newContactRouter()

	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{name: "missing name", mutate: func(f url.Values) { f.Del("name") }},
		{name: "missing phone", mutate: func(f url.Values) { f.Del("phone_no") }},
		{name: "bad email", mutate: func(f url.Values) { f.Set("email", "not-an-email") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := contactForm()
			tc.mutate(form)
			w := postForm(t, r, "/api/contact-us/", form)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestContactGetMissing(t *testing.T) {
	r := newContactRouter()

	w := doRequest(t, r, http.MethodGet, "/api/contact-us/999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Success {
		t.Fatalf("missing record reported success")
	}
}

func TestContactList(t *testing.T) {
	r := newContactRouter()

	form := contactForm()
	postForm(t, r, "/api/contact-us/", form)
	form.Set("phone_no", "456")
	postForm(t, r, "/api/contact-us/", form)

	w := doRequest(t, r, http.MethodGet, "/api/contact-us/")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if len(resp.Data.([]interface{})) != 2 {
		t.Fatalf("list returned %d records, want 2", len(resp.Data.([]interface{})))
	}
}

func TestContactUpdate(t *testing.T) {
	r := newContactRouter()
	postForm(t, r, "/api/contact-us/", contactForm())

	form := url.Values{
		"name":    {"Asha R"},
		"email":   {"asha2@x.com"},
		"message": {"updated"},
	}
	w := doForm(t, r, http.MethodPut, "/api/contact-us/123", form)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	data := decodeResponse(t, w).Data.(map[string]interface{})
	if data["message"] != "updated" || data["email"] != "asha2@x.com" {
		t.Fatalf("update data = %v", data)
	}

	if w := doForm(t, r, http.MethodPut, "/api/contact-us/999", form); w.Code != http.StatusNotFound {
		t.Fatalf("update missing status = %d, want 404", w.Code)
	}
}

func TestContactPatchKeepsOmittedFields(t *testing.T) {
	r := newContactRouter()
	postForm(t, r, "/api/contact-us/", contactForm())

	w := doForm(t, r, http.MethodPatch, "/api/contact-us/123", url.Values{"message": {"patched"}})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", w.Code, w.Body.String())
	}
	data := decodeResponse(t, w).Data.(map[string]interface{})
	if data["message"] != "patched" {
		t.Fatalf("message = %v", data["message"])
	}
	if data["name"] != "Asha Rao" || data["email"] != "asha@x.com" {
		t.Fatalf("patch touched other fields: %v", data)
	}
}

func TestContactDelete(t *testing.T) {
	r := newContactRouter()
	postForm(t, r, "/api/contact-us/", contactForm())

	w := doRequest(t, r, http.MethodDelete, "/api/contact-us/123")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/api/contact-us/123"); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
	if w := doRequest(t, r, http.MethodDelete, "/api/contact-us/123"); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}
