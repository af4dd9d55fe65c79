package v1

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yogawell/member-service/internal/core/repository/memory"
	logicv1 "github.com/yogawell/member-service/internal/logic/v1"
	"github.com/yogawell/member-service/internal/storage/photo"
)

func newProfileRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := photo.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	service := logicv1.NewProfileService(memory.NewProfileRepository(), store, 5*1024*1024)
	handler := NewProfileHandler(service)
	return newTestRouter(handler.RegisterRoutes, "/personal"), dir
}

func profileFields() map[string]string {
	return map[string]string{
		"contact_number": "123",
		"full_name":      "Asha Rao",
		"dob_day":        "15",
		"dob_month":      "6",
		"dob_year":       "1990",
		"age":            "35",
		"gender":         "female",
		"email":          "asha@x.com",
		"address":        "12 Lake Rd",
	}
}

// doMultipart sends a multipart request; photoName == "" omits the
// profile_photo part.
func doMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, photoName string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%q) error = %v", k, err)
		}
	}
	if photoName != "" {
		part, err := mw.CreateFormFile("profile_photo", photoName)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write([]byte("jpegdata")); err != nil {
			t.Fatalf("write photo part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileSubmitAndGet(t *testing.T) {
	r, dir := newProfileRouter(t)

	w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "face.jpg")
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if !resp.Success || resp.Message != "Profile created successfully" {
		t.Fatalf("submit response = %+v", resp)
	}
	data := resp.Data.(map[string]interface{})
	if data["gender"] != "Female" {
		t.Fatalf("gender = %v, want Female", data["gender"])
	}
	if data["dob"] != "15-06-1990" {
		t.Fatalf("dob = %v", data["dob"])
	}
	if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); err != nil {
		t.Fatalf("photo not written: %v", err)
	}

	w = doRequest(t, r, http.MethodGet, "/personal/get/123")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	data = decodeResponse(t, w).Data.(map[string]interface{})
	if data["full_name"] != "Asha Rao" {
		t.Fatalf("full_name = %v", data["full_name"])
	}
}

func TestProfileSubmitRequiresPhoto(t *testing.T) {
	r, _ := newProfileRouter(t)

	w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if resp := decodeResponse(t, w); resp.Message != "profile_photo attachment is required" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestProfileSubmitValidation(t *testing.T) {
	r, _ := newProfileRouter(t)

	t.Run("invalid gender", func(t *testing.T) {
		fields := profileFields()
		fields["gender"] = "banana"
		w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", fields, "face.jpg")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
		}
		if resp := decodeResponse(t, w); resp.Message != "gender must be Male, Female, or Other" {
			t.Fatalf("message = %q", resp.Message)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		fields := profileFields()
		fields["dob_day"], fields["dob_month"] = "31", "2"
		w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", fields, "face.jpg")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
		}
	})
}

func TestProfileDuplicateSubmit(t *testing.T) {
	r, _ := newProfileRouter(t)

	if w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "face.jpg"); w.Code != http.StatusOK {
		t.Fatalf("first submit status = %d", w.Code)
	}
	w := doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "face.jpg")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate submit status = %d, want 409", w.Code)
	}
}

func TestProfileUpdateReplacesPhoto(t *testing.T) {
	r, dir := newProfileRouter(t)
	doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "old.jpg")

	fields := profileFields()
	delete(fields, "contact_number")
	fields["full_name"] = "Asha R"
	w := doMultipart(t, r, http.MethodPut, "/personal/update/123", fields, "new.jpg")
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "123_new.jpg")); err != nil {
		t.Fatalf("new photo missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "123_old.jpg")); !os.IsNotExist(err) {
		t.Fatalf("old photo was not removed")
	}
}

func TestProfilePatchWithoutPhoto(t *testing.T) {
	r, dir := newProfileRouter(t)
	doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "face.jpg")

	w := doMultipart(t, r, http.MethodPatch, "/personal/patch/123", map[string]string{"address": "99 Hill St"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", w.Code, w.Body.String())
	}
	data := decodeResponse(t, w).Data.(map[string]interface{})
	if data["address"] != "99 Hill St" {
		t.Fatalf("address = %v", data["address"])
	}
	if data["full_name"] != "Asha Rao" {
		t.Fatalf("patch touched full_name: %v", data["full_name"])
	}
	if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); err != nil {
		t.Fatalf("photo removed by photo-less patch: %v", err)
	}
}

func TestProfileDeleteRemovesPhoto(t *testing.T) {
	r, dir := newProfileRouter(t)
	doMultipart(t, r, http.MethodPost, "/personal/submit-details/", profileFields(), "face.jpg")

	w := doRequest(t, r, http.MethodDelete, "/personal/delete/123")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); !os.IsNotExist(err) {
		t.Fatalf("photo still present after delete")
	}
	if w := doRequest(t, r, http.MethodGet, "/personal/get/123"); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}
