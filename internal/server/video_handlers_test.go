package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/clipshelf/clipshelf/internal/catalog"
	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/filestorage"
	"github.com/clipshelf/clipshelf/internal/imaging"
	"github.com/clipshelf/clipshelf/internal/usecase"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store, err := filestorage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new local storage: %v", err)
	}
	s := &Server{
		server:    usecase.New(catalog.New(), store, imaging.NewProcessor()),
		validator: validator.New(),
	}
	return s.RegisterRoutes()
}

func createVideo(t *testing.T, h http.Handler, user, title string) Video {
	t.Helper()
	body := `{"title": "` + title + `", "content_type": "video/mp4"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", strings.NewReader(body))
	req.Header.Set(echoContentType, "application/json")
	req.Header.Set(config.HEADER_KEY_X_USER_ID, user)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 201 {
		t.Fatalf("create video: status %d, body %s", rec.Code, rec.Body)
	}
	var res struct {
		Data Video `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return res.Data
}

const echoContentType = "Content-Type"

func TestCreateVideoRequiresIdentity(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos",
		strings.NewReader(`{"title": "anon", "content_type": "video/mp4"}`))
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 401 {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateAndGetVideo(t *testing.T) {
	h := newTestHandler(t)

	v := createVideo(t, h, "alice", "first upload")
	if v.ID <= 0 {
		t.Fatalf("assigned id = %d, want > 0", v.ID)
	}
	if !strings.HasSuffix(v.DataURL, "/api/v1/videos/1/data") {
		t.Fatalf("data url = %q", v.DataURL)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("get: status %d, body %s", rec.Code, rec.Body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/videos/99", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 404 {
		t.Fatalf("get unknown: status %d, want 404", rec.Code)
	}
}

func TestCreateVideoTitleConflict(t *testing.T) {
	h := newTestHandler(t)

	createVideo(t, h, "alice", "taken")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos",
		strings.NewReader(`{"title": "taken", "content_type": "video/mp4"}`))
	req.Header.Set(echoContentType, "application/json")
	req.Header.Set(config.HEADER_KEY_X_USER_ID, "mallory")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 409 {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRateVideoHandler(t *testing.T) {
	h := newTestHandler(t)

	v := createVideo(t, h, "alice", "rate me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/1/rating/4", nil)
	req.Header.Set(config.HEADER_KEY_X_USER_ID, "bob")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("rate: status %d, body %s", rec.Code, rec.Body)
	}

	var res struct {
		Data AverageRating `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Data.Rating != 4 || res.Data.TotalRatings != 1 || res.Data.VideoID != v.ID {
		t.Fatalf("aggregate = %+v", res.Data)
	}

	// Scale enforcement lives at the façade.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/videos/1/rating/9", nil)
	req.Header.Set(config.HEADER_KEY_X_USER_ID, "bob")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 422 {
		t.Fatalf("out-of-scale rating: status %d, want 422", rec.Code)
	}
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadVideoDataForbidden(t *testing.T) {
	h := newTestHandler(t)

	createVideo(t, h, "alice", "protected")
	// bob must own something to even be a recognized user elsewhere, but
	// the upload gate checks the actual owner.
	createVideo(t, h, "bob", "bobs video")

	body, contentType := multipartBody(t, "data", "clip.mp4", "video/mp4", []byte("payload"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/1/data", body)
	req.Header.Set(echoContentType, contentType)
	req.Header.Set(config.HEADER_KEY_X_USER_ID, "bob")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 403 {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUploadAndDownloadVideoData(t *testing.T) {
	h := newTestHandler(t)

	createVideo(t, h, "alice", "streamable")

	payload := []byte("mpeg payload bytes")
	body, contentType := multipartBody(t, "data", "clip.mp4", "video/mp4", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/1/data", body)
	req.Header.Set(echoContentType, contentType)
	req.Header.Set(config.HEADER_KEY_X_USER_ID, "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("upload: status %d, body %s", rec.Code, rec.Body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/videos/1/data", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("download: status %d", rec.Code)
	}
	if got := rec.Header().Get(echoContentType); got != "video/mp4" {
		t.Fatalf("content type = %q, want video/mp4", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Fatal("downloaded payload differs from upload")
	}
}

func TestApplyImageEffectBadInput(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartBody(t, "data", "pic.jpg", "image/jpeg", []byte("not a jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/effects/3", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
