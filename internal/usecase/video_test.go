package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/clipshelf/clipshelf/internal/catalog"
	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/filestorage"
	"github.com/clipshelf/clipshelf/internal/imaging"
	"github.com/clipshelf/clipshelf/internal/usecase"
)

func newTestUsecase(t *testing.T) usecase.Usecase {
	t.Helper()
	store, err := filestorage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new local storage: %v", err)
	}
	return usecase.New(catalog.New(), store, imaging.NewProcessor())
}

func asUser(user string) context.Context {
	return context.WithValue(context.Background(), config.CTX_KEY_USER_ID, user)
}

func TestSaveVideoRequiresIdentity(t *testing.T) {
	u := newTestUsecase(t)

	_, err := u.SaveVideo(context.Background(), usecase.Video{Title: "anon"})
	if err == nil {
		t.Fatal("save without caller identity succeeded")
	}
}

func TestRateVideoFlow(t *testing.T) {
	u := newTestUsecase(t)

	v, err := u.SaveVideo(asUser("alice"), usecase.Video{Title: "cats", ContentType: "video/mp4"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := u.RateVideo(asUser("bob"), v.ID, 3); err != nil {
		t.Fatalf("rate: %v", err)
	}
	avg, err := u.RateVideo(asUser("carol"), v.ID, 5)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if avg.Rating != 4.0 || avg.TotalRatings != 2 {
		t.Fatalf("aggregate = %+v, want rating 4.0 from 2 raters", avg)
	}

	// Re-rating replaces the earlier value instead of appending.
	avg, err = u.RateVideo(asUser("carol"), v.ID, 1)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if avg.Rating != 2.0 || avg.TotalRatings != 2 {
		t.Fatalf("aggregate = %+v, want rating 2.0 from 2 raters", avg)
	}
}

func TestRateVideoUnknown(t *testing.T) {
	u := newTestUsecase(t)

	_, err := u.RateVideo(asUser("bob"), 404, 5)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetVideoRatingFresh(t *testing.T) {
	u := newTestUsecase(t)

	v, err := u.SaveVideo(asUser("alice"), usecase.Video{Title: "unrated", ContentType: "video/mp4"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	avg, err := u.GetVideoRating(asUser("alice"), v.ID)
	if err != nil {
		t.Fatalf("get rating: %v", err)
	}
	if avg.Rating != 0 || avg.TotalRatings != 0 {
		t.Fatalf("aggregate = %+v, want zero values for a fresh video", avg)
	}
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	u := newTestUsecase(t)

	v, err := u.SaveVideo(asUser("alice"), usecase.Video{Title: "upload me", ContentType: "video/mp4"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	payload := []byte("mpeg payload")
	status, err := u.UploadVideoData(asUser("alice"), v.ID, "video/mp4", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if status.State != usecase.VideoStateReady {
		t.Fatalf("state = %q, want READY", status.State)
	}

	rc, contentType, err := u.DownloadVideoData(asUser("alice"), v.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("downloaded %q, want %q", got, payload)
	}
	if contentType != "video/mp4" {
		t.Fatalf("content type = %q, want video/mp4", contentType)
	}
}

func TestUploadByNonOwnerForbidden(t *testing.T) {
	u := newTestUsecase(t)

	v, err := u.SaveVideo(asUser("alice"), usecase.Video{Title: "guarded", ContentType: "video/mp4"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := u.UploadVideoData(asUser("alice"), v.ID, "video/mp4", strings.NewReader("original")); err != nil {
		t.Fatalf("owner upload: %v", err)
	}

	_, err = u.UploadVideoData(asUser("bob"), v.ID, "video/mp4", strings.NewReader("overwrite"))
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// The stored payload is untouched by the rejected write.
	rc, _, err := u.DownloadVideoData(asUser("alice"), v.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "original" {
		t.Fatalf("payload = %q, want %q", got, "original")
	}
}

func TestUploadUnknownVideo(t *testing.T) {
	u := newTestUsecase(t)

	_, err := u.UploadVideoData(asUser("alice"), 404, "video/mp4", strings.NewReader("x"))
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDownloadWithoutPayload(t *testing.T) {
	u := newTestUsecase(t)

	v, err := u.SaveVideo(asUser("alice"), usecase.Video{Title: "no data", ContentType: "video/mp4"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	_, _, err = u.DownloadVideoData(asUser("alice"), v.ID)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
