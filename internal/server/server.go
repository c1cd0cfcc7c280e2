package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/clipshelf/clipshelf/internal/catalog"
	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/filestorage"
	"github.com/clipshelf/clipshelf/internal/imaging"
	"github.com/clipshelf/clipshelf/internal/usecase"
)

// Service is the application core the façade talks to.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	SaveVideo(context.Context, usecase.Video) (usecase.Video, error)
	ListVideos(context.Context) ([]usecase.Video, error)
	GetVideoByID(context.Context, int64) (usecase.Video, error)

	RateVideo(ctx context.Context, id int64, rating float64) (usecase.AverageRating, error)
	GetVideoRating(ctx context.Context, id int64) (usecase.AverageRating, error)

	UploadVideoData(ctx context.Context, id int64, contentType string, r io.Reader) (usecase.VideoStatus, error)
	DownloadVideoData(ctx context.Context, id int64) (io.ReadCloser, string, error)

	ApplyImageEffect(ctx context.Context, code int64, img []byte) ([]byte, error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
}

func NewServer() (*http.Server, error) {
	repo := catalog.New()

	store, err := newFileStorage()
	if err != nil {
		return nil, fmt.Errorf("init file storage: %w", err)
	}

	sv := usecase.New(repo, store, imaging.NewProcessor())
	v := validator.New()

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	NewServer := &Server{
		port:      port,
		server:    sv,
		validator: v,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

func newFileStorage() (usecase.FileStorageProvider, error) {
	switch os.Getenv(config.ENV_KEY_STORAGE_DRIVER) {
	case config.STORAGE_DRIVER_MINIO:
		return filestorage.NewMinIOStorage(
			os.Getenv(config.ENV_KEY_MINIO_BUCKET),
			os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
		), nil
	case config.STORAGE_DRIVER_S3:
		return filestorage.NewS3Storage(os.Getenv(config.ENV_KEY_S3_BUCKET)), nil
	default:
		dir := os.Getenv(config.ENV_KEY_STORAGE_DIR)
		if dir == "" {
			dir = "data"
		}
		return filestorage.NewLocalStorage(dir)
	}
}
