package usecase

import (
	"context"
	"io"
)

func New(repo Repository, fs FileStorageProvider, img ImageProcessor) Usecase {
	return Usecase{
		repo:                repo,
		fileStorageProvider: fs,
		imageProcessor:      img,
	}
}

// Repository is the metadata/rating store backing the catalog.
type Repository interface {
	Health() map[string]string

	SaveVideo(context.Context, Video, string) (Video, error)
	FindVideoByID(context.Context, int64) (Video, error)
	FindAllVideos(context.Context) ([]Video, error)
	FindVideoOwner(context.Context, Video) (string, error)
	SetVideoRating(ctx context.Context, id int64, rating float64, user string) error
	GetVideoRating(ctx context.Context, id int64) (float64, error)
	GetTotalRatings(ctx context.Context, id int64) (int, error)
}

// FileStorageProvider owns durable storage of raw video payloads,
// addressed by video id.
type FileStorageProvider interface {
	Save(ctx context.Context, id int64, contentType string, r io.Reader) error
	Exists(ctx context.Context, id int64) (bool, error)
	Open(ctx context.Context, id int64) (io.ReadCloser, string, error)
}

// ImageProcessor applies a numeric-coded effect to encoded image bytes.
type ImageProcessor interface {
	Apply(ctx context.Context, code int64, img []byte) ([]byte, error)
}

type Usecase struct {
	repo                Repository
	fileStorageProvider FileStorageProvider
	imageProcessor      ImageProcessor
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}
