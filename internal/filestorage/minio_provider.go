package filestorage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

func NewMinIOStorage(bucket, endpoint, accessKeyID, secretAccessKey string) *MinIOStorage {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		panic(err)
	}
	return &MinIOStorage{
		client: m,
		bucket: bucket,
	}
}

// MinIOStorage keeps video payloads as objects in a MinIO bucket. A put
// publishes the object in one shot, so readers never see a partial
// payload; the content type rides on the object metadata.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

var _ usecase.FileStorageProvider = (*MinIOStorage)(nil)

func (s *MinIOStorage) Save(ctx context.Context, id int64, contentType string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(id), r, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: put object %d: %v", usecase.ErrStorage, id, err)
	}
	return nil
}

func (s *MinIOStorage) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, objectKey(id), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat object %d: %v", usecase.ErrStorage, id, err)
}

func (s *MinIOStorage) Open(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, objectKey(id), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", fmt.Errorf("payload %d: %w", id, usecase.ErrNotFound)
		}
		return nil, "", fmt.Errorf("%w: stat object %d: %v", usecase.ErrStorage, id, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("%w: get object %d: %v", usecase.ErrStorage, id, err)
	}
	return obj, stat.ContentType, nil
}
