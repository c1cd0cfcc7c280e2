package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

type S3Storage struct {
	client *s3.Client
	bucket string
}

var _ usecase.FileStorageProvider = (*S3Storage)(nil)

func NewS3Storage(bucket string) *S3Storage {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic(err)
	}
	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}
}

func (s *S3Storage) Save(ctx context.Context, id int64, contentType string, r io.Reader) error {
	key := objectKey(id)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: put object %d: %v", usecase.ErrStorage, id, err)
	}
	return nil
}

func (s *S3Storage) Exists(ctx context.Context, id int64) (bool, error) {
	key := objectKey(id)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err == nil {
		return true, nil
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, fmt.Errorf("%w: head object %d: %v", usecase.ErrStorage, id, err)
}

func (s *S3Storage) Open(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	key := objectKey(id)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, "", fmt.Errorf("payload %d: %w", id, usecase.ErrNotFound)
		}
		return nil, "", fmt.Errorf("%w: get object %d: %v", usecase.ErrStorage, id, err)
	}

	var contentType string
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

func objectKey(id int64) string {
	return path.Join("videos", strconv.FormatInt(id, 10))
}
