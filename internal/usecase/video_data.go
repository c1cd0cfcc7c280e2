package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/clipshelf/clipshelf/internal/config"
)

// UploadVideoData streams a video payload into the file store. The video
// must already exist and the caller must be its recorded owner.
func (u Usecase) UploadVideoData(ctx context.Context, id int64, contentType string, r io.Reader) (VideoStatus, error) {
	user, ok := ctx.Value(config.CTX_KEY_USER_ID).(string)
	if !ok || user == "" {
		return VideoStatus{}, fmt.Errorf("user id not found in context")
	}

	v, err := u.repo.FindVideoByID(ctx, id)
	if err != nil {
		return VideoStatus{}, fmt.Errorf("upload data for video %d: %w", id, err)
	}

	owner, err := u.repo.FindVideoOwner(ctx, v)
	if err != nil {
		return VideoStatus{}, fmt.Errorf("upload data for video %d: %w", id, err)
	}
	if owner != user {
		return VideoStatus{}, fmt.Errorf("user %s does not own video %d: %w", user, id, ErrForbidden)
	}

	if err := u.fileStorageProvider.Save(ctx, id, contentType, r); err != nil {
		return VideoStatus{}, fmt.Errorf("save data for video %d: %w", id, err)
	}
	return VideoStatus{State: VideoStateReady}, nil
}

// DownloadVideoData opens the stored payload for the video, returning the
// stream and the content type recorded at upload time. The caller owns
// closing the stream.
func (u Usecase) DownloadVideoData(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	if _, err := u.repo.FindVideoByID(ctx, id); err != nil {
		return nil, "", fmt.Errorf("download data for video %d: %w", id, err)
	}

	ok, err := u.fileStorageProvider.Exists(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("download data for video %d: %w", id, err)
	}
	if !ok {
		return nil, "", fmt.Errorf("no data for video %d: %w", id, ErrNotFound)
	}

	rc, contentType, err := u.fileStorageProvider.Open(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("download data for video %d: %w", id, err)
	}
	return rc, contentType, nil
}
