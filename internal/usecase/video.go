package usecase

import (
	"context"
	"fmt"

	"github.com/clipshelf/clipshelf/internal/config"
)

// Video is a video's metadata record. ID 0 marks "not yet assigned";
// the repository assigns ids on first save. Rating is the cached
// aggregate, refreshed on every rating read.
type Video struct {
	ID          int64
	Title       string
	ContentType string
	Rating      float64
}

// AverageRating is the aggregate returned for rating reads: the mean
// across all raters and the number of distinct users that have rated.
type AverageRating struct {
	Rating       float64
	VideoID      int64
	TotalRatings int
}

type VideoState string

const (
	VideoStateReady      VideoState = "READY"
	VideoStateProcessing VideoState = "PROCESSING"
)

type VideoStatus struct {
	State VideoState
}

func (u Usecase) SaveVideo(ctx context.Context, v Video) (Video, error) {
	owner, ok := ctx.Value(config.CTX_KEY_USER_ID).(string)
	if !ok || owner == "" {
		return Video{}, fmt.Errorf("user id not found in context")
	}
	return u.repo.SaveVideo(ctx, v, owner)
}

func (u Usecase) ListVideos(ctx context.Context) ([]Video, error) {
	return u.repo.FindAllVideos(ctx)
}

func (u Usecase) GetVideoByID(ctx context.Context, id int64) (Video, error) {
	return u.repo.FindVideoByID(ctx, id)
}

// RateVideo upserts the caller's rating for the video and returns the
// refreshed aggregate.
func (u Usecase) RateVideo(ctx context.Context, id int64, rating float64) (AverageRating, error) {
	user, ok := ctx.Value(config.CTX_KEY_USER_ID).(string)
	if !ok || user == "" {
		return AverageRating{}, fmt.Errorf("user id not found in context")
	}

	if _, err := u.repo.FindVideoByID(ctx, id); err != nil {
		return AverageRating{}, fmt.Errorf("rate video %d: %w", id, err)
	}

	if err := u.repo.SetVideoRating(ctx, id, rating, user); err != nil {
		return AverageRating{}, fmt.Errorf("rate video %d: %w", id, err)
	}

	return u.videoRating(ctx, id)
}

func (u Usecase) GetVideoRating(ctx context.Context, id int64) (AverageRating, error) {
	if _, err := u.repo.FindVideoByID(ctx, id); err != nil {
		return AverageRating{}, fmt.Errorf("get rating for video %d: %w", id, err)
	}
	return u.videoRating(ctx, id)
}

func (u Usecase) videoRating(ctx context.Context, id int64) (AverageRating, error) {
	avg, err := u.repo.GetVideoRating(ctx, id)
	if err != nil {
		return AverageRating{}, err
	}
	total, err := u.repo.GetTotalRatings(ctx, id)
	if err != nil {
		return AverageRating{}, err
	}
	return AverageRating{
		Rating:       avg,
		VideoID:      id,
		TotalRatings: total,
	}, nil
}
