package server

import (
	"github.com/labstack/echo/v4"
)

type AverageRating struct {
	Rating       float64 `json:"rating"`
	VideoID      int64   `json:"video_id"`
	TotalRatings int     `json:"total_ratings"`
}

type RateVideoRequest struct {
	ID     int64 `param:"id" validate:"required,min=1"`
	Rating int   `param:"rating" validate:"required,min=1,max=5"`
}

func (s *Server) RateVideo(ctx echo.Context) error {
	var req RateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	avg, err := s.server.RateVideo(ctx.Request().Context(), req.ID, float64(req.Rating))
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{
		Data: AverageRating{
			Rating:       avg.Rating,
			VideoID:      avg.VideoID,
			TotalRatings: avg.TotalRatings,
		},
	})
}

type GetVideoRatingRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (s *Server) GetVideoRating(ctx echo.Context) error {
	var req GetVideoRatingRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	avg, err := s.server.GetVideoRating(ctx.Request().Context(), req.ID)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{
		Data: AverageRating{
			Rating:       avg.Rating,
			VideoID:      avg.VideoID,
			TotalRatings: avg.TotalRatings,
		},
	})
}
