package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

type Video struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ContentType string  `json:"content_type"`
	Rating      float64 `json:"rating"`
	DataURL     string  `json:"data_url"`
}

func (s *Server) ListVideos(ctx echo.Context) error {
	videos, err := s.server.ListVideos(ctx.Request().Context())
	if err != nil {
		return errJSON(ctx, err)
	}

	list := make([]Video, 0, len(videos))
	for _, v := range videos {
		list = append(list, Video{
			ID:          v.ID,
			Title:       v.Title,
			ContentType: v.ContentType,
			Rating:      v.Rating,
			DataURL:     dataURL(ctx, v.ID),
		})
	}

	return ctx.JSON(200, Res{
		Data: list,
		Meta: &Meta{
			Total: len(list),
		},
	})
}

type CreateVideoRequest struct {
	ID          int64  `json:"id" validate:"omitempty,min=0"`
	Title       string `json:"title" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

func (s *Server) CreateVideo(ctx echo.Context) error {
	var req CreateVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	v, err := s.server.SaveVideo(ctx.Request().Context(), usecase.Video{
		ID:          req.ID,
		Title:       req.Title,
		ContentType: req.ContentType,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{
		Data: Video{
			ID:          v.ID,
			Title:       v.Title,
			ContentType: v.ContentType,
			Rating:      v.Rating,
			DataURL:     dataURL(ctx, v.ID),
		},
	})
}

type GetVideoRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (s *Server) GetVideoByID(ctx echo.Context) error {
	var req GetVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	v, err := s.server.GetVideoByID(ctx.Request().Context(), req.ID)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{
		Data: Video{
			ID:          v.ID,
			Title:       v.Title,
			ContentType: v.ContentType,
			Rating:      v.Rating,
			DataURL:     dataURL(ctx, v.ID),
		},
	})
}

// dataURL builds the full download URL for a video's payload, so the
// client can fetch the raw bytes right from the listing.
func dataURL(ctx echo.Context, id int64) string {
	scheme := ctx.Scheme()
	host := ctx.Request().Host
	return fmt.Sprintf("%s://%s/api/v1/videos/%d/data", scheme, host, id)
}
