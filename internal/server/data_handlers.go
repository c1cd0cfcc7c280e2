package server

import (
	"github.com/labstack/echo/v4"
)

type VideoStatus struct {
	State string `json:"state"`
}

type UploadVideoDataRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

// UploadVideoData streams the multipart "data" part straight into the
// file store; the payload is never buffered whole.
func (s *Server) UploadVideoData(ctx echo.Context) error {
	var req UploadVideoDataRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	fh, err := ctx.FormFile("data")
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	f, err := fh.Open()
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	defer f.Close()

	status, err := s.server.UploadVideoData(
		ctx.Request().Context(),
		req.ID,
		fh.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{
		Data: VideoStatus{State: string(status.State)},
	})
}

type DownloadVideoDataRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (s *Server) DownloadVideoData(ctx echo.Context) error {
	var req DownloadVideoDataRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	rc, contentType, err := s.server.DownloadVideoData(ctx.Request().Context(), req.ID)
	if err != nil {
		return errJSON(ctx, err)
	}
	defer rc.Close()

	return ctx.Stream(200, contentType, rc)
}
