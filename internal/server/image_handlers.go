package server

import (
	"io"

	"github.com/labstack/echo/v4"
)

type ApplyImageEffectRequest struct {
	// Any code binds; the dispatcher treats codes outside the known set
	// as the identity transform.
	Code int64 `param:"code"`
}

// ApplyImageEffect transforms the multipart "data" image with the coded
// effect and echoes the result back with the part's original content
// type. Nothing is stored.
func (s *Server) ApplyImageEffect(ctx echo.Context) error {
	var req ApplyImageEffectRequest
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

	img, err := io.ReadAll(f)
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	out, err := s.server.ApplyImageEffect(ctx.Request().Context(), req.Code, img)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.Blob(200, fh.Header.Get("Content-Type"), out)
}
