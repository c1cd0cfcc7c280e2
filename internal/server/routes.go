package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewEchoLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	e.GET("/api/health", s.healthHandler)

	var videoGroup = e.Group("/api/v1/videos")
	videoGroup.GET("", s.ListVideos)
	videoGroup.POST("", s.CreateVideo, s.AuthMiddleware)
	videoGroup.GET("/:id", s.GetVideoByID)
	videoGroup.GET("/:id/rating", s.GetVideoRating)
	videoGroup.POST("/:id/rating/:rating", s.RateVideo, s.AuthMiddleware)
	videoGroup.GET("/:id/data", s.DownloadVideoData)
	videoGroup.POST("/:id/data", s.UploadVideoData, s.AuthMiddleware)

	var imageGroup = e.Group("/api/v1/images")
	imageGroup.POST("/effects/:code", s.ApplyImageEffect)

	return e
}

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}
