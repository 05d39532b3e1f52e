package router

import (
	"github.com/deppfellow/emotion-detector/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerEmotionRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Emotion.RedirectRoot)
	r.GET("/emotionDetector", h.Emotion.DetectEmotion())
}
