package handler

import (
	"net/http"

	"github.com/deppfellow/emotion-detector/internal/model"
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/deppfellow/emotion-detector/internal/service"
	"github.com/labstack/echo/v4"
)

// RootRedirectLocation is where GET / sends clients.
const RootRedirectLocation = "/emotionDetector?text="

type EmotionHandler struct {
	Handler
	emotionService *service.EmotionService
}

func NewEmotionHandler(s *server.Server, emotionService *service.EmotionService) *EmotionHandler {
	return &EmotionHandler{
		Handler:        NewHandler(s),
		emotionService: emotionService,
	}
}

// DetectEmotion serves GET /emotionDetector.
func (h *EmotionHandler) DetectEmotion() echo.HandlerFunc {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.EmotionDetectorRequest) (*model.EmotionDetectorResponse, error) {
			return h.emotionService.Detect(c.Request().Context(), req.Text)
		},
		http.StatusOK,
		func() *model.EmotionDetectorRequest { return &model.EmotionDetectorRequest{} },
	)
}

// RedirectRoot serves GET /.
func (h *EmotionHandler) RedirectRoot(c echo.Context) error {
	return c.Redirect(http.StatusFound, RootRedirectLocation)
}
