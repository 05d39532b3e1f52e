package handler

import (
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/deppfellow/emotion-detector/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Emotion *EmotionHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Emotion: NewEmotionHandler(s, services.Emotion),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
