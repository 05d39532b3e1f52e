package service

import (
	"github.com/deppfellow/emotion-detector/internal/server"
)

type Services struct {
	Emotion *EmotionService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Emotion: NewEmotionService(s),
	}
}
