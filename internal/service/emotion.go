package service

import (
	"context"
	"time"

	"github.com/deppfellow/emotion-detector/internal/errs"
	"github.com/deppfellow/emotion-detector/internal/middleware"
	"github.com/deppfellow/emotion-detector/internal/model"
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

const (
	outcomeSuccess      = "success"
	outcomeInconclusive = "inconclusive"
	outcomeFailed       = "failed"
)

type EmotionService struct {
	server *server.Server
}

func NewEmotionService(s *server.Server) *EmotionService {
	return &EmotionService{server: s}
}

// Detect classifies text with a single collaborator call. Failures of any
// kind surface as a 500 with ProcessingFailedMessage; an inconclusive
// classification is a normal response.
func (es *EmotionService) Detect(ctx context.Context, text string) (*model.EmotionDetectorResponse, error) {
	logger := middleware.LoggerFromContext(ctx, es.server.Logger).With().
		Str("operation", "detect_emotion").
		Int("text_length", len(text)).
		Logger()

	txn := newrelic.FromContext(ctx)

	start := time.Now()
	result, err := es.server.Detector.Detect(ctx, text)
	latency := time.Since(start)

	if txn != nil {
		txn.AddAttribute("emotion.detect_ms", latency.Milliseconds())
	}

	if threshold := es.server.Config.Observability.Logging.SlowDetectionThreshold; threshold > 0 && latency > threshold {
		logger.Warn().
			Dur("latency", latency).
			Dur("threshold", threshold).
			Msg("slow emotion detection")
	}

	if err == nil && result == nil {
		err = errors.New("detector returned no result")
	}
	if err == nil {
		if verr := result.Validate(); verr != nil {
			err = errors.Wrap(verr, "detector returned an invalid result")
		}
	}

	if err != nil {
		logger.Error().Err(err).Dur("latency", latency).Msg("emotion detection failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("emotion.outcome", outcomeFailed)
		}

		return nil, errs.NewInternalServerError(model.ProcessingFailedMessage)
	}

	if result.Inconclusive() {
		logger.Info().Dur("latency", latency).Msg("emotion detection inconclusive")

		if txn != nil {
			txn.AddAttribute("emotion.outcome", outcomeInconclusive)
		}

		return model.NewInconclusiveResponse(), nil
	}

	resp, err := model.NewEmotionDetectorResponse(result)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build emotion response")
		return nil, errs.NewInternalServerError(model.ProcessingFailedMessage)
	}

	logger.Info().
		Dur("latency", latency).
		Str("dominant_emotion", result.DominantEmotion).
		Msg("emotion detected")

	if txn != nil {
		txn.AddAttribute("emotion.outcome", outcomeSuccess)
		txn.AddAttribute("emotion.dominant", result.DominantEmotion)
	}

	return resp, nil
}
