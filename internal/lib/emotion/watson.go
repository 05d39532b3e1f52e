package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ModelIDHeader selects the Watson NLP model serving the request.
const ModelIDHeader = "grpc-metadata-mm-model-id"

type watsonRequest struct {
	RawDocument watsonDocument `json:"raw_document"`
}

type watsonDocument struct {
	Text string `json:"text"`
}

// Scores are pointers so a missing key can be told apart from a zero score,
// and json.Number so their textual form survives.
type watsonResponse struct {
	EmotionPredictions []struct {
		Emotion struct {
			Anger   *json.Number `json:"anger"`
			Disgust *json.Number `json:"disgust"`
			Fear    *json.Number `json:"fear"`
			Joy     *json.Number `json:"joy"`
			Sadness *json.Number `json:"sadness"`
		} `json:"emotion"`
	} `json:"emotionPredictions"`
}

// WatsonDetector calls a Watson NLP EmotionPredict endpoint.
type WatsonDetector struct {
	url     string
	modelID string
	client  *http.Client
	logger  *zerolog.Logger
}

// NewWatsonDetector builds a detector for the configured endpoint. Outgoing
// calls are recorded as New Relic external segments when the request context
// carries a transaction.
func NewWatsonDetector(cfg config.WatsonConfig, timeout time.Duration, logger *zerolog.Logger) *WatsonDetector {
	return &WatsonDetector{
		url:     cfg.URL,
		modelID: cfg.ModelID,
		client: &http.Client{
			Timeout:   timeout,
			Transport: newrelic.NewRoundTripper(nil),
		},
		logger: logger,
	}
}

// Detect sends text to Watson and maps the first emotion prediction.
//
// Watson answers 400 for text it cannot classify (e.g. only whitespace);
// that is returned as an inconclusive Result, not as an error.
func (w *WatsonDetector) Detect(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(watsonRequest{RawDocument: watsonDocument{Text: text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal watson request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build watson request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ModelIDHeader, w.modelID)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watson request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read watson response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		w.logger.Debug().
			Int("status", resp.StatusCode).
			Str("raw_response", preview(respBody)).
			Msg("watson rejected text, treating as inconclusive")
		return &Result{}, nil
	default:
		return nil, fmt.Errorf("watson returned status %d: %s", resp.StatusCode, preview(respBody))
	}

	var out watsonResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watson response: %w", err)
	}

	if len(out.EmotionPredictions) == 0 {
		return nil, errors.New("watson response has no emotion predictions")
	}

	e := out.EmotionPredictions[0].Emotion
	r, err := resultFromNumbers([5]*json.Number{e.Anger, e.Disgust, e.Fear, e.Joy, e.Sadness})
	if err != nil {
		return nil, fmt.Errorf("invalid watson response: %w", err)
	}
	r.DominantEmotion = Dominant(r.Anger, r.Disgust, r.Fear, r.Joy, r.Sadness)

	return r, nil
}

// Ping checks that the Watson endpoint answers HTTP at all. The status code
// is irrelevant; only transport failures count.
func (w *WatsonDetector) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build watson ping: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("watson unreachable: %w", err)
	}
	resp.Body.Close()

	return nil
}

const previewLimit = 200

// preview shortens a response body for logs and errors, cutting on a
// rune boundary.
func preview(body []byte) string {
	if len(body) <= previewLimit {
		return string(body)
	}

	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}

	return string(body[:cut])
}
