package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const geminiInstruction = `You classify the emotions expressed in a statement.
Score each of anger, disgust, fear, joy and sadness with a confidence between 0 and 1.
Set dominant_emotion to the label with the highest score, or to an empty string when
the statement carries no recognisable emotion or is not meaningful text.
Answer with JSON only.`

// geminiResult mirrors the JSON the model is asked to produce.
type geminiResult struct {
	Anger           *json.Number `json:"anger"`
	Disgust         *json.Number `json:"disgust"`
	Fear            *json.Number `json:"fear"`
	Joy             *json.Number `json:"joy"`
	Sadness         *json.Number `json:"sadness"`
	DominantEmotion string       `json:"dominant_emotion"`
}

// GeminiDetector asks a Gemini model to score the five emotions.
//
// The genai client is created on first use and shared by every request
// until Close.
type GeminiDetector struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  *zerolog.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiDetector(cfg config.GeminiConfig, timeout time.Duration, logger *zerolog.Logger) *GeminiDetector {
	return &GeminiDetector{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   strings.TrimSpace(cfg.Model),
		timeout: timeout,
		logger:  logger,
	}
}

func (g *GeminiDetector) Detect(ctx context.Context, text string) (*Result, error) {
	if g.apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	defer newrelic.FromContext(ctx).StartSegment("gemini.GenerateContent").End()

	cl, err := g.getClient()
	if err != nil {
		return nil, err
	}

	m := cl.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   resultSchema(),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(geminiInstruction)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	txt := strings.TrimSpace(firstText(resp))
	if txt == "" {
		return nil, errors.New("gemini returned an empty response")
	}

	return parseGeminiResult(txt, g.logger)
}

func (g *GeminiDetector) getClient() (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	// Not tied to a request context: the client outlives the request.
	cl, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = cl

	return cl, nil
}

// Close releases the shared client. A later Detect creates a new one.
func (g *GeminiDetector) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}

	err := g.client.Close()
	g.client = nil

	return err
}

func parseGeminiResult(txt string, logger *zerolog.Logger) (*Result, error) {
	var out geminiResult
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return nil, fmt.Errorf("gemini returned bad JSON: %w", err)
	}

	r, err := resultFromNumbers([5]*json.Number{out.Anger, out.Disgust, out.Fear, out.Joy, out.Sadness})
	if err != nil {
		return nil, fmt.Errorf("invalid gemini response: %w", err)
	}
	r.DominantEmotion = strings.ToLower(strings.TrimSpace(out.DominantEmotion))

	if r.DominantEmotion != "" && !IsLabel(r.DominantEmotion) {
		logger.Warn().
			Str("dominant_emotion", r.DominantEmotion).
			Msg("gemini returned an unknown label, recomputing from scores")
		r.DominantEmotion = Dominant(r.Anger, r.Disgust, r.Fear, r.Joy, r.Sadness)
	}

	return r, nil
}

func resultSchema() *genai.Schema {
	score := &genai.Schema{Type: genai.TypeNumber}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			Anger:              score,
			Disgust:            score,
			Fear:               score,
			Joy:                score,
			Sadness:            score,
			"dominant_emotion": {Type: genai.TypeString},
		},
		Required: []string{Anger, Disgust, Fear, Joy, Sadness, "dominant_emotion"},
	}
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
