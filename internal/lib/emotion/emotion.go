// Package emotion talks to the external emotion-classification collaborator.
//
// The rest of the application only sees the Detector interface and the
// Result it returns. Concrete adapters reach a Watson NLP EmotionPredict
// endpoint or a Gemini model.
package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/rs/zerolog"
)

// The five emotion labels, in tie-break order.
const (
	Anger   = "anger"
	Disgust = "disgust"
	Fear    = "fear"
	Joy     = "joy"
	Sadness = "sadness"
)

// Labels lists every label a dominant emotion may take.
var Labels = []string{Anger, Disgust, Fear, Joy, Sadness}

// Detector classifies a text. A nil Result or a non-nil error means the
// collaborator failed; a Result with an empty DominantEmotion is an
// inconclusive but valid classification.
type Detector interface {
	Detect(ctx context.Context, text string) (*Result, error)
}

// Pinger is implemented by detectors that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Result is the collaborator's classification of one text.
type Result struct {
	Anger           float64
	Disgust         float64
	Fear            float64
	Joy             float64
	Sadness         float64
	DominantEmotion string

	// Literals holds each score as the collaborator wrote it, in Labels
	// order. An empty entry means there is no textual form to keep.
	Literals [5]string
}

// Scores returns the scores in Labels order.
func (r *Result) Scores() []float64 {
	return []float64{r.Anger, r.Disgust, r.Fear, r.Joy, r.Sadness}
}

// Inconclusive reports whether no dominant emotion was determined.
func (r *Result) Inconclusive() bool {
	return r.DominantEmotion == ""
}

// Validate checks a Result once, right after the collaborator returned it.
func (r *Result) Validate() error {
	for i, score := range r.Scores() {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return fmt.Errorf("score %s is not a finite number", Labels[i])
		}
	}

	for i, literal := range r.Literals {
		if literal == "" {
			continue
		}
		if err := checkLiteral(literal, r.Scores()[i]); err != nil {
			return fmt.Errorf("score %s: %w", Labels[i], err)
		}
	}

	if r.DominantEmotion != "" && !IsLabel(r.DominantEmotion) {
		return fmt.Errorf("unknown dominant emotion %q", r.DominantEmotion)
	}

	return nil
}

// checkLiteral requires literal to be a plain JSON number equal to score.
func checkLiteral(literal string, score float64) error {
	if strings.TrimSpace(literal) != literal || !json.Valid([]byte(literal)) {
		return fmt.Errorf("literal %q is not a JSON number", literal)
	}

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return fmt.Errorf("literal %q is not a JSON number", literal)
	}
	if v != score {
		return fmt.Errorf("literal %q does not match %v", literal, score)
	}

	return nil
}

// resultFromNumbers builds a Result from wire scores in Labels order,
// keeping their literal form. Every score must be present.
func resultFromNumbers(numbers [5]*json.Number) (*Result, error) {
	var scores [5]float64
	var literals [5]string

	for i, n := range numbers {
		if n == nil {
			return nil, fmt.Errorf("emotion score %s is missing", Labels[i])
		}

		v, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("emotion score %s: %w", Labels[i], err)
		}

		scores[i] = v
		literals[i] = n.String()
	}

	return &Result{
		Anger:    scores[0],
		Disgust:  scores[1],
		Fear:     scores[2],
		Joy:      scores[3],
		Sadness:  scores[4],
		Literals: literals,
	}, nil
}

// IsLabel reports whether s is one of the five emotion labels.
func IsLabel(s string) bool {
	for _, label := range Labels {
		if s == label {
			return true
		}
	}
	return false
}

// Dominant returns the label with the highest score. On ties the label that
// comes first in Labels wins. All-zero scores yield "".
func Dominant(anger, disgust, fear, joy, sadness float64) string {
	scores := []float64{anger, disgust, fear, joy, sadness}

	best := -1
	for i, score := range scores {
		if score <= 0 {
			continue
		}
		if best == -1 || score > scores[best] {
			best = i
		}
	}

	if best == -1 {
		return ""
	}

	return Labels[best]
}

// New builds the detector selected by cfg.Detector.Provider.
func New(cfg *config.Config, logger *zerolog.Logger) (Detector, error) {
	switch cfg.Detector.Provider {
	case config.ProviderWatson:
		return NewWatsonDetector(cfg.Detector.Watson, cfg.Detector.Timeout, logger), nil
	case config.ProviderGemini:
		return NewGeminiDetector(cfg.Detector.Gemini, cfg.Detector.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown detector provider %q", cfg.Detector.Provider)
	}
}
