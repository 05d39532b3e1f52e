package model

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/emotion-detector/internal/errs"
	"github.com/deppfellow/emotion-detector/internal/lib/emotion"
	"github.com/deppfellow/emotion-detector/internal/validation"
)

const (
	// InvalidTextMessage answers a missing text and an inconclusive classification.
	InvalidTextMessage = "Invalid text! Please try again!"

	// ProcessingFailedMessage answers a collaborator failure.
	ProcessingFailedMessage = "Could not process the text"
)

const responseTemplate = "For the given statement, the system response is " +
	"'anger': %s, 'disgust': %s, 'fear': %s, 'joy': %s and 'sadness': %s. " +
	"The dominant emotion is %s."

type EmotionDetectorRequest struct {
	Text string `query:"text" validate:"required"`
}

func (r *EmotionDetectorRequest) Validate() error {
	if err := validation.Validate.Struct(r); err != nil {
		return errs.NewBadRequestError(InvalidTextMessage, true, nil)
	}
	return nil
}

// EmotionScores carries scores as JSON numbers so the collaborator's own
// textual form reaches both the numeric fields and response_text.
type EmotionScores struct {
	Anger           json.Number `json:"anger"`
	Disgust         json.Number `json:"disgust"`
	Fear            json.Number `json:"fear"`
	Joy             json.Number `json:"joy"`
	Sadness         json.Number `json:"sadness"`
	DominantEmotion string      `json:"dominant_emotion"`
}

// EmotionDetectorResponse is the body of a 200 from /emotionDetector.
//
// Scores is nil for an inconclusive classification, which leaves only
// response_text in the JSON.
type EmotionDetectorResponse struct {
	*EmotionScores
	ResponseText string `json:"response_text"`
}

// NewInconclusiveResponse builds the body for a text with no dominant emotion.
func NewInconclusiveResponse() *EmotionDetectorResponse {
	return &EmotionDetectorResponse{ResponseText: InvalidTextMessage}
}

// NewEmotionDetectorResponse builds the success body from a validated,
// conclusive result.
//
// A score keeps the literal the collaborator sent. Without one it is written
// the way encoding/json writes a float64.
func NewEmotionDetectorResponse(r *emotion.Result) (*EmotionDetectorResponse, error) {
	var numbers [5]json.Number
	for i, score := range r.Scores() {
		n, err := scoreNumber(score, r.Literals[i])
		if err != nil {
			return nil, err
		}
		numbers[i] = n
	}

	scores := &EmotionScores{
		Anger:           numbers[0],
		Disgust:         numbers[1],
		Fear:            numbers[2],
		Joy:             numbers[3],
		Sadness:         numbers[4],
		DominantEmotion: r.DominantEmotion,
	}

	return &EmotionDetectorResponse{
		EmotionScores: scores,
		ResponseText:  ResponseText(scores),
	}, nil
}

func scoreNumber(score float64, literal string) (json.Number, error) {
	if literal != "" {
		return json.Number(literal), nil
	}

	b, err := json.Marshal(score)
	if err != nil {
		return "", fmt.Errorf("failed to format score: %w", err)
	}

	return json.Number(b), nil
}

// ResponseText renders the human readable sentence with the scores exactly
// as they appear in the JSON body.
func ResponseText(s *EmotionScores) string {
	return fmt.Sprintf(responseTemplate,
		s.Anger, s.Disgust, s.Fear, s.Joy, s.Sadness, s.DominantEmotion)
}
