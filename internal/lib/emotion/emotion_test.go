package emotion

import (
	"math"
	"testing"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/rs/zerolog"
)

func TestDominant(t *testing.T) {
	tests := []struct {
		name   string
		scores [5]float64 // anger, disgust, fear, joy, sadness
		want   string
	}{
		{name: "clear winner", scores: [5]float64{0.01, 0.01, 0.01, 0.95, 0.02}, want: Joy},
		{name: "first label wins a tie", scores: [5]float64{0.4, 0.1, 0.4, 0.05, 0.05}, want: Anger},
		{name: "tie between later labels", scores: [5]float64{0.1, 0.1, 0.1, 0.35, 0.35}, want: Joy},
		{name: "only sadness", scores: [5]float64{0, 0, 0, 0, 0.3}, want: Sadness},
		{name: "all zero is inconclusive", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.scores
			if got := Dominant(s[0], s[1], s[2], s[3], s[4]); got != tt.want {
				t.Errorf("Dominant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		wantErr bool
	}{
		{name: "conclusive", result: Result{Joy: 0.9, DominantEmotion: Joy}},
		{name: "inconclusive", result: Result{}},
		{name: "unknown label", result: Result{Joy: 0.9, DominantEmotion: "surprise"}, wantErr: true},
		{name: "nan score", result: Result{Fear: math.NaN(), DominantEmotion: Fear}, wantErr: true},
		{name: "infinite score", result: Result{Anger: math.Inf(1)}, wantErr: true},
		{name: "matching literals", result: Result{Joy: 0.9, DominantEmotion: Joy, Literals: [5]string{"0.0", "0", "0", "0.90", "0"}}},
		{name: "literal does not match score", result: Result{Joy: 0.9, DominantEmotion: Joy, Literals: [5]string{"", "", "", "0.8", ""}}, wantErr: true},
		{name: "literal is not a number", result: Result{Joy: 0.9, DominantEmotion: Joy, Literals: [5]string{"", "", "", "high", ""}}, wantErr: true},
		{name: "literal is not json", result: Result{Joy: 1, DominantEmotion: Joy, Literals: [5]string{"", "", "", "+1", ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultInconclusive(t *testing.T) {
	if !(&Result{}).Inconclusive() {
		t.Error("empty Result should be inconclusive")
	}
	if (&Result{DominantEmotion: Joy}).Inconclusive() {
		t.Error("Result with a dominant emotion should not be inconclusive")
	}
}

func TestNew(t *testing.T) {
	logger := zerolog.Nop()

	cfg := config.DefaultConfig()
	d, err := New(cfg, &logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := d.(*WatsonDetector); !ok {
		t.Errorf("New() = %T, want *WatsonDetector", d)
	}

	cfg.Detector.Provider = config.ProviderGemini
	d, err = New(cfg, &logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := d.(*GeminiDetector); !ok {
		t.Errorf("New() = %T, want *GeminiDetector", d)
	}

	cfg.Detector.Provider = "unknown"
	if _, err := New(cfg, &logger); err == nil {
		t.Error("New() error = nil for unknown provider")
	}
}
