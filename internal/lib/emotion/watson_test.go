package emotion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/rs/zerolog"
)

const watsonJoyPayload = `{
  "emotionPredictions": [
    {
      "emotion": {"anger": 0.01, "disgust": 0.01, "fear": 0.01, "joy": 0.95, "sadness": 0.02},
      "target": "",
      "emotionMentions": []
    }
  ],
  "producerId": {"name": "Ensemble Aggregated Emotion Workflow", "version": "0.0.1"}
}`

func newTestWatson(t *testing.T, h http.HandlerFunc) *WatsonDetector {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	return NewWatsonDetector(config.WatsonConfig{
		URL:     srv.URL,
		ModelID: "test-model",
	}, 5*time.Second, &logger)
}

type capturedRequest struct {
	method      string
	modelID     string
	contentType string
	body        watsonRequest
}

func TestWatsonDetectSendsRequest(t *testing.T) {
	captured := make(chan capturedRequest, 1)

	d := newTestWatson(t, func(w http.ResponseWriter, r *http.Request) {
		got := capturedRequest{
			method:      r.Method,
			modelID:     r.Header.Get(ModelIDHeader),
			contentType: r.Header.Get("Content-Type"),
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got.body)
		captured <- got

		_, _ = io.WriteString(w, watsonJoyPayload)
	})

	if _, err := d.Detect(context.Background(), "I am happy"); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	got := <-captured

	if got.method != http.MethodPost {
		t.Errorf("method = %q, want POST", got.method)
	}
	if got.modelID != "test-model" {
		t.Errorf("%s = %q, want %q", ModelIDHeader, got.modelID, "test-model")
	}
	if got.contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got.contentType)
	}
	if got.body.RawDocument.Text != "I am happy" {
		t.Errorf("raw_document.text = %q, want %q", got.body.RawDocument.Text, "I am happy")
	}
}

func TestWatsonDetect(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    *Result
		wantErr bool
	}{
		{
			name:   "scores and dominant emotion",
			status: http.StatusOK,
			body:   watsonJoyPayload,
			want: &Result{
				Anger: 0.01, Disgust: 0.01, Fear: 0.01, Joy: 0.95, Sadness: 0.02,
				DominantEmotion: Joy,
				Literals:        [5]string{"0.01", "0.01", "0.01", "0.95", "0.02"},
			},
		},
		{
			name:   "score literals are kept",
			status: http.StatusOK,
			body:   `{"emotionPredictions": [{"emotion": {"anger": 0.0, "disgust": 1e-07, "fear": 0.10, "joy": 0.9, "sadness": 0}}]}`,
			want: &Result{
				Disgust: 1e-7, Fear: 0.1, Joy: 0.9,
				DominantEmotion: Joy,
				Literals:        [5]string{"0.0", "1e-07", "0.10", "0.9", "0"},
			},
		},
		{
			name:   "bad request is inconclusive",
			status: http.StatusBadRequest,
			body:   `{"code":3,"message":"Invalid input"}`,
			want:   &Result{},
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"emotionPredictions": [`,
			wantErr: true,
		},
		{
			name:    "no predictions",
			status:  http.StatusOK,
			body:    `{"emotionPredictions": []}`,
			wantErr: true,
		},
		{
			name:    "null score",
			status:  http.StatusOK,
			body:    `{"emotionPredictions": [{"emotion": {"anger": null, "disgust": 0.1, "fear": 0.1, "joy": 0.6, "sadness": 0.1}}]}`,
			wantErr: true,
		},
		{
			name:    "missing score",
			status:  http.StatusOK,
			body:    `{"emotionPredictions": [{"emotion": {"anger": 0.1, "disgust": 0.1, "fear": 0.1, "joy": 0.6}}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestWatson(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := d.Detect(context.Background(), "some text")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Detect() error = nil, result = %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if *got != *tt.want {
				t.Errorf("Detect() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestWatsonDetectTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	logger := zerolog.Nop()
	d := NewWatsonDetector(config.WatsonConfig{URL: url}, time.Second, &logger)

	if _, err := d.Detect(context.Background(), "text"); err == nil {
		t.Fatal("Detect() error = nil against a closed server")
	}
	if err := d.Ping(context.Background()); err == nil {
		t.Fatal("Ping() error = nil against a closed server")
	}
}

func TestWatsonPing(t *testing.T) {
	methods := make(chan string, 1)
	d := newTestWatson(t, func(w http.ResponseWriter, r *http.Request) {
		methods <- r.Method
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got := <-methods; got != http.MethodHead {
		t.Errorf("method = %q, want HEAD", got)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "short body", body: "bad input", want: "bad input"},
		{name: "ascii cut", body: strings.Repeat("a", 250), want: strings.Repeat("a", 200)},
		{name: "rune on the boundary", body: strings.Repeat("a", 199) + "é" + "tail", want: strings.Repeat("a", 199)},
		{name: "multi-byte body", body: strings.Repeat("日", 100), want: strings.Repeat("日", 66)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preview([]byte(tt.body))
			if got != tt.want {
				t.Errorf("preview() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("preview() = %q is not valid UTF-8", got)
			}
		})
	}
}
