package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/deppfellow/emotion-detector/internal/errs"
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func newTestGlobal() *GlobalMiddlewares {
	logger := zerolog.Nop()
	return NewGlobalMiddlewares(&server.Server{
		Config: config.DefaultConfig(),
		Logger: &logger,
	})
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		method string
		err    error
		status int
		body   string
	}{
		{
			name:   "http error",
			method: http.MethodGet,
			err:    errs.NewBadRequestError("Invalid text! Please try again!", true, nil),
			status: http.StatusBadRequest,
			body:   `{"error":"Invalid text! Please try again!"}`,
		},
		{
			name:   "wrapped http error",
			method: http.MethodGet,
			err:    errors.Wrap(errs.NewInternalServerError("Could not process the text"), "detect"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Could not process the text"}`,
		},
		{
			name:   "5xx message hidden without override",
			method: http.MethodGet,
			err:    &errs.HTTPError{Message: "db password wrong", Status: http.StatusBadGateway},
			status: http.StatusBadGateway,
			body:   `{"error":"Bad Gateway"}`,
		},
		{
			name:   "echo not found",
			method: http.MethodGet,
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   `{"error":"Route not found"}`,
		},
		{
			name:   "echo error keeps its message",
			method: http.MethodGet,
			err:    echo.NewHTTPError(http.StatusUnauthorized, "nope"),
			status: http.StatusUnauthorized,
			body:   `{"error":"nope"}`,
		},
		{
			name:   "plain error",
			method: http.MethodGet,
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Internal Server Error"}`,
		},
		{
			name:   "head request has no body",
			method: http.MethodHead,
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   "",
		},
	}

	global := newTestGlobal()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			global.GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
				t.Errorf("body = %s, want %s", got, tt.body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	rec := httptest.NewRecorder()
	if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatal(err)
	}
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id = %q, header = %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if seen != "given" {
		t.Errorf("request id = %q, want %q", seen, "given")
	}
}

func TestLoggerFromContext(t *testing.T) {
	fallback := zerolog.Nop()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LoggerFromContext(req.Context(), &fallback); got != &fallback {
		t.Error("LoggerFromContext() should return the fallback when no logger is stored")
	}
	if got := LoggerFromContext(req.Context(), nil); got == nil {
		t.Error("LoggerFromContext() returned nil without a fallback")
	}
}
