package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got := cfg.Server.Address(); got != "localhost:5000" {
		t.Errorf("Address() = %q, want %q", got, "localhost:5000")
	}
	if cfg.Server.StaticDir != "static" {
		t.Errorf("StaticDir = %q, want %q", cfg.Server.StaticDir, "static")
	}
	if cfg.Detector.Provider != ProviderWatson {
		t.Errorf("Provider = %q, want %q", cfg.Detector.Provider, ProviderWatson)
	}
	if cfg.Detector.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Detector.Timeout)
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Observability.Environment != cfg.Primary.Env {
		t.Errorf("Environment = %q, want %q", cfg.Observability.Environment, cfg.Primary.Env)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("EMOTION_PRIMARY__ENV", "production")
	t.Setenv("EMOTION_SERVER__HOST", "0.0.0.0")
	t.Setenv("EMOTION_SERVER__PORT", "8080")
	t.Setenv("EMOTION_SERVER__READ_TIMEOUT", "5")
	t.Setenv("EMOTION_SERVER__STATIC_DIR", "/srv/static")
	t.Setenv("EMOTION_DETECTOR__TIMEOUT", "3s")
	t.Setenv("EMOTION_DETECTOR__WATSON__MODEL_ID", "custom-model")
	t.Setenv("EMOTION_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got := cfg.Server.Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address() = %q, want %q", got, "0.0.0.0:8080")
	}
	if cfg.Server.ReadTimeout != 5 {
		t.Errorf("ReadTimeout = %d, want 5", cfg.Server.ReadTimeout)
	}
	if cfg.Server.StaticDir != "/srv/static" {
		t.Errorf("StaticDir = %q, want %q", cfg.Server.StaticDir, "/srv/static")
	}
	if cfg.Server.WriteTimeout != 30 {
		t.Errorf("WriteTimeout = %d, want default 30", cfg.Server.WriteTimeout)
	}
	if cfg.Detector.Timeout != 3*time.Second {
		t.Errorf("Detector.Timeout = %v, want 3s", cfg.Detector.Timeout)
	}
	if cfg.Detector.Watson.ModelID != "custom-model" {
		t.Errorf("Watson.ModelID = %q, want %q", cfg.Detector.Watson.ModelID, "custom-model")
	}
	if cfg.Detector.Watson.URL == "" {
		t.Error("Watson.URL lost its default")
	}
	if got := cfg.Observability.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel() = %q, want %q", got, "warn")
	}
	if !cfg.Observability.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.Observability.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want default json", cfg.Observability.Logging.Format)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown provider",
			env:  map[string]string{"EMOTION_DETECTOR__PROVIDER": "openai"},
		},
		{
			name: "gemini without api key",
			env:  map[string]string{"EMOTION_DETECTOR__PROVIDER": "gemini"},
		},
		{
			name: "invalid log level",
			env:  map[string]string{"EMOTION_OBSERVABILITY__LOGGING__LEVEL": "verbose"},
		},
		{
			name: "invalid log format",
			env:  map[string]string{"EMOTION_OBSERVABILITY__LOGGING__FORMAT": "xml"},
		},
		{
			name: "invalid watson url",
			env:  map[string]string{"EMOTION_DETECTOR__WATSON__URL": "not a url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := LoadConfig(); err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"EMOTION_SERVER__READ_TIMEOUT":                  "server.read_timeout",
		"EMOTION_DETECTOR__WATSON__MODEL_ID":            "detector.watson.model_id",
		"EMOTION_OBSERVABILITY__NEW_RELIC__LICENSE_KEY": "observability.new_relic.license_key",
	}

	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	if !cfg.HealthCheckEnabled("detector") {
		t.Error("HealthCheckEnabled(detector) = false, want true")
	}
	if cfg.HealthCheckEnabled("database") {
		t.Error("HealthCheckEnabled(database) = true, want false")
	}

	cfg.HealthChecks.Enabled = false
	if cfg.HealthCheckEnabled("detector") {
		t.Error("HealthCheckEnabled(detector) = true with checks disabled")
	}
}
