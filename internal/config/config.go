// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process
// environment, loads them into structured Go types, and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars over a default config (structs).
//   - Validate required values so the app fails fast on bad config.
//   - Provide sane defaults so a bare `go run` listens on localhost:5000.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: EMOTION_
	- Keys are normalized (lowercased, prefix removed)
	- A double underscore marks nesting, a single one stays part of the key
	  e.g. EMOTION_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
*/

// EnvPrefix is the prefix every environment variable of this service carries.
const EnvPrefix = "EMOTION_"

// ServiceName is stamped on every log line and on the New Relic application.
const ServiceName = "emotion-detector"

// Detector providers understood by the emotion package.
const (
	ProviderWatson = "watson"
	ProviderGemini = "gemini"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Detector      DetectorConfig       `koanf:"detector" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir holds openapi.json and the docs UI page, relative to the
	// working directory unless absolute.
	StaticDir string `koanf:"static_dir" validate:"required"`
}

// DetectorConfig selects and configures the emotion-classification collaborator.
type DetectorConfig struct {
	Provider string        `koanf:"provider" validate:"required,oneof=watson gemini"`
	Timeout  time.Duration `koanf:"timeout" validate:"min=1s"`
	Watson   WatsonConfig  `koanf:"watson"`
	Gemini   GeminiConfig  `koanf:"gemini"`
}

// WatsonConfig points at a Watson NLP EmotionPredict endpoint.
type WatsonConfig struct {
	URL     string `koanf:"url" validate:"required,url"`
	ModelID string `koanf:"model_id" validate:"required"`
}

// GeminiConfig holds the Gemini API credentials. Only checked when the
// gemini provider is selected.
type GeminiConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

// Address is the host:port the HTTP server binds to.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// DefaultConfig returns the configuration used when no env var overrides it.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Host:               "localhost",
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    30,
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          "static",
		},
		Detector: DetectorConfig{
			Provider: ProviderWatson,
			Timeout:  15 * time.Second,
			Watson: WatsonConfig{
				URL:     "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict",
				ModelID: "emotion_aggregated-workflow_lang_en_stock",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.5-flash",
			},
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey turns EMOTION_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from environment variables over the defaults,
// validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix EMOTION_
//   - Unmarshals them over DefaultConfig, so unset keys keep their default
//   - Validates struct tags, then provider specific and observability rules
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user configurable so that
	// logs and traces always group under the same labels.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs struct tag validation plus the rules tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Detector.Provider == ProviderGemini && c.Detector.Gemini.APIKey == "" {
		return fmt.Errorf("detector.gemini.api_key is required when provider is %q", ProviderGemini)
	}

	if c.Observability == nil {
		return fmt.Errorf("observability config is missing")
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
