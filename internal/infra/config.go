package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderOpenAI    = "openai"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Model    ModelConfig    `toml:"model"`
	Geocoder GeocoderConfig `toml:"geocoder"`
	Auth     AuthConfig     `toml:"auth"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type ModelConfig struct {
	Provider       string `toml:"provider"` // "gemini", "gemini-sdk" or "openai"
	GeminiAPIKey   string `toml:"gemini_api_key"`
	GeminiModel    string `toml:"gemini_model"`
	GeminiBaseURL  string `toml:"gemini_base_url"`
	OpenAIAPIKey   string `toml:"openai_api_key"`
	OpenAIModel    string `toml:"openai_model"`
	OpenAIBaseURL  string `toml:"openai_base_url"`
	MaxRetries     int    `toml:"max_retries"`
	BackoffBase    string `toml:"backoff_base"`    // e.g. "500ms", multiplied by the attempt number
	AttemptTimeout string `toml:"attempt_timeout"` // e.g. "15s"
}

type GeocoderConfig struct {
	BaseURL           string  `toml:"base_url"`
	UserAgent         string  `toml:"user_agent"`
	Timeout           string  `toml:"timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables pacing
	SuggestionLimit   int     `toml:"suggestion_limit"`
	CacheCapacity     int     `toml:"cache_capacity"`
	CacheTTL          string  `toml:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	TokenTTL  string `toml:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "json" or "console"
}

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "dev_secret_change_me"

func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5050",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Model: ModelConfig{
			Provider:       ProviderGemini,
			GeminiModel:    "gemini-1.5-pro",
			GeminiBaseURL:  "https://generativelanguage.googleapis.com",
			OpenAIModel:    "gpt-4o-mini",
			MaxRetries:     2,
			BackoffBase:    "500ms",
			AttemptTimeout: "15s",
		},
		Geocoder: GeocoderConfig{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "ai-trip-planner/1.0",
			Timeout:           "10s",
			RequestsPerSecond: 1,
			SuggestionLimit:   5,
			CacheCapacity:     256,
			CacheTTL:          "30m",
		},
		Auth: AuthConfig{
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  "1h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional .env file,
// an optional TOML file and finally environment variables (highest priority).
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	config := NewDefaultConfig()

	if path == "" {
		path = os.Getenv("TRIP_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	if provider := os.Getenv("MODEL_PROVIDER"); provider != "" {
		config.Model.Provider = strings.ToLower(provider)
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Model.GeminiAPIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Model.GeminiModel = model
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		config.Model.GeminiBaseURL = baseURL
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.Model.OpenAIAPIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.Model.OpenAIModel = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.Model.OpenAIBaseURL = baseURL
	}
	if retries := os.Getenv("MODEL_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			config.Model.MaxRetries = n
		}
	}
	if timeout := os.Getenv("MODEL_ATTEMPT_TIMEOUT"); timeout != "" {
		config.Model.AttemptTimeout = timeout
	}

	if baseURL := os.Getenv("NOMINATIM_URL"); baseURL != "" {
		config.Geocoder.BaseURL = baseURL
	}
	if userAgent := os.Getenv("NOMINATIM_USER_AGENT"); userAgent != "" {
		config.Geocoder.UserAgent = userAgent
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if ttl := os.Getenv("JWT_EXPIRES_IN"); ttl != "" {
		config.Auth.TokenTTL = ttl
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// Validate checks values that would otherwise only fail at first use.
// Missing model credentials are not an error here: the trip endpoint
// reports them per request.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderGemini, ProviderGeminiSDK, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported model provider %q: use %q, %q or %q",
			c.Model.Provider, ProviderGemini, ProviderGeminiSDK, ProviderOpenAI)
	}
	if c.Model.MaxRetries < 0 {
		return fmt.Errorf("model.max_retries must not be negative")
	}

	durations := map[string]string{
		"model.backoff_base":    c.Model.BackoffBase,
		"model.attempt_timeout": c.Model.AttemptTimeout,
		"geocoder.timeout":      c.Geocoder.Timeout,
		"geocoder.cache_ttl":    c.Geocoder.CacheTTL,
		"auth.token_ttl":        c.Auth.TokenTTL,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s %q: %w", name, value, err)
		}
	}
	return nil
}

// HasModelCredentials reports whether the selected provider has an API key.
func (m ModelConfig) HasModelCredentials() bool {
	switch m.Provider {
	case ProviderOpenAI:
		return m.OpenAIAPIKey != ""
	default:
		return m.GeminiAPIKey != ""
	}
}

func (m ModelConfig) BackoffBaseDuration() time.Duration {
	return mustDuration(m.BackoffBase, 500*time.Millisecond)
}

func (m ModelConfig) AttemptTimeoutDuration() time.Duration {
	return mustDuration(m.AttemptTimeout, 15*time.Second)
}

func (g GeocoderConfig) TimeoutDuration() time.Duration {
	return mustDuration(g.Timeout, 10*time.Second)
}

func (g GeocoderConfig) CacheTTLDuration() time.Duration {
	return mustDuration(g.CacheTTL, 30*time.Minute)
}

func (a AuthConfig) TokenTTLDuration() time.Duration {
	return mustDuration(a.TokenTTL, time.Hour)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
