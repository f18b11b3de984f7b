package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	Generation GenerationConfig
	Session    SessionConfig
	RateLimit  RateLimitConfig

	CORSAllowedOrigins []string
}

type GenerationConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
}

type SessionConfig struct {
	TTL              time.Duration
	Capacity         int
	ShuffleQuestions bool
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GENERATION_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GENERATION_TIMEOUT", "60s")
	v.SetDefault("GENERATION_TEMPERATURE", 0.7)
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_CAPACITY", 10000)
	v.SetDefault("SHUFFLE_QUESTIONS", true)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates the configuration from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:     v.GetString("PORT"),
		GinMode:  v.GetString("GIN_MODE"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Generation: GenerationConfig{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString("GENERATION_PROVIDER"))),
			BaseURL:     v.GetString("OPENAI_BASE_URL"),
			Timeout:     v.GetDuration("GENERATION_TIMEOUT"),
			Temperature: float32(v.GetFloat64("GENERATION_TEMPERATURE")),
		},
		Session: SessionConfig{
			TTL:              v.GetDuration("SESSION_TTL"),
			Capacity:         v.GetInt("SESSION_CAPACITY"),
			ShuffleQuestions: v.GetBool("SHUFFLE_QUESTIONS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	switch cfg.Generation.Provider {
	case "gemini":
		cfg.Generation.APIKey = v.GetString("GEMINI_API_KEY")
		cfg.Generation.Model = v.GetString("GEMINI_MODEL")
	case "openai":
		cfg.Generation.APIKey = v.GetString("OPENAI_API_KEY")
		cfg.Generation.Model = v.GetString("OPENAI_MODEL")
	default:
		return nil, fmt.Errorf("unsupported GENERATION_PROVIDER %q, use 'openai' or 'gemini'", cfg.Generation.Provider)
	}

	if strings.TrimSpace(cfg.Generation.APIKey) == "" {
		return nil, fmt.Errorf("%s_API_KEY is required when using the %s provider",
			strings.ToUpper(cfg.Generation.Provider), cfg.Generation.Provider)
	}
	if cfg.Session.Capacity <= 0 {
		return nil, fmt.Errorf("SESSION_CAPACITY must be positive, got %d", cfg.Session.Capacity)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
