package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{"GEMINI_API_KEY": "key"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, "key", cfg.Generation.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Generation.Model)
	assert.Equal(t, 60*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10000, cfg.Session.Capacity)
	assert.True(t, cfg.Session.ShuffleQuestions)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestFromViperOpenAI(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{
		"GENERATION_PROVIDER":  " OpenAI ",
		"OPENAI_API_KEY":       "sk-test",
		"OPENAI_BASE_URL":      "http://localhost:9999/v1",
		"GENERATION_TIMEOUT":   "15s",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Generation.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Generation.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViperRejects(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{"missing gemini key", map[string]any{}, "GEMINI_API_KEY is required"},
		{"missing openai key", map[string]any{"GENERATION_PROVIDER": "openai", "GEMINI_API_KEY": "x"}, "OPENAI_API_KEY is required"},
		{"unknown provider", map[string]any{"GENERATION_PROVIDER": "llama"}, `unsupported GENERATION_PROVIDER "llama"`},
		{"zero capacity", map[string]any{"GEMINI_API_KEY": "x", "SESSION_CAPACITY": 0}, "SESSION_CAPACITY must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
