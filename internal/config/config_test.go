package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ModelConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid openai config",
			config: ModelConfig{
				Provider: "openai",
				APIKey:   "sk-xxx",
				Model:    "gpt-4o",
			},
			wantErr: false,
		},
		{
			name: "valid ollama config without api key",
			config: ModelConfig{
				Provider: "ollama",
				Model:    "qwen2.5:14b",
				BaseURL:  "http://localhost:11434/v1",
			},
			wantErr: false,
		},
		{
			name: "missing provider",
			config: ModelConfig{
				APIKey: "sk-xxx",
				Model:  "gpt-4o",
			},
			wantErr: true,
			errMsg:  "provider is required",
		},
		{
			name: "invalid provider",
			config: ModelConfig{
				Provider: "invalid",
				APIKey:   "sk-xxx",
				Model:    "gpt-4o",
			},
			wantErr: true,
			errMsg:  "unsupported provider",
		},
		{
			name: "missing model",
			config: ModelConfig{
				Provider: "openai",
				APIKey:   "sk-xxx",
			},
			wantErr: true,
			errMsg:  "model is required",
		},
		{
			name: "missing api key for openai",
			config: ModelConfig{
				Provider: "openai",
				Model:    "gpt-4o",
			},
			wantErr: true,
			errMsg:  "api_key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilterConfig_Validate(t *testing.T) {
	valid := FilterConfig{ChunkSize: 1000, MaxInputTokens: 500}
	assert.NoError(t, valid.Validate())

	negChunk := FilterConfig{ChunkSize: -1}
	require.Error(t, negChunk.Validate())
	assert.Contains(t, negChunk.Validate().Error(), "chunk_size")

	negTokens := FilterConfig{MaxInputTokens: -1}
	require.Error(t, negTokens.Validate())
	assert.Contains(t, negTokens.Validate().Error(), "max_input_tokens")
}

func TestConfig_GetFilterConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	fc := cfg.GetFilterConfig()
	assert.Equal(t, 100000, fc.ChunkSize)
	assert.Equal(t, 32000, fc.MaxInputTokens)

	cfg = &Config{Filter: &FilterConfig{ChunkSize: 500, IgnorePatterns: "*.log"}}
	fc = cfg.GetFilterConfig()
	assert.Equal(t, 500, fc.ChunkSize)
	assert.Equal(t, 32000, fc.MaxInputTokens)
	assert.Equal(t, "*.log", fc.IgnorePatterns)
}

func TestConfig_GetModel(t *testing.T) {
	cfg := &Config{
		DefaultModel: "deepseek",
		Models: map[string]ModelConfig{
			"deepseek": {Provider: "deepseek", APIKey: "sk-a", Model: "deepseek-chat"},
			"local":    {Provider: "ollama", Model: "llama3.2"},
		},
	}

	m, err := cfg.GetModel("")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", m.Provider)

	m, err = cfg.GetModel("local")
	require.NoError(t, err)
	assert.Equal(t, "ollama", m.Provider)

	_, err = cfg.GetModel("missing")
	assert.Error(t, err)
}

func TestConfig_GetModel_ExpandsEnvAPIKey(t *testing.T) {
	t.Setenv("TEST_AICOMMIT_KEY", "sk-from-env")

	cfg := &Config{
		Models: map[string]ModelConfig{
			"m": {Provider: "openai", APIKey: "${TEST_AICOMMIT_KEY}", Model: "gpt-4o"},
		},
	}

	m, err := cfg.GetModel("m")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", m.APIKey)
}

func TestConfig_GetLanguage(t *testing.T) {
	cfg := &Config{Language: "ja"}

	assert.Equal(t, "zh", cfg.GetLanguage("zh"))
	assert.Equal(t, "ja", cfg.GetLanguage(""))

	t.Setenv("AICOMMIT_LANG", "ko")
	assert.Equal(t, "ko", cfg.GetLanguage(""))

	empty := &Config{}
	t.Setenv("AICOMMIT_LANG", "")
	assert.Equal(t, "en", empty.GetLanguage(""))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
default_model: deepseek
language: en
models:
  deepseek:
    provider: deepseek
    api_key: sk-test
    model: deepseek-chat
filter:
  ignore_patterns: "*.lock,vendor/*"
  include_extensions: [".go"]
  chunk_size: 2048
  max_input_tokens: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "deepseek", cfg.DefaultModel)
	require.NotNil(t, cfg.Filter)
	assert.Equal(t, "*.lock,vendor/*", cfg.Filter.IgnorePatterns)
	assert.Equal(t, []string{".go"}, cfg.Filter.IncludeExtensions)
	assert.Equal(t, 2048, cfg.Filter.ChunkSize)
	assert.Equal(t, 1000, cfg.Filter.MaxInputTokens)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		DefaultModel: "x",
		Models: map[string]ModelConfig{
			"x": {Provider: "openai", APIKey: "sk", Model: "gpt-4o"},
		},
		Filter: &FilterConfig{ChunkSize: 100},
		Retry:  &RetryConfig{MaxAttempts: 3, BackoffBase: 1, BackoffMax: 8},
	}
	assert.NoError(t, cfg.Validate())

	cfg.DefaultModel = "missing"
	assert.Error(t, cfg.Validate())

	none := &Config{}
	assert.Error(t, none.Validate())
}
