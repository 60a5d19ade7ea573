package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// Config represents the application configuration
type Config struct {
	DefaultModel string                 `yaml:"default_model" mapstructure:"default_model"`
	Models       map[string]ModelConfig `yaml:"models" mapstructure:"models"`
	Language     string                 `yaml:"language" mapstructure:"language"`
	Filter       *FilterConfig          `yaml:"filter" mapstructure:"filter"`
	Retry        *RetryConfig           `yaml:"retry" mapstructure:"retry"`
}

// FilterConfig controls diff filtering and chunking
type FilterConfig struct {
	// IgnorePatterns is a comma-separated pattern list. When non-empty
	// it overrides every other ignore-pattern source.
	IgnorePatterns string `yaml:"ignore_patterns" mapstructure:"ignore_patterns"`

	// IncludeExtensions switches the filter into include-list mode:
	// only files matching these extensions/patterns are summarized.
	IncludeExtensions []string `yaml:"include_extensions" mapstructure:"include_extensions"`

	// ChunkSize is the maximum chunk size in bytes.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// MaxInputTokens is the estimated-token budget above which the
	// filtered diff is chunked before submission.
	MaxInputTokens int `yaml:"max_input_tokens" mapstructure:"max_input_tokens"`
}

// DefaultFilterConfig returns the default filter configuration
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		ChunkSize:      100000, // 100 KB per chunk
		MaxInputTokens: 32000,
	}
}

// Validate validates the filter configuration
func (f *FilterConfig) Validate() error {
	if f.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be non-negative")
	}
	if f.MaxInputTokens < 0 {
		return fmt.Errorf("max_input_tokens must be non-negative")
	}
	return nil
}

// RetryConfig represents the retry configuration
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase float64 `yaml:"backoff_base" mapstructure:"backoff_base"` // in seconds
	BackoffMax  float64 `yaml:"backoff_max" mapstructure:"backoff_max"`   // in seconds
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// Validate validates the retry configuration
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("backoff_base must be non-negative")
	}
	if r.BackoffMax < r.BackoffBase {
		return fmt.Errorf("backoff_max must be greater than or equal to backoff_base")
	}
	return nil
}

// ModelConfig represents a single model configuration
type ModelConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s", m.Provider)
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	// API key is required for all providers except ollama
	if m.Provider != "ollama" && m.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", m.Provider)
	}
	return nil
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models configured")
	}

	if c.DefaultModel != "" {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return fmt.Errorf("default model '%s' not found in models configuration", c.DefaultModel)
		}
	}

	for name, model := range c.Models {
		if err := model.Validate(); err != nil {
			return fmt.Errorf("invalid model '%s': %w", name, err)
		}
	}

	if c.Filter != nil {
		if err := c.Filter.Validate(); err != nil {
			return fmt.Errorf("invalid filter configuration: %w", err)
		}
	}

	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
	}

	return nil
}

// GetModel returns the model configuration by name
// Priority: parameter > env variable (AICOMMIT_MODEL) > default_model
func (c *Config) GetModel(modelName string) (*ModelConfig, error) {
	if modelName == "" {
		modelName = os.Getenv("AICOMMIT_MODEL")
	}

	if modelName == "" {
		modelName = c.DefaultModel
	}

	if modelName == "" {
		return nil, fmt.Errorf("no model specified and no default model configured")
	}

	model, ok := c.Models[modelName]
	if !ok {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	// Expand environment variables in API key
	model.APIKey = expandEnv(model.APIKey)

	return &model, nil
}

// GetLanguage returns the language to use
// Priority: parameter > env variable (AICOMMIT_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}

	if envLang := os.Getenv("AICOMMIT_LANG"); envLang != "" {
		return envLang
	}

	if c.Language != "" {
		return c.Language
	}

	return "en"
}

// GetFilterConfig returns the filter configuration with defaults applied
func (c *Config) GetFilterConfig() *FilterConfig {
	if c.Filter == nil {
		return DefaultFilterConfig()
	}
	defaults := DefaultFilterConfig()
	if c.Filter.ChunkSize <= 0 {
		c.Filter.ChunkSize = defaults.ChunkSize
	}
	if c.Filter.MaxInputTokens <= 0 {
		c.Filter.MaxInputTokens = defaults.MaxInputTokens
	}
	return c.Filter
}

// GetRetryConfig returns the retry configuration with defaults applied
func (c *Config) GetRetryConfig() *RetryConfig {
	if c.Retry == nil {
		return DefaultRetryConfig()
	}
	defaults := DefaultRetryConfig()
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaults.MaxAttempts
	}
	if c.Retry.BackoffBase < 0 {
		c.Retry.BackoffBase = defaults.BackoffBase
	}
	if c.Retry.BackoffMax < 0 {
		c.Retry.BackoffMax = defaults.BackoffMax
	}
	return c.Retry
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envName := s[2 : len(s)-1]
		return os.Getenv(envName)
	}
	if strings.HasPrefix(s, "$") {
		envName := s[1:]
		return os.Getenv(envName)
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory .aicommit.yaml
// 3. Home directory ~/.aicommit.yaml
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	if cfg, err := LoadFromFile(".aicommit.yaml"); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	if cfg, err := LoadFromFile(filepath.Join(homeDir, ".aicommit.yaml")); err == nil {
		return cfg, nil
	}

	return nil, fmt.Errorf("no configuration file found. Run 'aicommit init' to create one")
}
