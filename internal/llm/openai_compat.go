package llm

import (
	"context"

	"github.com/aicommit/aicommit-go/internal/config"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

const (
	// DeepseekDefaultBaseURL is the default API base URL for Deepseek
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	// OllamaDefaultBaseURL is the default API base URL for Ollama
	OllamaDefaultBaseURL = "http://localhost:11434/v1"
	// GrokDefaultBaseURL is the default API base URL for Grok
	GrokDefaultBaseURL = "https://api.x.ai/v1"
)

// OpenAICompatProvider implements Provider for any backend speaking
// the OpenAI chat completion API: openai itself, deepseek, a local
// ollama, and grok.
type OpenAICompatProvider struct {
	name string
	cfg  config.ModelConfig
}

// NewOpenAIProvider creates a provider for the OpenAI API
func NewOpenAIProvider(cfg config.ModelConfig) *OpenAICompatProvider {
	return &OpenAICompatProvider{name: "openai", cfg: cfg}
}

// NewDeepseekProvider creates a provider for the Deepseek API
func NewDeepseekProvider(cfg config.ModelConfig) *OpenAICompatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepseekDefaultBaseURL
	}
	return &OpenAICompatProvider{name: "deepseek", cfg: cfg}
}

// NewOllamaProvider creates a provider for a local Ollama server.
// Ollama requires no API key, so a placeholder is set.
func NewOllamaProvider(cfg config.ModelConfig) *OpenAICompatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return &OpenAICompatProvider{name: "ollama", cfg: cfg}
}

// NewGrokProvider creates a provider for the xAI Grok API
func NewGrokProvider(cfg config.ModelConfig) *OpenAICompatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GrokDefaultBaseURL
	}
	return &OpenAICompatProvider{name: "grok", cfg: cfg}
}

// Name returns the provider name
func (p *OpenAICompatProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *OpenAICompatProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel over the OpenAI-compatible API
func (p *OpenAICompatProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}
