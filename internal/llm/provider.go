package llm

import (
	"context"

	"github.com/aicommit/aicommit-go/internal/config"
	"github.com/cloudwego/eino/components/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetConfig returns the model configuration
	GetConfig() config.ModelConfig

	// CreateChatModel creates an Eino ChatModel instance
	CreateChatModel(ctx context.Context) (model.ChatModel, error)
}
