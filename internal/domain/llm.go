package domain

import "context"

// LLMChatMessage represents a message in a chat request to the LLM API.
type LLMChatMessage struct {
	Role    ChatRole `yaml:"role"`
	Content string   `yaml:"content"`
}

// LLMChatRequest represents a request to the LLM API.
type LLMChatRequest struct {
	Model    string
	Messages []LLMChatMessage
	// Optional parameters
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// LLMChatResponse represents the response from a chat request to the LLM API.
type LLMChatResponse struct {
	Content string
	Usage   LLMUsage
}

// LLMUsage contains token usage information.
type LLMUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// EmbedResponse represents the response from an embedding request to the LLM API.
type EmbedResponse struct {
	Embedding   []float64
	TotalTokens int
}

type LLMModelType string

const (
	LLMModelType_Chat      LLMModelType = "chat"
	LLMModelType_Embedding LLMModelType = "embedding"
)

// LLMModelInfo represents information about an available LLM model.
type LLMModelInfo struct {
	Name string
	Type LLMModelType
}

// LLMClient defines the interface for interacting with an LLM API.
// Implementations report credential rejections as *ProviderAuthErr and any
// other provider failure as *ProviderErr.
type LLMClient interface {
	// Chat sends a chat request to the LLM and returns the full assistant response.
	Chat(ctx context.Context, req LLMChatRequest) (LLMChatResponse, error)

	// Embed generates an embedding vector for the given input text.
	Embed(ctx context.Context, model, input string) (EmbedResponse, error)

	// AvailableModels retrieves the list of available models.
	AvailableModels(ctx context.Context) ([]LLMModelInfo, error)
}
