package modelrunner

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

// LLMClient adapts DRMAPIClient to the domain.LLMClient interface.
type LLMClient struct {
	client DRMAPIClient
}

// NewLLMClientAdapter creates a new adapter
func NewLLMClientAdapter(client DRMAPIClient) LLMClient {
	return LLMClient{client: client}
}

// Chat implements domain.LLMClient.Chat
func (a LLMClient) Chat(ctx context.Context, req domain.LLMChatRequest) (domain.LLMChatResponse, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	adapterReq := ChatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]ChatMessage, len(req.Messages)),
	}

	for i, msg := range req.Messages {
		adapterReq.Messages[i] = ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := a.client.Chat(spanCtx, adapterReq)
	if err != nil {
		err = classifyProviderErr(err)
		telemetry.RecordErrorAndStatus(span, err)
		return domain.LLMChatResponse{}, err
	}

	if len(resp.Choices) == 0 {
		err := domain.NewProviderErr("no choices in response")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.LLMChatResponse{}, err
	}

	out := domain.LLMChatResponse{
		Content: resp.Choices[0].Message.Content,
	}
	if resp.Usage != nil {
		out.Usage = domain.LLMUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return out, nil
}

// Embed implements domain.LLMClient.Embed
func (a LLMClient) Embed(ctx context.Context, model, input string) (domain.EmbedResponse, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	resp, err := a.client.Embeddings(spanCtx, EmbeddingsRequest{
		Model: model,
		Input: input,
	})
	if err != nil {
		err = classifyProviderErr(err)
		telemetry.RecordErrorAndStatus(span, err)
		return domain.EmbedResponse{}, err
	}

	if len(resp.Data) == 0 {
		err := domain.NewProviderErr("no embeddings in response")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.EmbedResponse{}, err
	}

	return domain.EmbedResponse{
		Embedding:   resp.Data[0].Embedding,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// AvailableModels implements domain.LLMClient.AvailableModels
func (a LLMClient) AvailableModels(ctx context.Context) ([]domain.LLMModelInfo, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	resp, err := a.client.Models(spanCtx)
	if err != nil {
		err = classifyProviderErr(err)
		telemetry.RecordErrorAndStatus(span, err)
		return nil, err
	}

	models := make([]domain.LLMModelInfo, 0, len(resp.Data))
	for _, m := range resp.Data {
		models = append(models, domain.LLMModelInfo{
			Name: strings.TrimPrefix(m.ID, "docker.io/ai/"),
			Type: modelType(m.ID),
		})
	}
	return models, nil
}

func modelType(name string) domain.LLMModelType {
	if strings.Contains(strings.ToLower(name), "embed") {
		return domain.LLMModelType_Embedding
	}
	return domain.LLMModelType_Chat
}

// classifyProviderErr maps transport failures onto the domain error types.
// Credential rejections become *ProviderAuthErr so availability downgrades
// can distinguish them from transient failures.
func classifyProviderErr(err error) error {
	var statusErr *StatusErr
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
			return domain.NewProviderAuthErr(statusErr.Error())
		}
	}
	return domain.NewProviderErr(err.Error())
}

// InitLLMClient initializes the LLMClient dependency
type InitLLMClient struct {
	HttpClient *http.Client `resolve:""`
	LLMHost    string       `config:"LLM_MODEL_HOST"`
	APIKey     string       `config:"LLM_API_KEY" default:""`
}

// Initialize registers the LLMClient
func (i InitLLMClient) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.LLMClient](NewLLMClientAdapter(
		NewDRMAPIClient(i.LLMHost, i.APIKey, i.HttpClient),
	))
	return ctx, nil
}
