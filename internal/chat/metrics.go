package chat

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter         = otel.Meter("chat")
	llmTokensUsed metric.Int64Counter
)

func init() {
	var err error
	// Tokens consumed by the chat subsystem (prompt + completion + embedding)
	llmTokensUsed, err = meter.Int64Counter(
		"llm_tokens_used_total",
		metric.WithDescription("Total LLM tokens consumed by the product chat"),
	)
	if err != nil {
		panic(err)
	}
}

// RecordChatTokens records the tokens used by one chat completion.
func RecordChatTokens(ctx context.Context, promptTokens, completionTokens int) {
	llmTokensUsed.Add(ctx, int64(promptTokens), metric.WithAttributes(
		attribute.String("token_type", "prompt"),
	))
	llmTokensUsed.Add(ctx, int64(completionTokens), metric.WithAttributes(
		attribute.String("token_type", "completion"),
	))
}

// RecordEmbeddingTokens records the tokens used by one embedding request.
func RecordEmbeddingTokens(ctx context.Context, totalTokens int) {
	llmTokensUsed.Add(ctx, int64(totalTokens), metric.WithAttributes(
		attribute.String("token_type", "embedding"),
	))
}
