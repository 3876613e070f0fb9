package chat

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

// ProductChat answers catalog questions. Ask never fails: provider and
// catalog errors degrade the answer instead of propagating.
type ProductChat interface {
	Ask(ctx context.Context, question string) domain.ChatAnswer
}

// Service wires the embedding index, intent detection, retrieval, the
// special-case resolvers, and the composer into one Ask pipeline.
type Service struct {
	index     *EmbeddingIndex
	retriever Retriever
	resolvers Resolvers
	composer  Composer
	topK      int
	logger    *log.Logger
}

// NewService creates the product chat pipeline.
func NewService(
	index *EmbeddingIndex,
	retriever Retriever,
	resolvers Resolvers,
	composer Composer,
	topK int,
	logger *log.Logger,
) Service {
	return Service{
		index:     index,
		retriever: retriever,
		resolvers: resolvers,
		composer:  composer,
		topK:      topK,
		logger:    logger,
	}
}

// Ask answers one question about the catalog. The first call builds the
// embedding index; later calls reuse it.
func (s Service) Ask(ctx context.Context, question string) domain.ChatAnswer {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	s.index.EnsureInitialized(spanCtx)

	intents := DetectIntents(question)
	candidates := NewCandidateSet()

	retrieved, err := s.retriever.TopK(spanCtx, question, s.topK)
	if err != nil {
		s.logger.Printf("ProductChat: retrieval failed, answering without semantic context: %v", err)
	}
	candidates.Add(retrieved...)

	input := ComposeInput{
		Question:   question,
		Intents:    intents,
		Candidates: candidates,
	}

	if intents.Has(Intent_LowestPrice) {
		if lowest, ok := s.resolvers.LowestPrice(spanCtx); ok {
			candidates.Add(lowest)
			input.LowestPrice = &lowest
		}
	}

	if intents.Has(Intent_BestSelling) {
		if best, ok := s.resolvers.BestSelling(spanCtx); ok {
			candidates.Add(best.Products...)
			input.BestSelling = &best
		}
	}

	return s.composer.Compose(spanCtx, input)
}

// InitProductChat initializes the shared embedding index and the ProductChat
// pipeline.
type InitProductChat struct {
	Products       domain.ProductRepository `resolve:""`
	Orders         domain.OrderRepository   `resolve:""`
	Reviews        domain.ReviewRepository  `resolve:""`
	LLMClient      domain.LLMClient         `resolve:""`
	Logger         *log.Logger              `resolve:""`
	ChatModel      string                   `config:"LLM_CHAT_MODEL"`
	EmbeddingModel string                   `config:"LLM_EMBEDDING_MODEL"`
	TopK           int                      `config:"CHAT_TOP_K" default:"5"`
}

// Initialize registers the ProductChat implementation.
func (ipc InitProductChat) Initialize(ctx context.Context) (context.Context, error) {
	index := NewEmbeddingIndex(ipc.Products, ipc.LLMClient, ipc.EmbeddingModel, ipc.Logger)
	retriever := NewRetriever(index, ipc.Products, ipc.LLMClient, ipc.EmbeddingModel, ipc.Logger)
	resolvers := NewResolvers(ipc.Products, ipc.Orders, ipc.Reviews, ipc.Logger)
	composer := NewComposer(index, ipc.LLMClient, ipc.Products, ipc.ChatModel, ipc.Logger)

	depend.Register[*EmbeddingIndex](index)
	depend.Register[ProductChat](NewService(index, retriever, resolvers, composer, ipc.TopK, ipc.Logger))
	return ctx, nil
}
