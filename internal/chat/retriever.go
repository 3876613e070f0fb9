package chat

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/common"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
)

// defaultTopK is the number of similarity matches grounding one answer.
const defaultTopK = 5

// Retriever ranks cached catalog items against a question embedding and
// resolves the best matches back to full products.
type Retriever struct {
	index          *EmbeddingIndex
	products       domain.ProductRepository
	llm            domain.LLMClient
	embeddingModel string
	logger         *log.Logger
}

// NewRetriever creates a Retriever over the given index.
func NewRetriever(index *EmbeddingIndex, products domain.ProductRepository, llm domain.LLMClient, embeddingModel string, logger *log.Logger) Retriever {
	return Retriever{
		index:          index,
		products:       products,
		llm:            llm,
		embeddingModel: embeddingModel,
		logger:         logger,
	}
}

// TopK returns the k most similar catalog items for the question. When the
// embedding provider is unavailable, or fails on this question, the
// deterministic hash embedding takes over; a provider failure downgrades
// embedding availability for the rest of the process.
func (r Retriever) TopK(ctx context.Context, question string, k int) ([]domain.Product, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if k <= 0 {
		k = defaultTopK
	}
	if r.index.Len() == 0 {
		return nil, nil
	}

	questionVector := r.questionVector(spanCtx, question)

	type scoredItem struct {
		id    int64
		score float64
	}

	scored := make([]scoredItem, 0, r.index.Len())
	for id, vector := range r.index.Vectors() {
		scored = append(scored, scoredItem{
			id:    id,
			score: common.CosineSimilarity(questionVector, vector),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score == scored[j].score {
			return scored[i].id < scored[j].id
		}
		return scored[i].score > scored[j].score
	})

	limit := min(len(scored), k)
	ids := make([]int64, 0, limit)
	for i := range limit {
		ids = append(ids, scored[i].id)
	}

	products, err := r.products.GetProductsByIDs(spanCtx, ids)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return products, nil
}

// questionVector embeds the question with the live provider when possible and
// falls back to the hash embedding otherwise. If the cache was built from
// provider vectors the hash vector is dimensionally different; similarity then
// degrades to the overlapping-prefix comparison, which is an accepted
// approximation.
func (r Retriever) questionVector(ctx context.Context, question string) []float64 {
	if !r.index.EmbeddingAvailable() {
		return common.HashEmbedding(question, common.HashEmbeddingDim)
	}

	resp, err := r.llm.Embed(ctx, r.embeddingModel, question)
	if err != nil {
		var authErr *domain.ProviderAuthErr
		if errors.As(err, &authErr) {
			r.logger.Printf("Retriever: embedding credentials rejected, disabling embeddings: %v", err)
		} else {
			r.logger.Printf("Retriever: embedding provider failed, disabling embeddings: %v", err)
		}
		r.index.MarkEmbeddingUnavailable()
		return common.HashEmbedding(question, common.HashEmbeddingDim)
	}

	RecordEmbeddingTokens(ctx, resp.TotalTokens)
	return resp.Embedding
}
