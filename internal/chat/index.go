package chat

import (
	"context"
	"log"
	"sync"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
)

// EmbeddingIndex is the process-lifetime cache of catalog item embeddings plus
// the two one-way availability flags. The index is populated at most once;
// once a flag drops it never recovers for the remainder of the process.
type EmbeddingIndex struct {
	mu                 sync.Mutex
	vectors            map[int64][]float64
	initialized        bool
	embeddingAvailable bool
	chatAvailable      bool

	products       domain.ProductRepository
	llm            domain.LLMClient
	embeddingModel string
	logger         *log.Logger
}

// NewEmbeddingIndex creates an empty index with both providers assumed available.
func NewEmbeddingIndex(products domain.ProductRepository, llm domain.LLMClient, embeddingModel string, logger *log.Logger) *EmbeddingIndex {
	return &EmbeddingIndex{
		vectors:            make(map[int64][]float64),
		embeddingAvailable: true,
		chatAvailable:      true,
		products:           products,
		llm:                llm,
		embeddingModel:     embeddingModel,
		logger:             logger,
	}
}

// EnsureInitialized populates the index on first call. Concurrent callers
// block on the same mutex, so the expensive pass runs at most once per
// process. Provider or catalog failures downgrade embedding availability
// without surfacing an error; the partially populated index is retained.
// A cancelled caller aborts without marking the index initialized, so a later
// caller can finish the job.
func (x *EmbeddingIndex) EnsureInitialized(ctx context.Context) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.initialized {
		return
	}

	products, err := x.products.ListAllProducts(spanCtx)
	if err != nil {
		if spanCtx.Err() != nil {
			x.logger.Printf("EmbeddingIndex: initialization cancelled: %v", err)
			return
		}
		x.logger.Printf("EmbeddingIndex: catalog load failed, disabling embeddings: %v", err)
		x.embeddingAvailable = false
		x.initialized = true
		return
	}

	for _, product := range products {
		resp, err := x.llm.Embed(spanCtx, x.embeddingModel, product.DescriptiveText())
		if err != nil {
			if spanCtx.Err() != nil {
				x.logger.Printf("EmbeddingIndex: initialization cancelled after %d items: %v", len(x.vectors), err)
				return
			}
			x.logger.Printf("EmbeddingIndex: embedding provider failed after %d items, disabling embeddings: %v", len(x.vectors), err)
			x.embeddingAvailable = false
			break
		}
		x.vectors[product.ID] = resp.Embedding
		RecordEmbeddingTokens(spanCtx, resp.TotalTokens)
	}

	x.initialized = true
}

// Vectors returns a snapshot of the cached item vectors. The copy is taken
// under the lock because a cancelled initialization leaves the index
// unfinished and a later caller may still be writing the map while an earlier
// caller iterates its result. The vector slices are never mutated after being
// stored, so sharing their backing arrays is safe.
func (x *EmbeddingIndex) Vectors() map[int64][]float64 {
	x.mu.Lock()
	defer x.mu.Unlock()

	snapshot := make(map[int64][]float64, len(x.vectors))
	for id, vector := range x.vectors {
		snapshot[id] = vector
	}
	return snapshot
}

// Len returns the number of cached item vectors.
func (x *EmbeddingIndex) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.vectors)
}

// EmbeddingAvailable reports whether the embedding provider is still usable.
func (x *EmbeddingIndex) EmbeddingAvailable() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.embeddingAvailable
}

// ChatAvailable reports whether the chat provider is still usable.
func (x *EmbeddingIndex) ChatAvailable() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.chatAvailable
}

// MarkEmbeddingUnavailable permanently disables the embedding provider.
func (x *EmbeddingIndex) MarkEmbeddingUnavailable() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.embeddingAvailable = false
}

// MarkChatUnavailable permanently disables the chat provider.
func (x *EmbeddingIndex) MarkChatUnavailable() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.chatAvailable = false
}
