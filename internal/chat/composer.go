package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
)

const (
	contextSeparator     = "\n---\n"
	noContextPlaceholder = "No product context is available."

	// refusalAnswer is the fixed catalog-only refusal sentence used for
	// out-of-scope questions and guard-rail violations.
	refusalAnswer = "I can only answer questions about our product catalog. Please ask about products, prices, availability, or features."

	msgChatNeverAvailable = "AI not available (invalid or missing key)."
	msgChatAuthFailure    = "AI not available (invalid key)."
	msgChatGenericFailure = "AI not available (error calling model)."

	degradedRetrievalNote = "\n\nNote: semantic retrieval was reduced because the embedding service is unavailable."

	systemPromptBase = "You are a product catalog assistant. Answer only from the product context supplied with each question. " +
		"Do not invent products, prices, or availability. " +
		"If the question cannot be answered from the context, reply exactly: " + refusalAnswer

	lowestPriceInstruction = "If the user asks for the lowest priced product, answer with only that single product's name, identifier, and price."

	bestSellingInstruction = "If the user asks for the best selling products, list the matched products with name, identifier, and price, " +
		"and mention whether the ranking is based on sales data or customer ratings."

	closingInstruction = "Stick to the facts in the context above and cite product identifiers in your answer."
)

// forbiddenTopics are the keywords that force the refusal answer when they
// appear in the question or the generated answer.
var forbiddenTopics = []string{"politics", "weather", "news", "sports"}

// ComposeInput carries everything the composer needs for one answer.
type ComposeInput struct {
	Question    string
	Intents     IntentSet
	Candidates  *CandidateSet
	LowestPrice *domain.Product
	BestSelling *BestSellingResult
}

// Composer builds the grounded prompt, calls the chat provider, and applies
// the guard rails and intent-specific answer guarantees.
type Composer struct {
	index     *EmbeddingIndex
	llm       domain.LLMClient
	products  domain.ProductRepository
	chatModel string
	logger    *log.Logger
}

// NewComposer creates a Composer bound to the shared index.
func NewComposer(index *EmbeddingIndex, llm domain.LLMClient, products domain.ProductRepository, chatModel string, logger *log.Logger) Composer {
	return Composer{
		index:     index,
		llm:       llm,
		products:  products,
		chatModel: chatModel,
		logger:    logger,
	}
}

// Compose produces the final answer for one question. Provider failures never
// escape: they downgrade chat availability and yield the fixed degraded
// messages instead.
func (c Composer) Compose(ctx context.Context, in ComposeInput) domain.ChatAnswer {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if !c.index.ChatAvailable() {
		return domain.ChatAnswer{Answer: msgChatNeverAvailable, Sources: []domain.Product{}}
	}

	systemPrompt := c.buildSystemPrompt(in.Intents)
	fullPrompt := c.buildFullPrompt(systemPrompt, in)

	resp, err := c.llm.Chat(spanCtx, domain.LLMChatRequest{
		Model: c.chatModel,
		Messages: []domain.LLMChatMessage{
			{Role: domain.ChatRole_System, Content: systemPrompt + "\n\nContext will follow."},
			{Role: domain.ChatRole_User, Content: fullPrompt},
		},
	})
	if err != nil {
		c.index.MarkChatUnavailable()

		var authErr *domain.ProviderAuthErr
		if errors.As(err, &authErr) {
			c.logger.Printf("Composer: chat credentials rejected, disabling chat: %v", err)
			return domain.ChatAnswer{Answer: msgChatAuthFailure, Sources: in.Candidates.Items()}
		}
		c.logger.Printf("Composer: chat provider failed, disabling chat: %v", err)
		return domain.ChatAnswer{Answer: msgChatGenericFailure, Sources: in.Candidates.Items()}
	}

	RecordChatTokens(spanCtx, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	answer := c.postProcess(spanCtx, strings.TrimSpace(resp.Content), in)
	return domain.ChatAnswer{Answer: answer, Sources: in.Candidates.Items()}
}

// buildSystemPrompt assembles the guarded instruction string plus any
// intent-specific addenda.
func (c Composer) buildSystemPrompt(intents IntentSet) string {
	parts := []string{systemPromptBase}
	if intents.Has(Intent_LowestPrice) {
		parts = append(parts, lowestPriceInstruction)
	}
	if intents.Has(Intent_BestSelling) {
		parts = append(parts, bestSellingInstruction)
	}
	return strings.Join(parts, " ")
}

// buildFullPrompt lays out the four labeled prompt sections in fixed order.
func (c Composer) buildFullPrompt(systemPrompt string, in ComposeInput) string {
	var b strings.Builder
	b.WriteString("SYSTEM:\n")
	b.WriteString(systemPrompt)
	b.WriteString("\n\nCONTEXT:\n")
	b.WriteString(c.buildContextBlock(in.Candidates.Items()))
	b.WriteString("\n\nUSER QUESTION:\n")
	b.WriteString(in.Question)
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString(closingInstruction)
	return b.String()
}

// buildContextBlock joins each candidate's descriptive text with a separator
// line, or yields the fixed placeholder when no candidates exist.
func (c Composer) buildContextBlock(candidates []domain.Product) string {
	if len(candidates) == 0 {
		return noContextPlaceholder
	}

	blocks := make([]string, len(candidates))
	for i, p := range candidates {
		blocks[i] = p.DescriptiveText()
	}
	return strings.Join(blocks, contextSeparator)
}

// postProcess applies the guard rails and the intent-specific answer
// guarantees, in fixed order. The lowest-price overwrite runs before the
// best-selling overwrite, so best-selling wins when both intents fire.
func (c Composer) postProcess(ctx context.Context, answer string, in ComposeInput) string {
	if in.Candidates.Len() == 0 || strings.Contains(strings.ToLower(answer), "i don't know") {
		answer = refusalAnswer
	}

	if containsForbiddenTopic(in.Question) || containsForbiddenTopic(answer) {
		answer = refusalAnswer
	}

	if !c.index.EmbeddingAvailable() {
		answer += degradedRetrievalNote
	}

	if in.Intents.Has(Intent_ListAll) {
		answer += c.listAllNote(ctx, in.Candidates.Len())
	}

	if in.Intents.Has(Intent_LowestPrice) && in.LowestPrice != nil {
		if !in.LowestPrice.MentionedIn(answer) {
			answer = fmt.Sprintf("Lowest priced product: %s (Id %d) at price %s.",
				in.LowestPrice.Name, in.LowestPrice.ID, in.LowestPrice.FormatPrice())
		}
	}

	if in.Intents.Has(Intent_BestSelling) && in.BestSelling != nil && len(in.BestSelling.Products) > 0 {
		if !anyNameMentioned(answer, in.BestSelling.Products) {
			answer = bestSellingListing(*in.BestSelling)
		}
	}

	return answer
}

// listAllNote reports how many of the catalog's products are shown when the
// candidate set cannot cover the whole catalog. A failing count query skips
// the note.
func (c Composer) listAllNote(ctx context.Context, shown int) string {
	total, err := c.products.CountProducts(ctx)
	if err != nil {
		c.logger.Printf("Composer: product count failed: %v", err)
		return ""
	}
	if shown >= total {
		return ""
	}
	return fmt.Sprintf("\n\nShowing %d of %d products. Ask about a specific product or category to narrow it down.", shown, total)
}

// bestSellingListing renders the deterministic best-seller fallback listing
// of up to three products.
func bestSellingListing(result BestSellingResult) string {
	basis := "sales data"
	if result.RatingBased {
		basis = "customer ratings"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Our best selling products (based on %s):", basis)

	shown := min(len(result.Products), 3)
	for _, p := range result.Products[:shown] {
		fmt.Fprintf(&b, "\n- %s (Id %d, price %s)", p.Name, p.ID, p.FormatPrice())
	}
	if remaining := len(result.Products) - shown; remaining > 0 {
		fmt.Fprintf(&b, "\n...and %d more.", remaining)
	}
	return b.String()
}

func containsForbiddenTopic(text string) bool {
	lowered := strings.ToLower(text)
	for _, topic := range forbiddenTopics {
		if strings.Contains(lowered, topic) {
			return true
		}
	}
	return false
}

func anyNameMentioned(answer string, products []domain.Product) bool {
	lowered := strings.ToLower(answer)
	for _, p := range products {
		if p.Name != "" && strings.Contains(lowered, strings.ToLower(p.Name)) {
			return true
		}
	}
	return false
}
