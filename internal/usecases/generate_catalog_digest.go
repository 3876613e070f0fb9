package usecases

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/common"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/google/uuid"
	"github.com/toon-format/toon-go"
	"go.yaml.in/yaml/v3"
)

// CompletedDigestChannel is a channel type for sending processed
// domain.CatalogDigest items. It is used in integration tests to verify
// digest generation.
type CompletedDigestChannel chan domain.CatalogDigest

// GenerateCatalogDigest is the use case interface for generating the
// storefront catalog digest.
type GenerateCatalogDigest interface {
	Execute(ctx context.Context) error
}

// GenerateCatalogDigestImpl is the implementation of the GenerateCatalogDigest use case.
type GenerateCatalogDigestImpl struct {
	repo              domain.CatalogDigestRepository
	timeProvider      domain.CurrentTimeProvider
	llmClient         domain.LLMClient
	model             string
	completedDigestCh CompletedDigestChannel
}

// NewGenerateCatalogDigestImpl creates a new instance of GenerateCatalogDigestImpl.
func NewGenerateCatalogDigestImpl(
	cdr domain.CatalogDigestRepository,
	tp domain.CurrentTimeProvider,
	c domain.LLMClient,
	m string,
	q CompletedDigestChannel,
) GenerateCatalogDigestImpl {
	return GenerateCatalogDigestImpl{
		repo:              cdr,
		timeProvider:      tp,
		llmClient:         c,
		model:             m,
		completedDigestCh: q,
	}
}

// Execute runs the use case to generate the catalog digest.
func (gd GenerateCatalogDigestImpl) Execute(ctx context.Context) error {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	digest, hasChanges, err := gd.generateDigest(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return err
	}

	if !hasChanges {
		return nil
	}

	err = gd.repo.StoreDigest(spanCtx, digest)
	if telemetry.RecordErrorAndStatus(span, err) {
		return err
	}

	if gd.completedDigestCh != nil {
		gd.completedDigestCh <- digest
	}

	return nil
}

// generateDigest calculates the new catalog facts, compares them with the
// previous digest, and generates a new digest text when the facts changed.
func (gd GenerateCatalogDigestImpl) generateDigest(ctx context.Context) (domain.CatalogDigest, bool, error) {

	new, err := gd.repo.CalculateDigestContent(ctx)
	if err != nil {
		return domain.CatalogDigest{}, false, fmt.Errorf("failed to calculate digest content: %w", err)
	}

	previous, found, err := gd.repo.GetLatestDigest(ctx)
	if err != nil {
		return domain.CatalogDigest{}, false, fmt.Errorf("failed to get latest digest: %w", err)
	}
	if !found {
		previous.Content.Digest = "no previous digest"
	}

	if hasContentChanges := new.DiffersFrom(previous.Content); !hasContentChanges {
		return domain.CatalogDigest{}, false, nil
	}

	now := gd.timeProvider.Now()
	promptMessages, err := buildDigestPromptMessages(new, previous.Content)
	if err != nil {
		return domain.CatalogDigest{}, false, fmt.Errorf("failed to build prompt: %w", err)
	}

	req := domain.LLMChatRequest{
		Model:       gd.model,
		Temperature: common.Ptr(1.2),
		TopP:        common.Ptr(0.95),
		Messages:    promptMessages,
	}

	resp, err := gd.llmClient.Chat(ctx, req)
	if err != nil {
		return domain.CatalogDigest{}, false, err
	}

	new.Digest = strings.TrimSpace(resp.Content)
	new.Digest = applyDigestSafetyGuards(new.Digest, new)

	RecordLLMTokensUsed(ctx, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	digest := domain.CatalogDigest{
		ID:          uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Content:     new,
		Model:       gd.model,
		GeneratedAt: now,
	}

	return digest, true, nil
}

//go:embed prompts/digest.yml
var digestPrompt embed.FS

// buildDigestPromptMessages constructs the LLM messages for the digest prompt.
func buildDigestPromptMessages(new domain.CatalogDigestContent, previous domain.CatalogDigestContent) ([]domain.LLMChatMessage, error) {
	inputTOON, err := marshalDigestContent(new)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal digest content: %w", err)
	}

	previousTOON, err := marshalDigestContent(previous)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal previous digest content: %w", err)
	}

	file, err := digestPrompt.Open("prompts/digest.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to open digest prompt: %w", err)
	}
	defer file.Close() //nolint:errcheck

	messages := []domain.LLMChatMessage{}
	err = yaml.NewDecoder(file).Decode(&messages)
	if err != nil {
		return nil, fmt.Errorf("failed to decode digest prompt: %w", err)
	}

	for i, msg := range messages {
		if !strings.Contains(msg.Content, "%s") {
			continue
		}
		msg.Content = fmt.Sprintf(msg.Content, inputTOON, previousTOON, previous.Digest)
		messages[i] = msg
	}

	return messages, nil
}

var (
	reNoOutOfStock      = regexp.MustCompile(`(?i)\bnothing is out of stock\b`)
	reOutOfStockPhrase  = regexp.MustCompile(`(?i)\bout[- ]of[- ]stock\s+`)
	reSoldOutPhrase     = regexp.MustCompile(`(?i)\bsold[- ]out\s+`)
	reDigestExtraSpaces = regexp.MustCompile(`\s{2,}`)
	reDigestSpacePunct  = regexp.MustCompile(`\s+([,.;:!?])`)
)

// applyDigestSafetyGuards cleans the generated digest text to prevent certain
// phrases from appearing if they are not supported by the current catalog facts.
func applyDigestSafetyGuards(digest string, content domain.CatalogDigestContent) string {
	cleaned := strings.TrimSpace(digest)
	if cleaned == "" {
		return cleaned
	}

	// Markdown formatting is not wanted in the storefront banner.
	cleaned = strings.ReplaceAll(cleaned, "**", "")
	// Guardrail for weaker models: when everything is in stock, do not allow
	// out-of-stock phrasing to leak into the final digest text.
	if content.InStockCount == content.ProductCount {
		cleaned = reNoOutOfStock.ReplaceAllString(cleaned, "__NOTHING_OUT_OF_STOCK__")

		cleaned = reOutOfStockPhrase.ReplaceAllString(cleaned, "")
		cleaned = reSoldOutPhrase.ReplaceAllString(cleaned, "")
		cleaned = reDigestExtraSpaces.ReplaceAllString(cleaned, " ")
		cleaned = reDigestSpacePunct.ReplaceAllString(cleaned, "$1")
		cleaned = strings.TrimSpace(cleaned)

		cleaned = strings.ReplaceAll(cleaned, "__NOTHING_OUT_OF_STOCK__", "nothing is out of stock")
	}

	return cleaned
}

// marshalDigestContent converts the CatalogDigestContent struct into a TOON string for LLM input.
func marshalDigestContent(dc domain.CatalogDigestContent) (string, error) {
	digestContentTOON, err := toon.MarshalString(dc, toon.WithLengthMarkers(true))
	if err != nil {
		return "", fmt.Errorf("failed to marshal digest content: %w", err)
	}

	return digestContentTOON, nil
}

// InitGenerateCatalogDigest initializes the GenerateCatalogDigest use case.
type InitGenerateCatalogDigest struct {
	DigestRepo   domain.CatalogDigestRepository `resolve:""`
	TimeProvider domain.CurrentTimeProvider     `resolve:""`
	LLMClient    domain.LLMClient               `resolve:""`
	Model        string                         `config:"LLM_DIGEST_MODEL"`
}

// Initialize registers the GenerateCatalogDigest use case implementation.
func (igcd InitGenerateCatalogDigest) Initialize(ctx context.Context) (context.Context, error) {
	queue, _ := depend.Resolve[CompletedDigestChannel]()
	depend.Register[GenerateCatalogDigest](NewGenerateCatalogDigestImpl(
		igcd.DigestRepo, igcd.TimeProvider, igcd.LLMClient, igcd.Model, queue,
	))
	return ctx, nil
}
