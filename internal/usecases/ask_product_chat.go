package usecases

import (
	"context"
	"log"
	"strings"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/chat"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/google/uuid"
)

// AskProductChat is the use case interface for answering a product question.
type AskProductChat interface {
	Execute(ctx context.Context, question string) (domain.ChatAnswer, error)
}

// AskProductChatImpl is the implementation of the AskProductChat use case.
// It validates the question, delegates to the chat pipeline, and records the
// interaction in the outbox for the notifications relay.
type AskProductChatImpl struct {
	productChat  chat.ProductChat
	index        *chat.EmbeddingIndex
	uow          domain.UnitOfWork
	timeProvider domain.CurrentTimeProvider
	logger       *log.Logger
}

// NewAskProductChatImpl creates a new instance of AskProductChatImpl.
func NewAskProductChatImpl(
	pc chat.ProductChat,
	index *chat.EmbeddingIndex,
	uow domain.UnitOfWork,
	tp domain.CurrentTimeProvider,
	logger *log.Logger,
) AskProductChatImpl {
	return AskProductChatImpl{
		productChat:  pc,
		index:        index,
		uow:          uow,
		timeProvider: tp,
		logger:       logger,
	}
}

// Execute answers one product question. The only error it returns is
// validation of the question itself; provider and store degradations are
// reflected in the answer text instead.
func (ap AskProductChatImpl) Execute(ctx context.Context, question string) (domain.ChatAnswer, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if strings.TrimSpace(question) == "" {
		err := domain.NewValidationErr("question cannot be empty")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.ChatAnswer{}, err
	}

	answer := ap.productChat.Ask(spanCtx, question)

	ap.recordInteraction(spanCtx, question, answer)

	return answer, nil
}

// recordInteraction writes the interaction event to the outbox. A failing
// write is logged and dropped; it never affects the answer.
func (ap AskProductChatImpl) recordInteraction(ctx context.Context, question string, answer domain.ChatAnswer) {
	sourceIDs := make([]int64, len(answer.Sources))
	for i, p := range answer.Sources {
		sourceIDs[i] = p.ID
	}

	event := domain.ChatInteractionEvent{
		ID:        uuid.New(),
		Question:  question,
		Intents:   chat.DetectIntents(question).Names(),
		SourceIDs: sourceIDs,
		Degraded:  !ap.index.EmbeddingAvailable() || !ap.index.ChatAvailable(),
		CreatedAt: ap.timeProvider.Now(),
	}

	err := ap.uow.Execute(ctx, func(uow domain.UnitOfWork) error {
		return uow.Outbox().CreateChatInteractionEvent(ctx, event)
	})
	if err != nil {
		ap.logger.Printf("AskProductChat: failed to record interaction %s: %v", event.ID, err)
	}
}

// InitAskProductChat initializes the AskProductChat use case.
type InitAskProductChat struct {
	ProductChat  chat.ProductChat           `resolve:""`
	Index        *chat.EmbeddingIndex       `resolve:""`
	Uow          domain.UnitOfWork          `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
	Logger       *log.Logger                `resolve:""`
}

// Initialize registers the AskProductChat use case implementation.
func (iapc InitAskProductChat) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[AskProductChat](NewAskProductChatImpl(
		iapc.ProductChat, iapc.Index, iapc.Uow, iapc.TimeProvider, iapc.Logger,
	))
	return ctx, nil
}
