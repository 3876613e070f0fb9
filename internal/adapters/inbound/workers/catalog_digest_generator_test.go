package workers

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogDigestGenerator_Run(t *testing.T) {
	tests := map[string]struct {
		batchSize       int
		interval        time.Duration
		publishCount    int
		expectedBatches int
		setExpectations func(*mockGenerateCatalogDigest)
	}{
		"batch-full-triggers-processing": {
			batchSize:       5,
			interval:        300 * time.Millisecond,
			publishCount:    20,
			expectedBatches: 4,
			setExpectations: func(gcd *mockGenerateCatalogDigest) {
				gcd.On("Execute", mock.Anything).Return(nil).Times(4)
			},
		},
		"interval-flush-triggers-processing": {
			batchSize:       10,
			interval:        100 * time.Millisecond,
			publishCount:    3,
			expectedBatches: 1,
			setExpectations: func(gcd *mockGenerateCatalogDigest) {
				gcd.On("Execute", mock.Anything).Return(nil).Once()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()
			client, topicName := setupPubSubServer(t, ctx, "test-topic-"+name, "test-subscription-"+name)

			gcd := &mockGenerateCatalogDigest{}
			if tt.setExpectations != nil {
				tt.setExpectations(gcd)
			}

			signalChan := make(chan struct{})
			cancel, doneChan := run(t, ctx, CatalogDigestGenerator{
				Logger:                log.Default(),
				Client:                client,
				Interval:              tt.interval,
				BatchSize:             tt.batchSize,
				SubscriptionID:        "test-subscription-" + name,
				GenerateCatalogDigest: gcd,
				workerExecutionChan:   signalChan,
			})

			var payloads [][]byte
			for range tt.publishCount {
				payloads = append(payloads, interactionEventPayload(t, domain.ChatInteractionEvent{
					ID:       uuid.New(),
					Question: "What is the cheapest product?",
					Intents:  []string{"lowest_price"},
				}))
			}
			err := publishMessages(ctx, client, topicName, payloads)
			assert.NoError(t, err)

			got := waitForBatchSignals(t, signalChan, tt.expectedBatches, 10*time.Second)
			assert.Equal(t, tt.expectedBatches, got)

			cancel()

			waitRunnableStop(t, doneChan)
		})
	}
}
