package app

import (
	"github.com/cleitonmarx/symbiont"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/inbound/http"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/inbound/workers"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/config"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/log"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/modelrunner"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/postgres"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/pubsub"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/adapters/outbound/time"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/chat"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/usecases"
)

// NewCatalogApp creates and returns a new instance of the catalog application.
func NewCatalogApp(initializers ...symbiont.Initializer) *symbiont.App {
	return symbiont.NewApp().
		Initialize(initializers...).
		Initialize(
			&log.InitLogger{},
			&telemetry.InitOpenTelemetry{},
			&telemetry.InitHttpClient{},
			&config.InitVaultProvider{},
			&postgres.InitDB{},
			&postgres.InitUnitOfWork{},
			&postgres.InitProductRepository{},
			&postgres.InitOrderRepository{},
			&postgres.InitReviewRepository{},
			&postgres.InitCatalogDigestRepository{},
			&time.InitCurrentTimeProvider{},
			&pubsub.InitClient{},
			&pubsub.InitPublisher{},
			&modelrunner.InitLLMClient{},

			&chat.InitProductChat{},

			&usecases.InitAskProductChat{},
			&usecases.InitListProducts{},
			&usecases.InitGetProduct{},
			&usecases.InitGenerateCatalogDigest{},
			&usecases.InitGetCatalogDigest{},
			&usecases.InitRelayOutbox{},
		).
		Host(
			&http.CatalogAppServer{},
			&workers.CatalogDigestGenerator{},
			&workers.MessageRelay{},
		).
		Introspect(&MermaidGraphIntrospector{})
}
