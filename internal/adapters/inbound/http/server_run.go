package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/usecases"
	"github.com/rs/cors"
)

// CatalogAppServer is the REST API HTTP server for the catalog application.
type CatalogAppServer struct {
	Port                    int                       `config:"HTTP_PORT" default:"8080"`
	Logger                  *log.Logger               `resolve:""`
	AskProductChatUseCase   usecases.AskProductChat   `resolve:""`
	ListProductsUseCase     usecases.ListProducts     `resolve:""`
	GetProductUseCase       usecases.GetProduct       `resolve:""`
	GetCatalogDigestUseCase usecases.GetCatalogDigest `resolve:""`
}

// Run starts the HTTP server for the CatalogAppServer.
func (api CatalogAppServer) Run(ctx context.Context) error {

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", api.AskChat)
	mux.HandleFunc("GET /api/products", api.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", api.GetProduct)
	mux.HandleFunc("GET /api/digest", api.GetCatalogDigest)

	// Register introspection endpoint for debugging and testing purposes
	mux.HandleFunc("/introspect", IntrospectHandler)

	var h http.Handler = telemetry.Middleware("catalogapp-api")(mux)

	// Apply CORS at the top-level so preflight requests hit it, too.
	h = cors.AllowAll().Handler(h)

	s := &http.Server{
		Handler: h,
		Addr:    fmt.Sprintf(":%d", api.Port),
	}

	errCh := make(chan error, 1)
	go func() {
		api.Logger.Printf("CatalogAppServer: Listening on port %d", api.Port)
		errCh <- s.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			api.Logger.Printf("CatalogAppServer: error during shutdown: %v", err)
		} else {
			api.Logger.Println("CatalogAppServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

// IsReady checks if the CatalogAppServer is ready by performing a health check.
func (api CatalogAppServer) IsReady(ctx context.Context) error {
	resp, err := http.Get(fmt.Sprintf("http://:%d/api/products", api.Port))
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
