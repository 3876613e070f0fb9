package usecases

import (
	"context"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

type GetCatalogDigest interface {
	Query(ctx context.Context) (domain.CatalogDigest, error)
}

type GetCatalogDigestImpl struct {
	digestRepo domain.CatalogDigestRepository
}

func NewGetCatalogDigestImpl(r domain.CatalogDigestRepository) GetCatalogDigestImpl {
	return GetCatalogDigestImpl{
		digestRepo: r,
	}
}

func (gcd GetCatalogDigestImpl) Query(ctx context.Context) (domain.CatalogDigest, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	digest, found, err := gcd.digestRepo.GetLatestDigest(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.CatalogDigest{}, err
	}
	if !found {
		err := domain.NewNotFoundErr("catalog digest not found")
		return domain.CatalogDigest{}, err
	}

	return digest, nil
}

type InitGetCatalogDigest struct {
	DigestRepo domain.CatalogDigestRepository `resolve:""`
}

func (igcd InitGetCatalogDigest) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[GetCatalogDigest](NewGetCatalogDigestImpl(igcd.DigestRepo))

	return ctx, nil
}
