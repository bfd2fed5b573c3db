package service

import (
	"context"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
	"dota-scout/internal/normalizer"

	"github.com/rs/zerolog"
)

type catalogSource interface {
	GetHeroes(ctx context.Context) (*map[string]api.HeroEntryPayload, error)
	GetItems(ctx context.Context) (*map[string]api.ItemEntryPayload, error)
}

// CatalogService serves the hero and item catalogs. Both are near-static, so
// their namespaces carry day-long TTLs.
type CatalogService struct {
	coord  *Coordinator
	cdn    catalogSource
	norm   *normalizer.Normalizer
	logger zerolog.Logger
}

func NewCatalogService(coord *Coordinator, cdn *api.ConstantsClient, norm *normalizer.Normalizer, logger zerolog.Logger) *CatalogService {
	return &CatalogService{coord: coord, cdn: cdn, norm: norm, logger: logger}
}

// The catalogs are singletons within their namespaces.
const catalogKey = "all"

func (s *CatalogService) GetHeroes(ctx context.Context, opts FetchOptions) ([]domain.Hero, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	v, err := s.coord.Fetch(ctx, cache.NamespaceHeroes, catalogKey, opts, func(ctx context.Context) (any, error) {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		defer cancel()

		raw, err := s.cdn.GetHeroes(apiCtx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch hero catalog")
			return nil, err
		}
		return s.norm.Heroes(*raw)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Hero), nil
}

func (s *CatalogService) GetItems(ctx context.Context, opts FetchOptions) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	v, err := s.coord.Fetch(ctx, cache.NamespaceItems, catalogKey, opts, func(ctx context.Context) (any, error) {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		defer cancel()

		raw, err := s.cdn.GetItems(apiCtx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch item catalog")
			return nil, err
		}
		return s.norm.Items(*raw)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Item), nil
}
