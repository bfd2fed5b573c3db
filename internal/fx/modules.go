package fx

import (
	"time"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/config"
	"dota-scout/internal/database"
	"dota-scout/internal/fixture"
	"dota-scout/internal/logger"
	"dota-scout/internal/normalizer"
	"dota-scout/internal/server"
	"dota-scout/internal/service"

	"go.uber.org/fx"
)

func ProvideCacheStore(cfg *config.Config) *cache.Store {
	return cache.New(map[cache.Namespace]time.Duration{
		cache.NamespaceTeam:   cfg.TTL.Team,
		cache.NamespacePlayer: cfg.TTL.Player,
		cache.NamespaceMatch:  cfg.TTL.Match,
		cache.NamespaceHeroes: cfg.TTL.Heroes,
		cache.NamespaceItems:  cfg.TTL.Items,
	})
}

// wireCapture hooks the fixture store into every provider client when
// capture is enabled.
func wireCapture(store *fixture.Store, opendota *api.OpenDotaClient, stratz *api.StratzClient, cdn *api.ConstantsClient) {
	if !store.Enabled() {
		return
	}
	opendota.SetCaptureHook(store.Capture)
	stratz.SetCaptureHook(store.Capture)
	cdn.SetCaptureHook(store.Capture)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(fixture.NewStore),
	fx.Provide(ProvideCacheStore),
	// api clients
	fx.Provide(api.NewOpenDotaClient),
	fx.Provide(api.NewStratzClient),
	fx.Provide(api.NewConstantsClient),
	// normalization
	fx.Provide(normalizer.New),
	// svc
	fx.Provide(service.NewCoordinator),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewCatalogService),
	// server
	fx.Provide(server.New),
	fx.Invoke(wireCapture),
)
