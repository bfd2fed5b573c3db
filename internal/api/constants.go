package api

import (
	"context"

	"dota-scout/internal/config"
)

// ConstantsClient serves the hero and item catalogs from the dotaconstants
// CDN build. The catalogs are near-static; the long cache TTL upstream of
// this client does the real work.
type ConstantsClient struct {
	*httpClient
}

func NewConstantsClient(cfg *config.Config) *ConstantsClient {
	return &ConstantsClient{httpClient: newHTTPClient(ProviderConstants, cfg.CDNBaseURL, nil)}
}

// GetHeroes returns the hero catalog keyed by numeric hero id (as a string,
// a quirk of the CDN build).
func (c *ConstantsClient) GetHeroes(ctx context.Context) (*map[string]HeroEntryPayload, error) {
	return doRequest[map[string]HeroEntryPayload](ctx, c.httpClient, "/heroes.json")
}

// GetItems returns the item catalog keyed by internal item name.
func (c *ConstantsClient) GetItems(ctx context.Context) (*map[string]ItemEntryPayload, error) {
	return doRequest[map[string]ItemEntryPayload](ctx, c.httpClient, "/items.json")
}

type HeroEntryPayload struct {
	ID            int      `json:"id" validate:"required"`
	LocalizedName string   `json:"localized_name" validate:"required"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
}

type ItemEntryPayload struct {
	ID   int `json:"id" validate:"required"`
	Cost int `json:"cost"`
}
