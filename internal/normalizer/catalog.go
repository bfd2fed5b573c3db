package normalizer

import (
	"sort"

	"dota-scout/internal/api"
	"dota-scout/internal/domain"
)

// Heroes normalizes the CDN hero catalog, sorted by hero id.
func (n *Normalizer) Heroes(raw map[string]api.HeroEntryPayload) ([]domain.Hero, error) {
	heroes := make([]domain.Hero, 0, len(raw))
	for _, h := range raw {
		if err := n.check(api.ProviderConstants, "hero", &h); err != nil {
			return nil, err
		}
		heroes = append(heroes, domain.Hero{
			ID:          h.ID,
			Name:        h.LocalizedName,
			PrimaryAttr: h.PrimaryAttr,
			AttackType:  h.AttackType,
			Roles:       h.Roles,
		})
	}
	sort.Slice(heroes, func(i, j int) bool { return heroes[i].ID < heroes[j].ID })
	return heroes, nil
}

// Items normalizes the CDN item catalog, keyed upstream by internal item
// name, sorted by item id.
func (n *Normalizer) Items(raw map[string]api.ItemEntryPayload) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(raw))
	for name, it := range raw {
		if it.ID == 0 {
			// recipe stubs and removed items carry no id
			continue
		}
		items = append(items, domain.Item{
			ID:   it.ID,
			Name: name,
			Cost: it.Cost,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
