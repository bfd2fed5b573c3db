package normalizer

import (
	"time"

	"dota-scout/internal/api"
	"dota-scout/internal/domain"
)

// Match normalizes a full match payload into MatchDetails. The analysis
// block is left empty; the aggregator derives it once after roles are known.
func (n *Normalizer) Match(raw *api.MatchPayload) (*domain.MatchDetails, error) {
	if err := n.check(api.ProviderOpenDota, "match", raw); err != nil {
		return nil, err
	}

	players := make([]domain.MatchPlayer, 0, len(raw.Players))
	for _, p := range raw.Players {
		purchases := make([]domain.ItemPurchase, 0, len(p.PurchaseLog))
		for _, entry := range p.PurchaseLog {
			purchases = append(purchases, domain.ItemPurchase{Item: entry.Key, Time: entry.Time})
		}
		players = append(players, domain.MatchPlayer{
			AccountID:  p.AccountID,
			Name:       p.Personaname,
			HeroID:     p.HeroID,
			Kills:      p.Kills,
			Deaths:     p.Deaths,
			Assists:    p.Assists,
			Lane:       p.Lane,
			LaneRole:   p.LaneRole,
			Radiant:    p.PlayerSlot < 128,
			GoldPerMin: p.GoldPerMin,
			XPPerMin:   p.XPPerMin,
			LastHits:   p.LastHits,
			Purchases:  purchases,
		})
	}

	picksBans := make([]domain.PickBan, 0, len(raw.PicksBans))
	for _, pb := range raw.PicksBans {
		picksBans = append(picksBans, domain.PickBan{
			IsPick:  pb.IsPick,
			HeroID:  pb.HeroID,
			Radiant: pb.Team == 0,
			Order:   pb.Order,
		})
	}

	return &domain.MatchDetails{
		Match: domain.Match{
			ID:        raw.MatchID,
			TeamID:    raw.RadiantTeamID,
			StartedAt: time.Unix(raw.StartTime, 0).UTC(),
			Duration:  time.Duration(raw.Duration) * time.Second,
			League:    raw.LeagueName,
			Won:       raw.RadiantWin,
			Radiant:   true,
		},
		RadiantName: raw.RadiantName,
		DireName:    raw.DireName,
		RadiantWin:  raw.RadiantWin,
		Players:     players,
		PicksBans:   picksBans,
	}, nil
}
