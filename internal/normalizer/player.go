package normalizer

import (
	"sort"
	"strconv"

	"dota-scout/internal/api"
	"dota-scout/internal/domain"
)

// Player builds the canonical Player from the profile, per-hero record and
// recent match payloads. Hero ids on the heroes endpoint arrive as strings;
// rows that fail to parse are dropped rather than failing the whole player.
func (n *Normalizer) Player(raw *api.PlayerPayload, heroes []api.PlayerHeroPayload, recent []api.PlayerRecentMatchPayload) (*domain.Player, error) {
	if err := n.check(api.ProviderOpenDota, "player", raw); err != nil {
		return nil, err
	}

	heroStats := make([]domain.HeroStat, 0, len(heroes))
	var games, wins int
	for _, h := range heroes {
		heroID, err := strconv.Atoi(h.HeroID)
		if err != nil || heroID == 0 {
			continue
		}
		hs := domain.HeroStat{HeroID: heroID, Games: h.Games, Wins: h.Win}
		if hs.Games > 0 {
			hs.WinRate = float64(hs.Wins) / float64(hs.Games) * 100
		}
		heroStats = append(heroStats, hs)
		games += h.Games
		wins += h.Win
	}
	sort.Slice(heroStats, func(i, j int) bool {
		if heroStats[i].Games != heroStats[j].Games {
			return heroStats[i].Games > heroStats[j].Games
		}
		return heroStats[i].HeroID < heroStats[j].HeroID
	})

	overall := domain.PlayerStats{Games: games, Wins: wins}
	if games > 0 {
		overall.WinRate = float64(wins) / float64(games) * 100
	}

	matchIDs := make([]int64, 0, len(recent))
	var kills, deaths, assists int
	for _, m := range recent {
		matchIDs = append(matchIDs, m.MatchID)
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
	}
	if len(recent) > 0 {
		count := float64(len(recent))
		overall.AvgKills = float64(kills) / count
		overall.AvgDeaths = float64(deaths) / count
		overall.AvgAssists = float64(assists) / count
		d := deaths
		if d == 0 {
			d = 1
		}
		overall.KDA = float64(kills+assists) / float64(d)
	}

	return &domain.Player{
		AccountID: raw.Profile.AccountID,
		Profile: domain.PlayerProfile{
			AccountID: raw.Profile.AccountID,
			Name:      raw.Profile.Personaname,
			AvatarURL: raw.Profile.Avatarfull,
			RankTier:  raw.RankTier,
			TeamName:  raw.TeamName,
		},
		HeroStats:      heroStats,
		Overall:        overall,
		RecentMatchIDs: matchIDs,
	}, nil
}

// PlayerFromStratz normalizes the fallback profile shape. Stratz has no
// per-hero record on this endpoint, so the result carries profile data only.
func (n *Normalizer) PlayerFromStratz(raw *api.StratzPlayerPayload) (*domain.Player, error) {
	if err := n.check(api.ProviderStratz, "player", raw); err != nil {
		return nil, err
	}
	return &domain.Player{
		AccountID: raw.SteamAccountID,
		Profile: domain.PlayerProfile{
			AccountID: raw.SteamAccountID,
			Name:      raw.Name,
			AvatarURL: raw.Avatar,
			RankTier:  raw.SeasonRank,
			TeamName:  raw.TeamName,
		},
	}, nil
}

// Placeholder builds the degraded Player a batch returns when one account's
// fetch fails: error marker set, stats zeroed.
func Placeholder(accountID int64, err error) *domain.Player {
	return &domain.Player{
		AccountID: accountID,
		Profile:   domain.PlayerProfile{AccountID: accountID},
		Err:       err.Error(),
	}
}
