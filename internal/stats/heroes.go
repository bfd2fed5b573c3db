// Package stats derives scouting metrics from canonical entities: hero
// performance grids, team strength profiles and per-match analysis blocks.
// Everything here is a pure function; thresholds live in constants.
package stats

import (
	"sort"

	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
)

// AggregateHeroStats sums games and wins per hero across all supplied
// players and recomputes win rates. The result is independent of input
// order: rows sort by games descending, then hero id ascending.
// Placeholder players contribute nothing.
func AggregateHeroStats(players []*domain.Player) []domain.HeroStat {
	byHero := make(map[int]*domain.HeroStat)
	for _, p := range players {
		if p == nil || p.Unavailable() {
			continue
		}
		for _, hs := range p.HeroStats {
			agg, ok := byHero[hs.HeroID]
			if !ok {
				agg = &domain.HeroStat{HeroID: hs.HeroID}
				byHero[hs.HeroID] = agg
			}
			agg.Games += hs.Games
			agg.Wins += hs.Wins
		}
	}

	out := make([]domain.HeroStat, 0, len(byHero))
	for _, agg := range byHero {
		if agg.Games > 0 {
			agg.WinRate = float64(agg.Wins) / float64(agg.Games) * 100
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].HeroID < out[j].HeroID
	})
	return out
}

// SplitHeroPerformance partitions aggregated hero stats into
// most-successful and underperforming sets. Heroes below the minimum games
// floor are excluded from both: small samples say nothing. Each set is
// capped at limit, ordered by win rate with games-then-id tie-breaks.
func SplitHeroPerformance(heroes []domain.HeroStat, limit int) (successful, underperforming []domain.HeroStat) {
	for _, h := range heroes {
		if h.Games < constants.MinGamesFloor {
			continue
		}
		switch {
		case h.WinRate >= constants.SuccessWinRate:
			successful = append(successful, h)
		case h.WinRate <= constants.UnderperformWinRate:
			underperforming = append(underperforming, h)
		}
	}

	byRate := func(s []domain.HeroStat, asc bool) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].WinRate != s[j].WinRate {
				if asc {
					return s[i].WinRate < s[j].WinRate
				}
				return s[i].WinRate > s[j].WinRate
			}
			if s[i].Games != s[j].Games {
				return s[i].Games > s[j].Games
			}
			return s[i].HeroID < s[j].HeroID
		})
	}
	byRate(successful, false)
	byRate(underperforming, true)

	if len(successful) > limit {
		successful = successful[:limit]
	}
	if len(underperforming) > limit {
		underperforming = underperforming[:limit]
	}
	return successful, underperforming
}
