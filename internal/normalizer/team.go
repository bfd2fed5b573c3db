package normalizer

import (
	"sort"
	"time"

	"dota-scout/internal/api"
	"dota-scout/internal/domain"
)

// Team assembles the canonical Team from the OpenDota team payload plus its
// already-normalized recent matches and roster. Streaks and average duration
// derive from the matches, newest first.
func (n *Normalizer) Team(raw *api.TeamPayload, matches []domain.Match, roster []domain.RosterMember) (*domain.Team, error) {
	if err := n.check(api.ProviderOpenDota, "team", raw); err != nil {
		return nil, err
	}

	stats := domain.TeamStats{
		Wins:    raw.Wins,
		Losses:  raw.Losses,
		WinRate: winRate(raw.Wins, raw.Losses),
		Rating:  raw.Rating,
	}
	stats.CurrentStreak, stats.LongestWinStreak = streaks(matches)
	stats.AvgMatchDuration = avgDuration(matches)

	return &domain.Team{
		ID:            raw.TeamID,
		Name:          raw.Name,
		Tag:           raw.Tag,
		LogoURL:       raw.LogoURL,
		Stats:         stats,
		Roster:        roster,
		RecentMatches: matches,
		ProcessedAt:   time.Now().UTC(),
	}, nil
}

// TeamFromStratz is the fallback arm for teams OpenDota does not know.
func (n *Normalizer) TeamFromStratz(raw *api.StratzTeamPayload) (*domain.Team, error) {
	if err := n.check(api.ProviderStratz, "team", raw); err != nil {
		return nil, err
	}

	roster := make([]domain.RosterMember, 0, len(raw.Members))
	for _, m := range raw.Members {
		roster = append(roster, domain.RosterMember{
			AccountID: m.SteamAccountID,
			Name:      m.Name,
			IsCurrent: m.IsCurrent,
		})
	}

	return &domain.Team{
		ID:      raw.ID,
		Name:    raw.Name,
		Tag:     raw.Tag,
		LogoURL: raw.Logo,
		Stats: domain.TeamStats{
			Wins:    raw.WinCount,
			Losses:  raw.LossCount,
			WinRate: winRate(raw.WinCount, raw.LossCount),
			Rating:  raw.Rating,
		},
		Roster:      roster,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// TeamMatches normalizes the team match log, newest first.
func (n *Normalizer) TeamMatches(teamID int64, raws []api.TeamMatchPayload) ([]domain.Match, error) {
	matches := make([]domain.Match, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		if err := n.check(api.ProviderOpenDota, "team_match", raw); err != nil {
			return nil, err
		}
		matches = append(matches, domain.Match{
			ID:        raw.MatchID,
			TeamID:    teamID,
			Opponent:  raw.OpposingTeamName,
			Won:       raw.Radiant == raw.RadiantWin,
			Radiant:   raw.Radiant,
			StartedAt: time.Unix(raw.StartTime, 0).UTC(),
			Duration:  time.Duration(raw.Duration) * time.Second,
			League:    raw.LeagueName,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartedAt.After(matches[j].StartedAt)
	})
	return matches, nil
}

func (n *Normalizer) Roster(raws []api.TeamPlayerPayload) ([]domain.RosterMember, error) {
	roster := make([]domain.RosterMember, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		if err := n.check(api.ProviderOpenDota, "team_player", raw); err != nil {
			return nil, err
		}
		roster = append(roster, domain.RosterMember{
			AccountID:   raw.AccountID,
			Name:        raw.Name,
			GamesPlayed: raw.GamesPlayed,
			Wins:        raw.Wins,
			IsCurrent:   raw.IsCurrent,
		})
	}
	return roster, nil
}

// streaks walks matches newest first and returns the current streak (signed,
// negative while losing) and the longest win streak in the window.
func streaks(matches []domain.Match) (current, longestWin int) {
	run := 0
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Won {
			run++
			if run > longestWin {
				longestWin = run
			}
		} else {
			run = 0
		}
	}

	for _, m := range matches {
		if m.Won {
			if current < 0 {
				break
			}
			current++
		} else {
			if current > 0 {
				break
			}
			current--
		}
	}
	return current, longestWin
}

func avgDuration(matches []domain.Match) time.Duration {
	if len(matches) == 0 {
		return 0
	}
	var total time.Duration
	for _, m := range matches {
		total += m.Duration
	}
	return total / time.Duration(len(matches))
}
