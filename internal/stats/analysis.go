package stats

import (
	"sort"

	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
)

// AggregateTeamAnalysis composes the scouting profile for a team from its
// recent matches and roster players: overall record, strength/weakness
// buckets, hero performance split and per-phase trend.
func AggregateTeamAnalysis(teamID int64, matches []domain.Match, players []*domain.Player) domain.TeamAnalysis {
	wins := 0
	for _, m := range matches {
		if m.Won {
			wins++
		}
	}
	var rate float64
	if len(matches) > 0 {
		rate = float64(wins) / float64(len(matches)) * 100
	}

	heroes := AggregateHeroStats(players)
	successful, underperforming := SplitHeroPerformance(heroes, constants.TopHeroLimit)

	buckets := scoreBuckets(matches, players, heroes)
	var strengths, weaknesses []domain.TraitScore
	for _, b := range buckets {
		switch {
		case b.Score >= constants.StrengthScore:
			strengths = append(strengths, b)
		case b.Score <= constants.WeaknessScore:
			weaknesses = append(weaknesses, b)
		}
	}
	sort.Slice(strengths, func(i, j int) bool { return strengths[i].Score > strengths[j].Score })
	sort.Slice(weaknesses, func(i, j int) bool { return weaknesses[i].Score < weaknesses[j].Score })

	return domain.TeamAnalysis{
		TeamID:         teamID,
		MatchCount:     len(matches),
		WinRate:        rate,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		MostSuccessful: successful,
		Underperform:   underperforming,
		Phases:         phasePerformance(matches),
	}
}

func scoreBuckets(matches []domain.Match, players []*domain.Player, heroes []domain.HeroStat) []domain.TraitScore {
	return []domain.TraitScore{
		describe("team_fight", teamFightScore(players),
			"wins team fights decisively", "holds its own in team fights", "falls apart in extended team fights"),
		describe("objective_control", objectiveScore(matches),
			"closes out games quickly once ahead", "trades objectives evenly", "struggles to convert leads into objectives"),
		describe("early_aggression", phaseWinRate(matches, phaseEarly),
			"dominates the laning stage", "even early game", "bleeds advantage before the mid game"),
		describe("late_game", phaseWinRate(matches, phaseLate),
			"scales hard into the late game", "stays relevant late", "falls off past the forty minute mark"),
		describe("draft_flexibility", draftScore(heroes),
			"deep, unpredictable hero pool", "serviceable hero pool", "narrow, ban-able hero pool"),
		describe("vision", visionScore(players),
			"excellent map control and vision", "average vision game", "plays in the dark"),
	}
}

func describe(trait string, score float64, high, mid, low string) domain.TraitScore {
	desc := mid
	switch {
	case score >= constants.StrengthScore:
		desc = high
	case score <= constants.WeaknessScore:
		desc = low
	}
	return domain.TraitScore{Trait: trait, Score: score, Description: desc}
}

// teamFightScore maps the roster's average KDA onto 0-100; a sustained KDA
// of 4 reads as elite team fighting.
func teamFightScore(players []*domain.Player) float64 {
	var total float64
	n := 0
	for _, p := range players {
		if p == nil || p.Unavailable() || p.Overall.Games == 0 {
			continue
		}
		total += p.Overall.KDA
		n++
	}
	if n == 0 {
		return 50
	}
	return clamp(total / float64(n) / 4 * 100)
}

// objectiveScore rewards teams that end won games fast: an average winning
// duration of 25 minutes scores 100, 45 minutes scores 0.
func objectiveScore(matches []domain.Match) float64 {
	var total float64
	n := 0
	for _, m := range matches {
		if !m.Won {
			continue
		}
		total += m.Duration.Minutes()
		n++
	}
	if n == 0 {
		return 50
	}
	avg := total / float64(n)
	return clamp((45 - avg) / 20 * 100)
}

// draftScore counts heroes played at or above the sample floor; twenty such
// heroes is a full pool.
func draftScore(heroes []domain.HeroStat) float64 {
	distinct := 0
	for _, h := range heroes {
		if h.Games >= constants.MinGamesFloor {
			distinct++
		}
	}
	return clamp(float64(distinct) / 20 * 100)
}

// visionScore proxies map awareness through deaths per game: fewer deaths,
// better vision. Four deaths a game scores 100, twelve scores 0.
func visionScore(players []*domain.Player) float64 {
	var total float64
	n := 0
	for _, p := range players {
		if p == nil || p.Unavailable() || p.Overall.Games == 0 {
			continue
		}
		total += p.Overall.AvgDeaths
		n++
	}
	if n == 0 {
		return 50
	}
	return clamp((12 - total/float64(n)) / 8 * 100)
}

type phase int

const (
	phaseEarly phase = iota
	phaseMid
	phaseLate
)

func phaseOf(m domain.Match) phase {
	switch {
	case m.Duration < constants.EarlyGameCutoff:
		return phaseEarly
	case m.Duration > constants.LateGameCutoff:
		return phaseLate
	default:
		return phaseMid
	}
}

func phaseWinRate(matches []domain.Match, p phase) float64 {
	wins, n := 0, 0
	for _, m := range matches {
		if phaseOf(m) != p {
			continue
		}
		n++
		if m.Won {
			wins++
		}
	}
	if n == 0 {
		return 50
	}
	return float64(wins) / float64(n) * 100
}

// phasePerformance buckets matches by the phase the game was decided in and
// classifies each bucket's trend by comparing the newest TrendWindow
// outcomes against the window before them. Matches are expected newest
// first, as the normalizer orders them.
func phasePerformance(matches []domain.Match) domain.PhasePerformance {
	outcomes := map[phase][]bool{}
	for _, m := range matches {
		p := phaseOf(m)
		outcomes[p] = append(outcomes[p], m.Won)
	}
	build := func(p phase) domain.PhaseStat {
		return domain.PhaseStat{
			Score: phaseWinRate(matches, p),
			Trend: classifyTrend(outcomes[p]),
		}
	}
	return domain.PhasePerformance{
		Early: build(phaseEarly),
		Mid:   build(phaseMid),
		Late:  build(phaseLate),
	}
}

func classifyTrend(newestFirst []bool) domain.Trend {
	w := constants.TrendWindow
	if len(newestFirst) < 2*w {
		return domain.TrendStable
	}
	recent := winFraction(newestFirst[:w])
	prior := winFraction(newestFirst[w : 2*w])
	switch {
	case recent-prior > constants.TrendDelta:
		return domain.TrendImproving
	case prior-recent > constants.TrendDelta:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func winFraction(outcomes []bool) float64 {
	wins := 0
	for _, won := range outcomes {
		if won {
			wins++
		}
	}
	return float64(wins) / float64(len(outcomes))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
