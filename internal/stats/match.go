package stats

import (
	"fmt"

	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
)

// BuildMatchAnalysis derives the analysis block for a match from its players
// and the per-minute radiant gold/xp advantage series. It runs once at fetch
// time; the result is cached with the MatchDetails.
func BuildMatchAnalysis(details *domain.MatchDetails, goldAdv, xpAdv []int, assigned map[int64]domain.Role) domain.MatchAnalysis {
	analysis := domain.MatchAnalysis{
		GoldGraph:  graph(goldAdv),
		XPGraph:    graph(xpAdv),
		Roles:      assigned,
		KeyMoments: []domain.KeyMoment{},
	}

	// A gold swing past the threshold inside one minute marks a fight or a
	// major pickoff.
	for i := 1; i < len(goldAdv); i++ {
		swing := goldAdv[i] - goldAdv[i-1]
		if swing >= constants.KeyMomentGoldSwing {
			analysis.TeamFights++
			analysis.KeyMoments = append(analysis.KeyMoments, domain.KeyMoment{
				Minute:      i,
				Description: fmt.Sprintf("%s swing gold their way (+%d)", radiantLabel(details), swing),
			})
		} else if swing <= -constants.KeyMomentGoldSwing {
			analysis.TeamFights++
			analysis.KeyMoments = append(analysis.KeyMoments, domain.KeyMoment{
				Minute:      i,
				Description: fmt.Sprintf("%s swing gold their way (+%d)", direLabel(details), -swing),
			})
		}
	}

	return analysis
}

func graph(series []int) []domain.GraphPoint {
	points := make([]domain.GraphPoint, 0, len(series))
	for minute, adv := range series {
		points = append(points, domain.GraphPoint{Minute: minute, Advantage: adv})
	}
	return points
}

func radiantLabel(details *domain.MatchDetails) string {
	if details.RadiantName != "" {
		return details.RadiantName
	}
	return "Radiant"
}

func direLabel(details *domain.MatchDetails) string {
	if details.DireName != "" {
		return details.DireName
	}
	return "Dire"
}
