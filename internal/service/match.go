package service

import (
	"context"
	"strconv"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
	"dota-scout/internal/normalizer"
	"dota-scout/internal/roles"
	"dota-scout/internal/stats"

	"github.com/rs/zerolog"
)

type matchSource interface {
	GetMatch(ctx context.Context, matchID int64) (*api.MatchPayload, error)
}

type MatchService struct {
	coord    *Coordinator
	opendota matchSource
	norm     *normalizer.Normalizer
	logger   zerolog.Logger
}

func NewMatchService(coord *Coordinator, opendota *api.OpenDotaClient, norm *normalizer.Normalizer, logger zerolog.Logger) *MatchService {
	return &MatchService{coord: coord, opendota: opendota, norm: norm, logger: logger}
}

// GetMatch returns the match with per-side rosters, picks/bans, role
// assignments and the derived analysis block. Analysis is computed once at
// fetch time and cached with the entity.
func (s *MatchService) GetMatch(ctx context.Context, matchID int64, opts FetchOptions) (*domain.MatchDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	v, err := s.coord.Fetch(ctx, cache.NamespaceMatch, strconv.FormatInt(matchID, 10), opts, func(ctx context.Context) (any, error) {
		return s.loadMatch(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.MatchDetails), nil
}

func (s *MatchService) loadMatch(ctx context.Context, matchID int64) (*domain.MatchDetails, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.opendota.GetMatch(apiCtx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Msg("failed to fetch match")
		return nil, err
	}

	details, err := s.norm.Match(raw)
	if err != nil {
		return nil, err
	}

	assigned := roles.Detect(details.Players)
	for i := range details.Players {
		details.Players[i].Role = assigned[details.Players[i].AccountID]
	}
	details.Analysis = stats.BuildMatchAnalysis(details, raw.RadiantGold, raw.RadiantXP, assigned)

	s.logger.Info().
		Int64("match_id", matchID).
		Int("player_count", len(details.Players)).
		Int("team_fights", details.Analysis.TeamFights).
		Msg("match fetched successfully")
	return details, nil
}
