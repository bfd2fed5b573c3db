package service

import (
	"context"
	"strconv"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
	"dota-scout/internal/normalizer"
	"dota-scout/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type teamSource interface {
	GetTeam(ctx context.Context, teamID int64) (*api.TeamPayload, error)
	GetTeamMatches(ctx context.Context, teamID int64) (*[]api.TeamMatchPayload, error)
	GetTeamPlayers(ctx context.Context, teamID int64) (*[]api.TeamPlayerPayload, error)
}

type teamFallback interface {
	GetTeam(ctx context.Context, teamID int64) (*api.StratzTeamPayload, error)
}

type TeamService struct {
	coord    *Coordinator
	opendota teamSource
	stratz   teamFallback
	players  *PlayerService
	norm     *normalizer.Normalizer
	logger   zerolog.Logger
}

func NewTeamService(coord *Coordinator, opendota *api.OpenDotaClient, stratz *api.StratzClient, players *PlayerService, norm *normalizer.Normalizer, logger zerolog.Logger) *TeamService {
	return &TeamService{coord: coord, opendota: opendota, stratz: stratz, players: players, norm: norm, logger: logger}
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64, opts FetchOptions) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Int64("team_id", teamID).Bool("force", opts.Force).Msg("getting team")

	v, err := s.coord.Fetch(ctx, cache.NamespaceTeam, strconv.FormatInt(teamID, 10), opts, func(ctx context.Context) (any, error) {
		return s.loadTeam(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Team), nil
}

// GetAnalysis derives the scouting profile from the cached team and its
// current roster. The analysis itself is recomputed per request; only its
// inputs are cached.
func (s *TeamService) GetAnalysis(ctx context.Context, teamID int64, opts FetchOptions) (*domain.TeamAnalysis, error) {
	team, err := s.GetTeam(ctx, teamID, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(team.Roster))
	for _, m := range team.Roster {
		if m.IsCurrent {
			ids = append(ids, m.AccountID)
		}
	}

	// Player fetches degrade per item; a placeholder contributes no stats.
	players, err := s.players.GetPlayers(ctx, ids, FetchOptions{AllowStale: true})
	if err != nil {
		return nil, err
	}

	analysis := stats.AggregateTeamAnalysis(teamID, team.RecentMatches, players)
	return &analysis, nil
}

func (s *TeamService) loadTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.opendota.GetTeam(apiCtx, teamID)
	if api.IsNotFound(err) {
		s.logger.Debug().Int64("team_id", teamID).Msg("team unknown to opendota, trying stratz")
		return s.loadTeamFromStratz(ctx, teamID)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("team_id", teamID).Msg("failed to fetch team")
		return nil, err
	}

	g, gCtx := errgroup.WithContext(apiCtx)
	var rawMatches *[]api.TeamMatchPayload
	var rawPlayers *[]api.TeamPlayerPayload

	g.Go(func() error {
		var err error
		rawMatches, err = s.opendota.GetTeamMatches(gCtx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		rawPlayers, err = s.opendota.GetTeamPlayers(gCtx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("team_id", teamID).Msg("failed to fetch team matches and roster")
		return nil, err
	}

	recent := *rawMatches
	if len(recent) > constants.RecentMatchLimit {
		recent = recent[:constants.RecentMatchLimit]
	}
	matches, err := s.norm.TeamMatches(teamID, recent)
	if err != nil {
		return nil, err
	}
	roster, err := s.norm.Roster(*rawPlayers)
	if err != nil {
		return nil, err
	}

	team, err := s.norm.Team(raw, matches, roster)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("team_id", teamID).Int("match_count", len(matches)).Msg("team fetched successfully")
	return team, nil
}

func (s *TeamService) loadTeamFromStratz(ctx context.Context, teamID int64) (*domain.Team, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.stratz.GetTeam(apiCtx, teamID)
	if err != nil {
		s.logger.Error().Err(err).Int64("team_id", teamID).Msg("stratz fallback failed")
		return nil, err
	}
	return s.norm.TeamFromStratz(raw)
}
