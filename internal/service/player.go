package service

import (
	"context"
	"strconv"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/constants"
	"dota-scout/internal/domain"
	"dota-scout/internal/normalizer"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type playerSource interface {
	GetPlayer(ctx context.Context, accountID int64) (*api.PlayerPayload, error)
	GetPlayerHeroes(ctx context.Context, accountID int64) (*[]api.PlayerHeroPayload, error)
	GetPlayerRecentMatches(ctx context.Context, accountID int64) (*[]api.PlayerRecentMatchPayload, error)
}

type playerFallback interface {
	GetPlayer(ctx context.Context, accountID int64) (*api.StratzPlayerPayload, error)
}

type PlayerService struct {
	coord    *Coordinator
	opendota playerSource
	stratz   playerFallback
	norm     *normalizer.Normalizer
	logger   zerolog.Logger
}

func NewPlayerService(coord *Coordinator, opendota *api.OpenDotaClient, stratz *api.StratzClient, norm *normalizer.Normalizer, logger zerolog.Logger) *PlayerService {
	return &PlayerService{coord: coord, opendota: opendota, stratz: stratz, norm: norm, logger: logger}
}

func (s *PlayerService) GetPlayer(ctx context.Context, accountID int64, opts FetchOptions) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	v, err := s.coord.Fetch(ctx, cache.NamespacePlayer, strconv.FormatInt(accountID, 10), opts, func(ctx context.Context) (any, error) {
		return s.loadPlayer(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Player), nil
}

// GetPlayers fetches a batch of players, degrading per item: one account's
// failure yields a placeholder Player carrying the error instead of aborting
// the batch. Partial data beats total failure for roster views.
func (s *PlayerService) GetPlayers(ctx context.Context, accountIDs []int64, opts FetchOptions) ([]*domain.Player, error) {
	players := make([]*domain.Player, len(accountIDs))

	g := new(errgroup.Group)
	g.SetLimit(constants.BatchConcurrency)
	for i, accountID := range accountIDs {
		g.Go(func() error {
			p, err := s.GetPlayer(ctx, accountID, opts)
			if err != nil {
				s.logger.Warn().Err(err).Int64("account_id", accountID).Msg("player fetch failed, using placeholder")
				players[i] = normalizer.Placeholder(accountID, err)
				return nil
			}
			players[i] = p
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *PlayerService) loadPlayer(ctx context.Context, accountID int64) (*domain.Player, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.opendota.GetPlayer(apiCtx, accountID)
	if api.IsNotFound(err) {
		s.logger.Debug().Int64("account_id", accountID).Msg("player unknown to opendota, trying stratz")
		return s.loadPlayerFromStratz(ctx, accountID)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to fetch player")
		return nil, err
	}

	g, gCtx := errgroup.WithContext(apiCtx)
	var rawHeroes *[]api.PlayerHeroPayload
	var rawRecent *[]api.PlayerRecentMatchPayload

	g.Go(func() error {
		var err error
		rawHeroes, err = s.opendota.GetPlayerHeroes(gCtx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		rawRecent, err = s.opendota.GetPlayerRecentMatches(gCtx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to fetch player heroes")
		return nil, err
	}

	player, err := s.norm.Player(raw, *rawHeroes, *rawRecent)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("account_id", accountID).Int("hero_count", len(player.HeroStats)).Msg("player fetched successfully")
	return player, nil
}

func (s *PlayerService) loadPlayerFromStratz(ctx context.Context, accountID int64) (*domain.Player, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.stratz.GetPlayer(apiCtx, accountID)
	if err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("stratz fallback failed")
		return nil, err
	}
	return s.norm.PlayerFromStratz(raw)
}
