package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"dota-scout/internal/api"
	"dota-scout/internal/normalizer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakePlayerAPI struct {
	mu    sync.Mutex
	calls map[int64]int
	fail  map[int64]error
}

func newFakePlayerAPI() *fakePlayerAPI {
	return &fakePlayerAPI{calls: make(map[int64]int), fail: make(map[int64]error)}
}

func (f *fakePlayerAPI) GetPlayer(ctx context.Context, accountID int64) (*api.PlayerPayload, error) {
	f.mu.Lock()
	f.calls[accountID]++
	f.mu.Unlock()
	if err := f.fail[accountID]; err != nil {
		return nil, err
	}
	return &api.PlayerPayload{
		Profile: api.PlayerProfilePayload{
			AccountID:   accountID,
			Personaname: "player-" + strconv.FormatInt(accountID, 10),
		},
		RankTier: 54,
	}, nil
}

func (f *fakePlayerAPI) GetPlayerHeroes(ctx context.Context, accountID int64) (*[]api.PlayerHeroPayload, error) {
	heroes := []api.PlayerHeroPayload{
		{HeroID: "14", Games: 10, Win: 6},
		{HeroID: "74", Games: 4, Win: 1},
	}
	return &heroes, nil
}

func (f *fakePlayerAPI) GetPlayerRecentMatches(ctx context.Context, accountID int64) (*[]api.PlayerRecentMatchPayload, error) {
	recent := []api.PlayerRecentMatchPayload{
		{MatchID: 100, PlayerSlot: 1, RadiantWin: true, HeroID: 14, Kills: 8, Deaths: 2, Assists: 11},
	}
	return &recent, nil
}

func (f *fakePlayerAPI) callCount(accountID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[accountID]
}

type fakeStratzPlayerAPI struct {
	payload *api.StratzPlayerPayload
	err     error
	called  bool
}

func (f *fakeStratzPlayerAPI) GetPlayer(ctx context.Context, accountID int64) (*api.StratzPlayerPayload, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func newTestPlayerService(opendota playerSource, stratz playerFallback) *PlayerService {
	return &PlayerService{
		coord:    newTestCoordinator(time.Minute),
		opendota: opendota,
		stratz:   stratz,
		norm:     normalizer.New(),
		logger:   zerolog.Nop(),
	}
}

func TestPlayerService_BatchDegradesPerItem(t *testing.T) {
	upstream := newFakePlayerAPI()
	upstream.fail[2] = &api.UpstreamError{Kind: api.ErrNetwork, Provider: "opendota", Path: "/players/2"}
	svc := newTestPlayerService(upstream, &fakeStratzPlayerAPI{err: &api.UpstreamError{Kind: api.ErrNotFound}})

	players, err := svc.GetPlayers(context.Background(), []int64{1, 2}, FetchOptions{})
	require.NoError(t, err, "one bad account must not fail the batch")
	require.Len(t, players, 2)

	require.Equal(t, int64(1), players[0].AccountID)
	require.False(t, players[0].Unavailable())
	require.Equal(t, "player-1", players[0].Profile.Name)

	require.Equal(t, int64(2), players[1].AccountID)
	require.True(t, players[1].Unavailable())
	require.NotEmpty(t, players[1].Err)
}

func TestPlayerService_BatchPreservesInputOrder(t *testing.T) {
	upstream := newFakePlayerAPI()
	svc := newTestPlayerService(upstream, &fakeStratzPlayerAPI{})

	ids := []int64{7, 3, 9, 1}
	players, err := svc.GetPlayers(context.Background(), ids, FetchOptions{})
	require.NoError(t, err)
	require.Len(t, players, len(ids))
	for i, id := range ids {
		require.Equal(t, id, players[i].AccountID)
	}
}

func TestPlayerService_RepeatFetchServedFromCache(t *testing.T) {
	upstream := newFakePlayerAPI()
	svc := newTestPlayerService(upstream, &fakeStratzPlayerAPI{})

	first, err := svc.GetPlayer(context.Background(), 1, FetchOptions{})
	require.NoError(t, err)
	second, err := svc.GetPlayer(context.Background(), 1, FetchOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, upstream.callCount(1))
	require.Same(t, first, second)
}

func TestPlayerService_NotFoundFallsBackToStratz(t *testing.T) {
	upstream := newFakePlayerAPI()
	upstream.fail[5] = &api.UpstreamError{Kind: api.ErrNotFound, Provider: "opendota", Path: "/players/5"}
	stratz := &fakeStratzPlayerAPI{payload: &api.StratzPlayerPayload{
		SteamAccountID: 5,
		Name:           "stratz-only",
		SeasonRank:     63,
	}}
	svc := newTestPlayerService(upstream, stratz)

	p, err := svc.GetPlayer(context.Background(), 5, FetchOptions{})
	require.NoError(t, err)
	require.True(t, stratz.called)
	require.Equal(t, int64(5), p.AccountID)
	require.Equal(t, "stratz-only", p.Profile.Name)
}

func TestPlayerService_NetworkErrorDoesNotFallBack(t *testing.T) {
	upstream := newFakePlayerAPI()
	upstream.fail[5] = &api.UpstreamError{Kind: api.ErrNetwork, Provider: "opendota", Path: "/players/5"}
	stratz := &fakeStratzPlayerAPI{payload: &api.StratzPlayerPayload{SteamAccountID: 5}}
	svc := newTestPlayerService(upstream, stratz)

	_, err := svc.GetPlayer(context.Background(), 5, FetchOptions{})
	require.Error(t, err)
	require.False(t, stratz.called, "fallback is reserved for not-found")
}
