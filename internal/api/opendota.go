package api

import (
	"context"
	"fmt"

	"dota-scout/internal/config"
)

// OpenDotaClient is the primary provider: team profiles, team matches,
// rosters, player profiles, per-hero records and parsed match details.
type OpenDotaClient struct {
	*httpClient
}

func NewOpenDotaClient(cfg *config.Config) *OpenDotaClient {
	headers := map[string]string{}
	if cfg.OpenDotaAPIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.OpenDotaAPIKey
	}
	return &OpenDotaClient{httpClient: newHTTPClient(ProviderOpenDota, cfg.OpenDotaBaseURL, headers)}
}

func (c *OpenDotaClient) GetTeam(ctx context.Context, teamID int64) (*TeamPayload, error) {
	return doRequest[TeamPayload](ctx, c.httpClient, fmt.Sprintf("/teams/%d", teamID))
}

func (c *OpenDotaClient) GetTeamMatches(ctx context.Context, teamID int64) (*[]TeamMatchPayload, error) {
	return doRequest[[]TeamMatchPayload](ctx, c.httpClient, fmt.Sprintf("/teams/%d/matches", teamID))
}

func (c *OpenDotaClient) GetTeamPlayers(ctx context.Context, teamID int64) (*[]TeamPlayerPayload, error) {
	return doRequest[[]TeamPlayerPayload](ctx, c.httpClient, fmt.Sprintf("/teams/%d/players", teamID))
}

func (c *OpenDotaClient) GetPlayer(ctx context.Context, accountID int64) (*PlayerPayload, error) {
	return doRequest[PlayerPayload](ctx, c.httpClient, fmt.Sprintf("/players/%d", accountID))
}

func (c *OpenDotaClient) GetPlayerHeroes(ctx context.Context, accountID int64) (*[]PlayerHeroPayload, error) {
	return doRequest[[]PlayerHeroPayload](ctx, c.httpClient, fmt.Sprintf("/players/%d/heroes", accountID))
}

func (c *OpenDotaClient) GetPlayerRecentMatches(ctx context.Context, accountID int64) (*[]PlayerRecentMatchPayload, error) {
	return doRequest[[]PlayerRecentMatchPayload](ctx, c.httpClient, fmt.Sprintf("/players/%d/recentMatches", accountID))
}

func (c *OpenDotaClient) GetMatch(ctx context.Context, matchID int64) (*MatchPayload, error) {
	return doRequest[MatchPayload](ctx, c.httpClient, fmt.Sprintf("/matches/%d", matchID))
}

type TeamPayload struct {
	TeamID        int64   `json:"team_id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Tag           string  `json:"tag"`
	LogoURL       string  `json:"logo_url"`
	Rating        float64 `json:"rating"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	LastMatchTime int64   `json:"last_match_time"`
}

type TeamMatchPayload struct {
	MatchID          int64  `json:"match_id" validate:"required"`
	RadiantWin       bool   `json:"radiant_win"`
	Radiant          bool   `json:"radiant"`
	Duration         int    `json:"duration"`
	StartTime        int64  `json:"start_time"`
	LeagueName       string `json:"league_name"`
	OpposingTeamID   int64  `json:"opposing_team_id"`
	OpposingTeamName string `json:"opposing_team_name"`
}

type TeamPlayerPayload struct {
	AccountID   int64  `json:"account_id" validate:"required"`
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	IsCurrent   bool   `json:"is_current_team_member"`
}

type PlayerProfilePayload struct {
	AccountID   int64  `json:"account_id" validate:"required"`
	Personaname string `json:"personaname"`
	Avatarfull  string `json:"avatarfull"`
}

type PlayerPayload struct {
	Profile  PlayerProfilePayload `json:"profile" validate:"required"`
	RankTier int                  `json:"rank_tier"`
	TeamName string               `json:"team_name"`
}

// HeroID arrives as a JSON string on this endpoint, unlike everywhere else.
// The normalizer converts it.
type PlayerHeroPayload struct {
	HeroID string `json:"hero_id" validate:"required"`
	Games  int    `json:"games"`
	Win    int    `json:"win"`
}

type PlayerRecentMatchPayload struct {
	MatchID    int64 `json:"match_id" validate:"required"`
	PlayerSlot int   `json:"player_slot"`
	RadiantWin bool  `json:"radiant_win"`
	HeroID     int   `json:"hero_id"`
	Kills      int   `json:"kills"`
	Deaths     int   `json:"deaths"`
	Assists    int   `json:"assists"`
}

type PurchaseLogEntry struct {
	Time int    `json:"time"`
	Key  string `json:"key"`
}

type MatchPlayerPayload struct {
	AccountID   int64              `json:"account_id"`
	Personaname string             `json:"personaname"`
	PlayerSlot  int                `json:"player_slot"`
	HeroID      int                `json:"hero_id" validate:"required"`
	Kills       int                `json:"kills"`
	Deaths      int                `json:"deaths"`
	Assists     int                `json:"assists"`
	Lane        int                `json:"lane"`
	LaneRole    int                `json:"lane_role"`
	GoldPerMin  int                `json:"gold_per_min"`
	XPPerMin    int                `json:"xp_per_min"`
	LastHits    int                `json:"last_hits"`
	PurchaseLog []PurchaseLogEntry `json:"purchase_log"`
}

type PickBanPayload struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"` // 0 = radiant, 1 = dire
	Order  int  `json:"order"`
}

type MatchPayload struct {
	MatchID       int64                `json:"match_id" validate:"required"`
	RadiantWin    bool                 `json:"radiant_win"`
	Duration      int                  `json:"duration"`
	StartTime     int64                `json:"start_time"`
	RadiantName   string               `json:"radiant_name"`
	DireName      string               `json:"dire_name"`
	RadiantTeamID int64                `json:"radiant_team_id"`
	DireTeamID    int64                `json:"dire_team_id"`
	LeagueName    string               `json:"league_name"`
	PicksBans     []PickBanPayload     `json:"picks_bans"`
	RadiantGold   []int                `json:"radiant_gold_adv"`
	RadiantXP     []int                `json:"radiant_xp_adv"`
	Players       []MatchPlayerPayload `json:"players" validate:"required,min=1,dive"`
}
