package api

import (
	"context"
	"fmt"

	"dota-scout/internal/config"
)

// StratzClient is the fallback provider for team and player profiles when
// OpenDota has no record. Its payloads are camelCase and shaped differently;
// the normalizer owns the translation.
type StratzClient struct {
	*httpClient
}

func NewStratzClient(cfg *config.Config) *StratzClient {
	headers := map[string]string{}
	if cfg.StratzAPIToken != "" {
		headers["Authorization"] = "Bearer " + cfg.StratzAPIToken
	}
	return &StratzClient{httpClient: newHTTPClient(ProviderStratz, cfg.StratzBaseURL, headers)}
}

func (c *StratzClient) GetTeam(ctx context.Context, teamID int64) (*StratzTeamPayload, error) {
	return doRequest[StratzTeamPayload](ctx, c.httpClient, fmt.Sprintf("/team/%d", teamID))
}

func (c *StratzClient) GetPlayer(ctx context.Context, accountID int64) (*StratzPlayerPayload, error) {
	return doRequest[StratzPlayerPayload](ctx, c.httpClient, fmt.Sprintf("/player/%d", accountID))
}

type StratzTeamMemberPayload struct {
	SteamAccountID int64  `json:"steamAccountId"`
	Name           string `json:"name"`
	IsCurrent      bool   `json:"currentTeam"`
}

type StratzTeamPayload struct {
	ID        int64                     `json:"id" validate:"required"`
	Name      string                    `json:"name" validate:"required"`
	Tag       string                    `json:"tag"`
	Logo      string                    `json:"logo"`
	WinCount  int                       `json:"winCount"`
	LossCount int                       `json:"lossCount"`
	Rating    float64                   `json:"rating"`
	Members   []StratzTeamMemberPayload `json:"members"`
}

type StratzPlayerPayload struct {
	SteamAccountID int64  `json:"steamAccountId" validate:"required"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	SeasonRank     int    `json:"seasonRank"`
	TeamName       string `json:"teamName"`
}
