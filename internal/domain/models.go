package domain

import (
	"time"
)

// Role is a player's functional position in a match, inferred from lane
// assignment and item purchase timing.
type Role string

const (
	RoleCarry       Role = "carry"
	RoleMid         Role = "mid"
	RoleOfflane     Role = "offlane"
	RoleSoftSupport Role = "soft_support"
	RoleHardSupport Role = "hard_support"
	RoleUnknown     Role = "unknown"
)

type TeamStats struct {
	Wins             int           `json:"wins"`
	Losses           int           `json:"losses"`
	WinRate          float64       `json:"win_rate"`
	Rating           float64       `json:"rating"`
	CurrentStreak    int           `json:"current_streak"` // positive = winning, negative = losing
	LongestWinStreak int           `json:"longest_win_streak"`
	AvgMatchDuration time.Duration `json:"avg_match_duration"`
}

type RosterMember struct {
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	IsCurrent   bool   `json:"is_current"`
}

type Team struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Tag           string         `json:"tag"`
	LogoURL       string         `json:"logo_url"`
	Stats         TeamStats      `json:"stats"`
	Roster        []RosterMember `json:"roster"`
	RecentMatches []Match        `json:"recent_matches"`
	ProcessedAt   time.Time      `json:"processed_at"`
}

type PlayerProfile struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	RankTier  int    `json:"rank_tier"`
	TeamName  string `json:"team_name,omitempty"`
}

type PlayerStats struct {
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
	AvgKills   float64 `json:"avg_kills"`
	AvgDeaths  float64 `json:"avg_deaths"`
	AvgAssists float64 `json:"avg_assists"`
	KDA        float64 `json:"kda"`
}

// Player carries per-hero and overall statistics for one account. A failed
// fetch in a batch produces a placeholder Player with Err set and zeroed
// stats; callers treat Err presence as "data unavailable", not as a failure
// of the whole batch.
type Player struct {
	AccountID      int64         `json:"account_id"`
	Profile        PlayerProfile `json:"profile"`
	HeroStats      []HeroStat    `json:"hero_stats"`
	Overall        PlayerStats   `json:"overall"`
	RecentMatchIDs []int64       `json:"recent_match_ids"`
	Err            string        `json:"error,omitempty"`
}

// Unavailable reports whether this Player is a placeholder for a failed fetch.
func (p *Player) Unavailable() bool {
	return p.Err != ""
}

// HeroStat is an aggregate over one or more players' games on a single hero.
// WinRate is wins/games*100, zero when games is zero.
type HeroStat struct {
	HeroID  int     `json:"hero_id"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

type Match struct {
	ID        int64         `json:"id"`
	TeamID    int64         `json:"team_id,omitempty"`
	Opponent  string        `json:"opponent,omitempty"`
	Won       bool          `json:"won"`
	Radiant   bool          `json:"radiant"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	League    string        `json:"league,omitempty"`
}

type ItemPurchase struct {
	Item string `json:"item"`
	Time int    `json:"time"` // seconds from match start
}

type MatchPlayer struct {
	AccountID  int64          `json:"account_id"`
	Name       string         `json:"name,omitempty"`
	HeroID     int            `json:"hero_id"`
	Kills      int            `json:"kills"`
	Deaths     int            `json:"deaths"`
	Assists    int            `json:"assists"`
	Lane       int            `json:"lane"`
	LaneRole   int            `json:"lane_role"`
	Radiant    bool           `json:"radiant"`
	GoldPerMin int            `json:"gold_per_min"`
	XPPerMin   int            `json:"xp_per_min"`
	LastHits   int            `json:"last_hits"`
	Purchases  []ItemPurchase `json:"purchases,omitempty"`
	Role       Role           `json:"role,omitempty"`
}

type PickBan struct {
	IsPick  bool `json:"is_pick"`
	HeroID  int  `json:"hero_id"`
	Radiant bool `json:"radiant"`
	Order   int  `json:"order"`
}

type GraphPoint struct {
	Minute    int `json:"minute"`
	Advantage int `json:"advantage"` // radiant-positive
}

type KeyMoment struct {
	Minute      int    `json:"minute"`
	Description string `json:"description"`
}

// MatchAnalysis is derived once per fetch from the match and its players and
// cached with the MatchDetails it belongs to.
type MatchAnalysis struct {
	KeyMoments []KeyMoment    `json:"key_moments"`
	TeamFights int            `json:"team_fights"`
	GoldGraph  []GraphPoint   `json:"gold_graph"`
	XPGraph    []GraphPoint   `json:"xp_graph"`
	Roles      map[int64]Role `json:"roles"`
}

type MatchDetails struct {
	Match
	RadiantName string        `json:"radiant_name,omitempty"`
	DireName    string        `json:"dire_name,omitempty"`
	RadiantWin  bool          `json:"radiant_win"`
	Players     []MatchPlayer `json:"players"`
	PicksBans   []PickBan     `json:"picks_bans,omitempty"`
	Analysis    MatchAnalysis `json:"analysis"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type TraitScore struct {
	Trait       string  `json:"trait"`
	Score       float64 `json:"score"` // 0-100
	Description string  `json:"description"`
}

type PhaseStat struct {
	Score float64 `json:"score"`
	Trend Trend   `json:"trend"`
}

type PhasePerformance struct {
	Early PhaseStat `json:"early"`
	Mid   PhaseStat `json:"mid"`
	Late  PhaseStat `json:"late"`
}

type TeamAnalysis struct {
	TeamID         int64            `json:"team_id"`
	MatchCount     int              `json:"match_count"`
	WinRate        float64          `json:"win_rate"`
	Strengths      []TraitScore     `json:"strengths"`
	Weaknesses     []TraitScore     `json:"weaknesses"`
	MostSuccessful []HeroStat       `json:"most_successful"`
	Underperform   []HeroStat       `json:"underperforming"`
	Phases         PhasePerformance `json:"phases"`
}

type Hero struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	PrimaryAttr string   `json:"primary_attr"`
	AttackType  string   `json:"attack_type"`
	Roles       []string `json:"roles"`
}

type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}
